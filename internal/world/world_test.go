package world

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/samdwyer/cavecrawl/internal/entity"
)

// testFactory knows a handful of single-letter labels.
var testFactory = TileFactoryFunc(func(label string, at Coord) (*Tile, bool) {
	switch label {
	case "S":
		return &Tile{Kind: KindStart, Label: label, At: at, Intro: "start"}, true
	case "E":
		return &Tile{Kind: KindEmptyPath, Label: label, At: at, Intro: "empty"}, true
	case "L":
		dagger := entity.NewWeapon("Dagger", "A small dagger.", 10)
		return &Tile{Kind: KindLoot, Label: label, At: at, Intro: "loot", SpentIntro: "bare", Item: &dagger}, true
	case "O":
		return &Tile{
			Kind: KindEnemy, Label: label, At: at,
			Intro: "An ogre!", SpentIntro: "A dead ogre.",
			Enemy: entity.NewEnemy("ogre", "Ogre", 15, 15),
		}, true
	case "P":
		return &Tile{Kind: KindSnakePit, Label: label, At: at, Intro: "snakes"}, true
	case "X":
		return &Tile{Kind: KindLeaveCave, Label: label, At: at, Intro: "sunlight"}, true
	}
	return nil, false
})

func mustBuild(t *testing.T, src string) *World {
	t.Helper()
	w, err := Build(context.Background(), strings.NewReader(src), testFactory)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return w
}

func hotkeys(actions []Action) string {
	var b strings.Builder
	for _, a := range actions {
		b.WriteString(a.Hotkey)
	}
	return b.String()
}

func TestBuildTileAt(t *testing.T) {
	w := mustBuild(t, "\tE\t\nE\tS\tE\n\tE\t\n")

	if w.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", w.Len())
	}
	present := []Coord{{1, 0}, {0, 1}, {1, 1}, {2, 1}, {1, 2}}
	for _, c := range present {
		if w.TileAt(c) == nil {
			t.Errorf("TileAt(%s) = nil, want tile", c)
		} else if w.TileAt(c).At != c {
			t.Errorf("TileAt(%s).At = %s", c, w.TileAt(c).At)
		}
	}
	absent := []Coord{{0, 0}, {2, 0}, {0, 2}, {2, 2}, {-1, 1}, {5, 5}}
	for _, c := range absent {
		if w.TileAt(c) != nil {
			t.Errorf("TileAt(%s) = %v, want nil", c, w.TileAt(c))
		}
	}

	start, ok := w.StartingCoord()
	if !ok || start != (Coord{1, 1}) {
		t.Errorf("StartingCoord() = %s %v, want (1, 1) true", start, ok)
	}
}

func TestBuildUnknownLabel(t *testing.T) {
	_, err := Build(context.Background(), strings.NewReader("S\tDragonRoom\n"), testFactory)

	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Build() error = %v, want *ConfigurationError", err)
	}
	if cfgErr.Label != "DragonRoom" || cfgErr.Row != 0 || cfgErr.Col != 1 {
		t.Errorf("ConfigurationError = %+v, want label DragonRoom at row 0 col 1", cfgErr)
	}
}

func TestBuildEmptySource(t *testing.T) {
	_, err := Build(context.Background(), strings.NewReader("\t\t\n\n"), testFactory)
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Errorf("Build() error = %v, want *ConfigurationError", err)
	}
}

func TestAdjacentMovesOrder(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"all four", "\tE\t\nE\tS\tE\n\tE\t\n", "ewns"},
		{"east and south", "S\tE\nE\t\n", "es"},
		{"north and west", "\tE\nE\tS\n", "wn"},
		{"walled in", "S\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := mustBuild(t, tt.src)
			start, _ := w.StartingCoord()
			got := hotkeys(w.TileAt(start).AdjacentMoves(w))
			if got != tt.want {
				t.Errorf("AdjacentMoves() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEnemyRoomActions(t *testing.T) {
	w := mustBuild(t, "S\tO\tE\n")
	ogre := w.TileAt(Coord{1, 0})

	if got := hotkeys(ogre.AvailableActions(w)); got != "fa" {
		t.Errorf("AvailableActions() with live enemy = %q, want %q", got, "fa")
	}
	if ogre.IntroText() != "An ogre!" {
		t.Errorf("IntroText() = %q, want alive text", ogre.IntroText())
	}

	ogre.Enemy.TakeDamage(100)
	if got := hotkeys(ogre.AvailableActions(w)); got != "ewi" {
		t.Errorf("AvailableActions() with dead enemy = %q, want %q", got, "ewi")
	}
	if ogre.IntroText() != "A dead ogre." {
		t.Errorf("IntroText() = %q, want defeated text", ogre.IntroText())
	}
}

func TestEnemyRoomHitsEveryTurn(t *testing.T) {
	w := mustBuild(t, "S\tO\n")
	ogre := w.TileAt(Coord{1, 0})
	p := entity.NewPlayer(1, 0, nil)

	ogre.ModifyPlayer(p)
	msgs := ogre.ModifyPlayer(p)
	if p.HP != 70 {
		t.Errorf("HP = %d after two turns, want 70", p.HP)
	}
	if len(msgs) != 1 || !strings.Contains(msgs[0], "70 HP remaining") {
		t.Errorf("ModifyPlayer() = %q, want hit message", msgs)
	}
}

func TestSnakePitKills(t *testing.T) {
	w := mustBuild(t, "S\tP\n")
	for _, hp := range []int{1, 100, 5000} {
		p := entity.NewPlayer(1, 0, nil)
		p.HP = hp
		w.TileAt(Coord{1, 0}).ModifyPlayer(p)
		if p.HP != 0 || p.IsAlive() {
			t.Errorf("from HP %d: HP = %d alive = %v, want 0 false", hp, p.HP, p.IsAlive())
		}
	}
}

func TestLeaveCaveGrantsVictory(t *testing.T) {
	w := mustBuild(t, "S\tX\n")
	p := entity.NewPlayer(1, 0, nil)
	w.TileAt(Coord{1, 0}).ModifyPlayer(p)
	if !p.Victory {
		t.Error("Victory = false after entering the exit")
	}
}

func TestLootGrantedOnce(t *testing.T) {
	w := mustBuild(t, "S\tL\n")
	loot := w.TileAt(Coord{1, 0})
	p := entity.NewPlayer(1, 0, nil)

	loot.ModifyPlayer(p)
	loot.ModifyPlayer(p)
	if len(p.Inventory) != 1 {
		t.Fatalf("inventory length = %d after two visits, want 1", len(p.Inventory))
	}
	if !loot.Looted {
		t.Error("Looted = false after pickup")
	}
	if loot.IntroText() != "bare" {
		t.Errorf("IntroText() = %q after pickup, want spent text", loot.IntroText())
	}
}

func TestMoveExecute(t *testing.T) {
	w := mustBuild(t, "S\tE\n")
	p := entity.NewPlayer(0, 0, nil)

	msgs, err := MoveEast().Execute(w, p, nil)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if p.X != 1 || p.Y != 0 {
		t.Errorf("position = (%d,%d), want (1,0)", p.X, p.Y)
	}
	if len(msgs) != 1 || msgs[0] != "empty" {
		t.Errorf("Execute() messages = %q, want intro of new tile", msgs)
	}

	_, err = MoveNorth().Execute(w, p, nil)
	var missing *MissingTileError
	if !errors.As(err, &missing) {
		t.Fatalf("Execute() into nothing error = %v, want *MissingTileError", err)
	}
	if missing.At != (Coord{1, -1}) {
		t.Errorf("MissingTileError.At = %s, want (1, -1)", missing.At)
	}
}

func TestViewInventoryExecute(t *testing.T) {
	w := mustBuild(t, "S\n")
	p := entity.NewPlayer(0, 0, entity.StartingInventory())

	msgs, err := ViewInventory().Execute(w, p, nil)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(msgs) != 2 || !strings.HasPrefix(msgs[0], "Gold") || !strings.HasPrefix(msgs[1], "Rock") {
		t.Errorf("Execute() = %q, want gold then rock", msgs)
	}
}

func TestAttackExecute(t *testing.T) {
	w := mustBuild(t, "S\tO\n")
	ogre := w.TileAt(Coord{1, 0})
	p := entity.NewPlayer(1, 0, []entity.Item{entity.NewWeapon("Dagger", "d", 10)})

	if _, err := Attack(ogre.Enemy).Execute(w, p, nil); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if ogre.Enemy.HP != 5 || !ogre.Enemy.IsAlive() {
		t.Errorf("enemy HP = %d alive = %v, want 5 true", ogre.Enemy.HP, ogre.Enemy.IsAlive())
	}
	if _, err := Attack(ogre.Enemy).Execute(w, p, nil); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if ogre.Enemy.HP != -5 || ogre.Enemy.IsAlive() {
		t.Errorf("enemy HP = %d alive = %v, want -5 false", ogre.Enemy.HP, ogre.Enemy.IsAlive())
	}
}

func TestAttackWithoutWeapon(t *testing.T) {
	w := mustBuild(t, "S\tO\n")
	ogre := w.TileAt(Coord{1, 0})
	p := entity.NewPlayer(1, 0, []entity.Item{entity.NewGold(15)})

	_, err := Attack(ogre.Enemy).Execute(w, p, nil)
	var pre *PreconditionError
	if !errors.As(err, &pre) {
		t.Fatalf("Execute() error = %v, want *PreconditionError", err)
	}
	if !errors.Is(err, ErrNoWeapon) {
		t.Errorf("Execute() error = %v, want ErrNoWeapon", err)
	}
	if ogre.Enemy.HP != 15 {
		t.Errorf("enemy HP = %d, want untouched 15", ogre.Enemy.HP)
	}
}

func TestFleeSingleExit(t *testing.T) {
	w := mustBuild(t, "S\tO\n")
	ogre := w.TileAt(Coord{1, 0})

	for seed := int64(0); seed < 10; seed++ {
		p := entity.NewPlayer(1, 0, nil)
		msgs, err := Flee(ogre).Execute(w, p, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("seed %d: Execute() error: %v", seed, err)
		}
		if p.X != 0 || p.Y != 0 {
			t.Errorf("seed %d: fled to (%d,%d), want (0,0)", seed, p.X, p.Y)
		}
		if len(msgs) != 1 || msgs[0] != "start" {
			t.Errorf("seed %d: messages = %q, want start intro", seed, msgs)
		}
	}
}

func TestFleeStaysAdjacent(t *testing.T) {
	w := mustBuild(t, "\tE\t\nE\tO\tE\n\tE\t\n")
	ogre := w.TileAt(Coord{1, 1})
	rng := rand.New(rand.NewSource(42))

	seen := make(map[Coord]bool)
	for i := 0; i < 100; i++ {
		p := entity.NewPlayer(1, 1, nil)
		if _, err := Flee(ogre).Execute(w, p, rng); err != nil {
			t.Fatalf("Execute() error: %v", err)
		}
		seen[Coord{p.X, p.Y}] = true
	}
	if len(seen) != 4 {
		t.Errorf("fled to %d distinct tiles over 100 tries, want 4", len(seen))
	}
}

func TestFleeNoEscape(t *testing.T) {
	w := mustBuild(t, "O\n")
	ogre := w.TileAt(Coord{0, 0})
	p := entity.NewPlayer(0, 0, nil)

	_, err := Flee(ogre).Execute(w, p, nil)
	var noEscape *NoEscapeError
	if !errors.As(err, &noEscape) {
		t.Errorf("Execute() error = %v, want *NoEscapeError", err)
	}
}

func TestTilesRowMajor(t *testing.T) {
	w := mustBuild(t, "\tE\nE\tS\n")
	tiles := w.Tiles()
	want := []Coord{{1, 0}, {0, 1}, {1, 1}}
	if len(tiles) != len(want) {
		t.Fatalf("Tiles() length = %d, want %d", len(tiles), len(want))
	}
	for i, c := range want {
		if tiles[i].At != c {
			t.Errorf("Tiles()[%d].At = %s, want %s", i, tiles[i].At, c)
		}
	}
}

func TestTileKindValid(t *testing.T) {
	if !KindEnemy.Valid() {
		t.Error("KindEnemy.Valid() = false")
	}
	if TileKind("dragon").Valid() {
		t.Error(`TileKind("dragon").Valid() = true`)
	}
}
