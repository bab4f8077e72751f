package save

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/samdwyer/cavecrawl/internal/entity"
	"github.com/samdwyer/cavecrawl/internal/world"
)

func testSession() (*world.World, *entity.Player) {
	dagger := entity.NewWeapon("Dagger", "A small dagger.", 10)
	tiles := []*world.Tile{
		{Kind: world.KindStart, Label: "StartingRoom", At: world.Coord{X: 1, Y: 1}, Intro: "start"},
		{Kind: world.KindLoot, Label: "FindDaggerRoom", At: world.Coord{X: 0, Y: 1}, Intro: "a dagger", SpentIntro: "bare", Item: &dagger, Looted: true},
		{Kind: world.KindEnemy, Label: "OgreRoom", At: world.Coord{X: 1, Y: 0}, Intro: "an ogre", Enemy: entity.NewEnemy("ogre", "Ogre", 15, 15)},
		{Kind: world.KindLeaveCave, Label: "LeaveCaveRoom", At: world.Coord{X: 1, Y: -1}, Intro: "daylight"},
	}
	w := world.New(tiles)
	p := entity.NewPlayer(1, 0, entity.StartingInventory())
	p.HP = 40
	p.AddItem(dagger)
	return w, p
}

func TestSnapshotRestore(t *testing.T) {
	w, p := testSession()
	w.TileAt(world.Coord{X: 1, Y: 0}).Enemy.TakeDamage(10)
	p.Victory = true

	s := Snapshot("session-1", w, p)
	if s.Version != FormatVersion {
		t.Errorf("Version = %d, want %d", s.Version, FormatVersion)
	}
	if len(s.Tiles) != w.Len() {
		t.Fatalf("len(Tiles) = %d, want %d", len(s.Tiles), w.Len())
	}

	data, err := Encode(s)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	for name, snap := range map[string]SessionState{"in memory": s, "encoded": decoded} {
		t.Run(name, func(t *testing.T) {
			w2, p2, err := Restore(snap)
			if err != nil {
				t.Fatalf("Restore() error = %v", err)
			}
			assertSamePlayer(t, p2, p)
			assertSameTiles(t, w2, w)

			if got := w2.TileAt(world.Coord{X: 1, Y: 0}).Enemy.HP; got != 5 {
				t.Errorf("restored enemy HP = %d, want 5", got)
			}
			if loot := w2.TileAt(world.Coord{X: 0, Y: 1}); loot.IntroText() != "bare" {
				t.Errorf("loot intro = %q, want the spent intro", loot.IntroText())
			}
		})
	}
}

func assertSamePlayer(t *testing.T, got, want *entity.Player) {
	t.Helper()
	if got.X != want.X || got.Y != want.Y || got.HP != want.HP || got.Victory != want.Victory {
		t.Errorf("player = (%d, %d) HP %d victory %v, want (%d, %d) HP %d victory %v",
			got.X, got.Y, got.HP, got.Victory, want.X, want.Y, want.HP, want.Victory)
	}
	if !reflect.DeepEqual(got.Inventory, want.Inventory) {
		t.Errorf("inventory = %v, want %v in the same order", got.Inventory, want.Inventory)
	}
}

func assertSameTiles(t *testing.T, got, want *world.World) {
	t.Helper()
	gotTiles, wantTiles := got.Tiles(), want.Tiles()
	if len(gotTiles) != len(wantTiles) {
		t.Fatalf("restored %d tiles, want %d", len(gotTiles), len(wantTiles))
	}
	for i, wt := range wantTiles {
		gt := gotTiles[i]
		if gt.At != wt.At || gt.Kind != wt.Kind || gt.Label != wt.Label ||
			gt.Intro != wt.Intro || gt.SpentIntro != wt.SpentIntro || gt.Color != wt.Color || gt.Looted != wt.Looted {
			t.Errorf("tile %d = %+v, want %+v", i, gt, wt)
		}
		if !reflect.DeepEqual(gt.Item, wt.Item) {
			t.Errorf("tile %s item = %v, want %v", wt.At, gt.Item, wt.Item)
		}
		if !reflect.DeepEqual(gt.Enemy, wt.Enemy) {
			t.Errorf("tile %s enemy = %+v, want %+v", wt.At, gt.Enemy, wt.Enemy)
		}
		if wt.Enemy != nil && gt.Enemy == wt.Enemy {
			t.Errorf("tile %s enemy shares memory with the original", wt.At)
		}
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	w, p := testSession()
	s := Snapshot("session-1", w, p)

	w.TileAt(world.Coord{X: 1, Y: 0}).Enemy.TakeDamage(15)
	p.Inventory[0].Amount = 999

	enemies := 0
	for _, ts := range s.Tiles {
		if ts.Enemy == nil {
			continue
		}
		enemies++
		if ts.Enemy.HP != 15 {
			t.Errorf("snapshot enemy HP = %d, want 15", ts.Enemy.HP)
		}
	}
	if enemies != 1 {
		t.Errorf("snapshot holds %d enemies, want 1", enemies)
	}
	if s.Player.Inventory[0].Amount == 999 {
		t.Error("snapshot inventory shares memory with the player")
	}
}

func TestRestoreRejectsMalformed(t *testing.T) {
	w, p := testSession()

	tests := []struct {
		name   string
		mutate func(*SessionState)
	}{
		{"version", func(s *SessionState) { s.Version = 99 }},
		{"no tiles", func(s *SessionState) { s.Tiles = nil }},
		{"unknown kind", func(s *SessionState) { s.Tiles[0].Kind = "lava" }},
		{"duplicate", func(s *SessionState) { s.Tiles = append(s.Tiles, s.Tiles[0]) }},
		{"loot without item", func(s *SessionState) {
			for i := range s.Tiles {
				if s.Tiles[i].Kind == world.KindLoot {
					s.Tiles[i].Item = nil
				}
			}
		}},
		{"enemy without enemy", func(s *SessionState) {
			for i := range s.Tiles {
				if s.Tiles[i].Kind == world.KindEnemy {
					s.Tiles[i].Enemy = nil
				}
			}
		}},
		{"player off map", func(s *SessionState) { s.Player.X = 50 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Snapshot("session-1", w, p)
			tt.mutate(&s)
			if _, _, err := Restore(s); err == nil {
				t.Error("Restore() error = nil, want error")
			}
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	w, p := testSession()
	data, err := Encode(Snapshot("session-1", w, p))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	s, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if s.ID != "session-1" {
		t.Errorf("ID = %q, want %q", s.ID, "session-1")
	}
	if _, _, err := Restore(s); err != nil {
		t.Errorf("Restore(decoded) error = %v", err)
	}

	if _, err := Decode([]byte("{not json")); err == nil {
		t.Error("Decode(garbage) error = nil, want error")
	}
}

func TestJSONStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	w, p := testSession()

	store, err := NewJSONStore(dir)
	if err != nil {
		t.Fatalf("NewJSONStore() error = %v", err)
	}

	if _, err := store.Load(ctx, "slot1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(missing) error = %v, want ErrNotFound", err)
	}
	if err := store.Save(ctx, "slot1", Snapshot("session-1", w, p)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, SavesFile)); err != nil {
		t.Errorf("saves file missing: %v", err)
	}

	// A second store on the same directory sees the saved slot.
	reopened, err := NewJSONStore(dir)
	if err != nil {
		t.Fatalf("NewJSONStore(reopen) error = %v", err)
	}
	s, err := reopened.Load(ctx, "slot1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.ID != "session-1" || s.Player.HP != 40 {
		t.Errorf("loaded ID = %q HP = %d, want session-1 HP 40", s.ID, s.Player.HP)
	}

	if err := reopened.Delete(ctx, "slot1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := reopened.Load(ctx, "slot1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(deleted) error = %v, want ErrNotFound", err)
	}
	if err := reopened.Save(ctx, "  ", s); err == nil {
		t.Error("Save(blank slot) error = nil, want error")
	}
}

func TestJSONStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, SavesFile), []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewJSONStore(dir); err == nil {
		t.Error("NewJSONStore(corrupt) error = nil, want error")
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open(context.Background(), Options{Backend: "floppy"}); err == nil {
		t.Error("Open(floppy) error = nil, want error")
	}
	store, err := Open(context.Background(), Options{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open(default) error = %v", err)
	}
	if _, ok := store.(*JSONStore); !ok {
		t.Errorf("Open(default) = %T, want *JSONStore", store)
	}
}

func TestNewSessionID(t *testing.T) {
	a, b := NewSessionID(), NewSessionID()
	if a == "" || a == b {
		t.Errorf("NewSessionID() = %q, %q, want distinct non-empty ids", a, b)
	}
}
