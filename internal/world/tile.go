// Package world holds the cave: its tiles, the actions they offer and the
// coordinate lookup that ties them together.
package world

import (
	"github.com/samdwyer/cavecrawl/internal/combat"
	"github.com/samdwyer/cavecrawl/internal/entity"
)

// TileKind tags the behaviour of a tile.
type TileKind string

const (
	KindStart     TileKind = "start"
	KindEmptyPath TileKind = "empty_path"
	KindLoot      TileKind = "loot"
	KindEnemy     TileKind = "enemy"
	KindSnakePit  TileKind = "snake_pit"
	KindLeaveCave TileKind = "leave_cave"
)

// Valid reports whether k names a known tile kind.
func (k TileKind) Valid() bool {
	switch k {
	case KindStart, KindEmptyPath, KindLoot, KindEnemy, KindSnakePit, KindLeaveCave:
		return true
	default:
		return false
	}
}

// Tile is one room of the cave. Its kind never changes; only the owned
// enemy's health and the looted flag mutate during play.
type Tile struct {
	Kind       TileKind
	Label      string // Map label the tile was built from
	At         Coord
	Intro      string
	SpentIntro string // Shown once the enemy is dead or the loot taken
	Color      string // Hex color hint for renderers
	Item       *entity.Item
	Looted     bool
	Enemy      *entity.Enemy
}

// IntroText returns the text shown when the player enters the tile.
func (t *Tile) IntroText() string {
	if t.Spent() && t.SpentIntro != "" {
		return t.SpentIntro
	}
	return t.Intro
}

// Spent reports whether the room's enemy is dead or its loot taken.
func (t *Tile) Spent() bool {
	switch t.Kind {
	case KindEnemy:
		return t.Enemy != nil && !t.Enemy.IsAlive()
	case KindLoot:
		return t.Looted
	default:
		return false
	}
}

// ModifyPlayer applies the room's effect to the player and returns any
// messages it produced. It runs at the start of every turn spent here.
func (t *Tile) ModifyPlayer(p *entity.Player) []string {
	switch t.Kind {
	case KindLoot:
		if t.Item != nil && !t.Looted {
			p.AddItem(*t.Item)
			t.Looted = true
		}
	case KindEnemy:
		if t.Enemy != nil && t.Enemy.IsAlive() {
			return []string{combat.EnemyStrike(t.Enemy, p).Message}
		}
	case KindSnakePit:
		p.HP = 0
	case KindLeaveCave:
		p.Victory = true
	}
	return nil
}

// AdjacentMoves returns a move for every neighbouring tile, in the order
// east, west, north, south.
func (t *Tile) AdjacentMoves(w *World) []Action {
	var moves []Action
	for _, move := range []Action{MoveEast(), MoveWest(), MoveNorth(), MoveSouth()} {
		if w.TileAt(t.At.Add(move.DX, move.DY)) != nil {
			moves = append(moves, move)
		}
	}
	return moves
}

// AvailableActions returns the actions the player may choose here. A living
// enemy pins the player down to fleeing or fighting.
func (t *Tile) AvailableActions(w *World) []Action {
	if t.Kind == KindEnemy && t.Enemy != nil && t.Enemy.IsAlive() {
		return []Action{Flee(t), Attack(t.Enemy)}
	}
	return append(t.AdjacentMoves(w), ViewInventory())
}
