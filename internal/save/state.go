// Package save snapshots a session into plain data and keeps snapshots in
// a backing store so a game can be resumed later.
package save

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/samdwyer/cavecrawl/internal/entity"
	"github.com/samdwyer/cavecrawl/internal/game"
	"github.com/samdwyer/cavecrawl/internal/world"
)

// FormatVersion is written into every snapshot.
const FormatVersion = 1

// SessionState is the complete, self-contained state of one session.
type SessionState struct {
	Version int          `json:"version"`
	ID      string       `json:"id"`
	SavedAt time.Time    `json:"saved_at"`
	Player  PlayerState  `json:"player"`
	Tiles   []TileState  `json:"tiles"`
	Run     *game.RunLog `json:"run,omitempty"` // Statistics so far; nil outside a game
}

// PlayerState mirrors entity.Player.
type PlayerState struct {
	X         int           `json:"x"`
	Y         int           `json:"y"`
	HP        int           `json:"hp"`
	Inventory []entity.Item `json:"inventory"`
	Victory   bool          `json:"victory"`
}

// TileState mirrors world.Tile, including its owned item and enemy.
type TileState struct {
	X          int            `json:"x"`
	Y          int            `json:"y"`
	Kind       world.TileKind `json:"kind"`
	Label      string         `json:"label"`
	Intro      string         `json:"intro"`
	SpentIntro string         `json:"spent_intro,omitempty"`
	Color      string         `json:"color,omitempty"`
	Item       *entity.Item   `json:"item,omitempty"`
	Looted     bool           `json:"looted,omitempty"`
	Enemy      *entity.Enemy  `json:"enemy,omitempty"`
}

// NewSessionID returns a fresh random session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// Snapshot copies the world and player into a SessionState. The snapshot
// shares no memory with the live session.
func Snapshot(id string, w *world.World, p *entity.Player) SessionState {
	s := SessionState{
		Version: FormatVersion,
		ID:      id,
		SavedAt: time.Now().UTC(),
		Player: PlayerState{
			X:         p.X,
			Y:         p.Y,
			HP:        p.HP,
			Inventory: append([]entity.Item(nil), p.Inventory...),
			Victory:   p.Victory,
		},
	}

	for _, t := range w.Tiles() {
		ts := TileState{
			X:          t.At.X,
			Y:          t.At.Y,
			Kind:       t.Kind,
			Label:      t.Label,
			Intro:      t.Intro,
			SpentIntro: t.SpentIntro,
			Color:      t.Color,
			Looted:     t.Looted,
		}
		if t.Item != nil {
			item := *t.Item
			ts.Item = &item
		}
		if t.Enemy != nil {
			ts.Enemy = t.Enemy.Clone()
		}
		s.Tiles = append(s.Tiles, ts)
	}
	return s
}

// Restore rebuilds the world and player held in s. Only structural
// well-formedness is checked.
func Restore(s SessionState) (*world.World, *entity.Player, error) {
	if s.Version != FormatVersion {
		return nil, nil, fmt.Errorf("save: unsupported format version %d", s.Version)
	}
	if len(s.Tiles) == 0 {
		return nil, nil, fmt.Errorf("save: snapshot %s has no tiles", s.ID)
	}

	seen := make(map[world.Coord]bool, len(s.Tiles))
	tiles := make([]*world.Tile, 0, len(s.Tiles))
	for _, ts := range s.Tiles {
		at := world.Coord{X: ts.X, Y: ts.Y}
		if seen[at] {
			return nil, nil, fmt.Errorf("save: duplicate tile at %s", at)
		}
		seen[at] = true

		if !ts.Kind.Valid() {
			return nil, nil, fmt.Errorf("save: tile at %s has unknown kind %q", at, ts.Kind)
		}
		if ts.Kind == world.KindLoot && ts.Item == nil {
			return nil, nil, fmt.Errorf("save: loot tile at %s has no item", at)
		}
		if ts.Kind == world.KindEnemy && ts.Enemy == nil {
			return nil, nil, fmt.Errorf("save: enemy tile at %s has no enemy", at)
		}

		t := &world.Tile{
			Kind:       ts.Kind,
			Label:      ts.Label,
			At:         at,
			Intro:      ts.Intro,
			SpentIntro: ts.SpentIntro,
			Color:      ts.Color,
			Looted:     ts.Looted,
		}
		if ts.Item != nil {
			item := *ts.Item
			t.Item = &item
		}
		if ts.Enemy != nil {
			t.Enemy = ts.Enemy.Clone()
		}
		tiles = append(tiles, t)
	}

	w := world.New(tiles)
	if w.TileAt(world.Coord{X: s.Player.X, Y: s.Player.Y}) == nil {
		return nil, nil, fmt.Errorf("save: player stands off the map at (%d, %d)", s.Player.X, s.Player.Y)
	}

	p := entity.NewPlayer(s.Player.X, s.Player.Y, s.Player.Inventory)
	p.HP = s.Player.HP
	p.Victory = s.Player.Victory
	return w, p, nil
}

// Encode serializes a snapshot for storage.
func Encode(s SessionState) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("save: encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot produced by Encode.
func Decode(data []byte) (SessionState, error) {
	var s SessionState
	if err := json.Unmarshal(data, &s); err != nil {
		return SessionState{}, fmt.Errorf("save: decode snapshot: %w", err)
	}
	return s, nil
}
