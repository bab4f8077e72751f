package world

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/cavecrawl/internal/telemetry"
)

// TileFactory turns a map label into a tile placed at the given coordinate.
// It returns false for labels it does not know.
type TileFactory interface {
	NewTile(label string, at Coord) (*Tile, bool)
}

// TileFactoryFunc adapts a function to the TileFactory interface.
type TileFactoryFunc func(label string, at Coord) (*Tile, bool)

// NewTile calls f(label, at).
func (f TileFactoryFunc) NewTile(label string, at Coord) (*Tile, bool) {
	return f(label, at)
}

// World is the coordinate-indexed lookup of every tile in the cave. Its
// structure is fixed once built.
type World struct {
	tiles map[Coord]*Tile
}

// New creates a world from already constructed tiles. A later tile at the
// same coordinate replaces an earlier one.
func New(tiles []*Tile) *World {
	w := &World{tiles: make(map[Coord]*Tile, len(tiles))}
	for _, t := range tiles {
		w.tiles[t.At] = t
	}
	return w
}

// Build reads a grid description and creates the world. Rows are lines and
// columns are tab-separated labels; an empty label leaves the cell without a
// tile. Unknown labels fail with a *ConfigurationError.
func Build(ctx context.Context, r io.Reader, factory TileFactory) (*World, error) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "world.build")
	defer span.End()

	var tiles []*Tile
	rows := 0
	scanner := bufio.NewScanner(r)
	for y := 0; scanner.Scan(); y++ {
		rows++
		line := strings.TrimRight(scanner.Text(), "\r")
		for x, col := range strings.Split(line, "\t") {
			label := strings.TrimSpace(col)
			if label == "" {
				continue
			}
			tile, ok := factory.NewTile(label, Coord{X: x, Y: y})
			if !ok {
				err := &ConfigurationError{Row: y, Col: x, Label: label, Reason: "unknown tile label"}
				span.RecordError(err)
				return nil, err
			}
			tiles = append(tiles, tile)
		}
	}
	if err := scanner.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to read world source: %w", err)
	}
	if len(tiles) == 0 {
		return nil, &ConfigurationError{Reason: "world source contains no tiles"}
	}

	span.SetAttributes(
		attribute.Int("world.rows", rows),
		attribute.Int("world.tiles", len(tiles)),
	)
	return New(tiles), nil
}

// TileAt returns the tile at c, or nil if there is none.
func (w *World) TileAt(c Coord) *Tile {
	return w.tiles[c]
}

// Lookup returns the tile at c or a *MissingTileError.
func (w *World) Lookup(c Coord) (*Tile, error) {
	t, ok := w.tiles[c]
	if !ok {
		return nil, &MissingTileError{At: c}
	}
	return t, nil
}

// Len returns the number of tiles in the world.
func (w *World) Len() int {
	return len(w.tiles)
}

// Tiles returns every tile in row-major order.
func (w *World) Tiles() []*Tile {
	tiles := make([]*Tile, 0, len(w.tiles))
	for _, t := range w.tiles {
		tiles = append(tiles, t)
	}
	sort.Slice(tiles, func(i, j int) bool {
		if tiles[i].At.Y != tiles[j].At.Y {
			return tiles[i].At.Y < tiles[j].At.Y
		}
		return tiles[i].At.X < tiles[j].At.X
	})
	return tiles
}

// StartingCoord returns the position of the first starting tile in
// row-major order.
func (w *World) StartingCoord() (Coord, bool) {
	for _, t := range w.Tiles() {
		if t.Kind == KindStart {
			return t.At, true
		}
	}
	return Coord{}, false
}
