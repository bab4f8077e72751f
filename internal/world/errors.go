package world

import (
	"errors"
	"fmt"
)

var (
	// ErrNoWeapon is wrapped by a PreconditionError when the player attacks
	// without carrying any weapon.
	ErrNoWeapon = errors.New("no weapon in inventory")
	// ErrNoEnemy is wrapped by a PreconditionError when an attack has no target.
	ErrNoEnemy = errors.New("no enemy to attack")

	errUnknownAction = errors.New("unknown action")
)

// ConfigurationError reports a malformed world source.
type ConfigurationError struct {
	Row, Col int
	Label    string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	if e.Label == "" {
		return "world: " + e.Reason
	}
	return fmt.Sprintf("world: row %d column %d: %s %q", e.Row, e.Col, e.Reason, e.Label)
}

// MissingTileError reports a lookup at a coordinate that holds no tile.
// Movement only offers existing tiles, so this is always an upstream bug.
type MissingTileError struct {
	At Coord
}

func (e *MissingTileError) Error() string {
	return fmt.Sprintf("world: no tile at %s", e.At)
}

// NoEscapeError reports a flee attempt from a tile with no neighbours.
type NoEscapeError struct {
	At Coord
}

func (e *NoEscapeError) Error() string {
	return fmt.Sprintf("world: nowhere to flee from %s", e.At)
}

// PreconditionError reports an action executed in a state it does not support.
type PreconditionError struct {
	Op  string
	Err error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("world: %s: %v", e.Op, e.Err)
}

func (e *PreconditionError) Unwrap() error { return e.Err }
