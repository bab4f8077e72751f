package game

import (
	"context"

	"github.com/samdwyer/cavecrawl/internal/world"
)

// Choice is one (hotkey, display name) pair offered to the actor.
type Choice struct {
	Hotkey string
	Name   string
}

// Turn is the view of the session handed to an actor before each choice.
type Turn struct {
	Number   int
	State    State
	Messages []string       // Text produced since the previous prompt
	Actions  []world.Action // Offered actions; empty once the session is over
	Rejected string         // Unmatched input that caused a re-prompt, if any

	At        world.Coord
	TileKind  world.TileKind
	TileColor string
	HP        int
	Gold      int
}

// Choices returns the offered actions as hotkey/name pairs in display order.
func (t Turn) Choices() []Choice {
	choices := make([]Choice, len(t.Actions))
	for i, a := range t.Actions {
		choices[i] = Choice{Hotkey: a.Hotkey, Name: a.Name}
	}
	return choices
}

// Actor is the presentation layer that picks an action each turn.
type Actor interface {
	// Choose shows turn and blocks until a hotkey is entered. Returning
	// ErrQuit ends the session without error.
	Choose(ctx context.Context, turn Turn) (string, error)
	// Finish shows the final turn of a session that reached a terminal state.
	Finish(ctx context.Context, turn Turn) error
}
