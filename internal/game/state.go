// Package game provides the turn loop that drives a cave session.
package game

// State represents the current session state.
type State int

const (
	// StatePlaying is the only non-terminal state: the player is exploring.
	StatePlaying State = iota
	// StateDead is terminal: the player's health reached zero.
	StateDead
	// StateVictorious is terminal: the player left the cave.
	StateVictorious
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateDead:
		return "dead"
	case StateVictorious:
		return "victorious"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further turns can be played.
func (s State) Terminal() bool {
	return s == StateDead || s == StateVictorious
}
