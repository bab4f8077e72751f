package world

import (
	"math/rand"

	"github.com/samdwyer/cavecrawl/internal/combat"
	"github.com/samdwyer/cavecrawl/internal/entity"
)

// ActionKind tags the command an Action carries out.
type ActionKind string

const (
	ActionMoveNorth     ActionKind = "move_north"
	ActionMoveSouth     ActionKind = "move_south"
	ActionMoveEast      ActionKind = "move_east"
	ActionMoveWest      ActionKind = "move_west"
	ActionViewInventory ActionKind = "view_inventory"
	ActionAttack        ActionKind = "attack"
	ActionFlee          ActionKind = "flee"
)

// Action is one command offered to the player for the current turn.
// Actions are built fresh each turn and carry only the data they need.
type Action struct {
	Kind   ActionKind
	Hotkey string
	Name   string
	DX, DY int           // Moves only
	Enemy  *entity.Enemy // Attack only
	Tile   *Tile         // Flee only
}

// MoveNorth returns the action that moves the player one tile north.
func MoveNorth() Action {
	return Action{Kind: ActionMoveNorth, Hotkey: "n", Name: "Move north", DY: -1}
}

// MoveSouth returns the action that moves the player one tile south.
func MoveSouth() Action {
	return Action{Kind: ActionMoveSouth, Hotkey: "s", Name: "Move south", DY: 1}
}

// MoveEast returns the action that moves the player one tile east.
func MoveEast() Action {
	return Action{Kind: ActionMoveEast, Hotkey: "e", Name: "Move east", DX: 1}
}

// MoveWest returns the action that moves the player one tile west.
func MoveWest() Action {
	return Action{Kind: ActionMoveWest, Hotkey: "w", Name: "Move west", DX: -1}
}

// ViewInventory returns the action that lists the player's inventory.
func ViewInventory() Action {
	return Action{Kind: ActionViewInventory, Hotkey: "i", Name: "View inventory"}
}

// Attack returns the action that strikes enemy with the best weapon carried.
func Attack(enemy *entity.Enemy) Action {
	return Action{Kind: ActionAttack, Hotkey: "a", Name: "Attack", Enemy: enemy}
}

// Flee returns the action that escapes from tile in a random direction.
func Flee(tile *Tile) Action {
	return Action{Kind: ActionFlee, Hotkey: "f", Name: "Flee", Tile: tile}
}

// String returns the menu form of the action, e.g. "n: Move north".
func (a Action) String() string {
	return a.Hotkey + ": " + a.Name
}

// Execute carries out the action against the player and returns the
// messages it produced. rng is only consulted by Flee; nil falls back to
// the global source.
func (a Action) Execute(w *World, p *entity.Player, rng *rand.Rand) ([]string, error) {
	switch a.Kind {
	case ActionMoveNorth, ActionMoveSouth, ActionMoveEast, ActionMoveWest:
		p.Move(a.DX, a.DY)
		tile, err := w.Lookup(Coord{X: p.X, Y: p.Y})
		if err != nil {
			return nil, err
		}
		return []string{tile.IntroText()}, nil

	case ActionViewInventory:
		msgs := make([]string, 0, len(p.Inventory))
		for _, item := range p.Inventory {
			msgs = append(msgs, item.String())
		}
		return msgs, nil

	case ActionAttack:
		if a.Enemy == nil {
			return nil, &PreconditionError{Op: "attack", Err: ErrNoEnemy}
		}
		weapon, ok := p.BestWeapon()
		if !ok {
			return nil, &PreconditionError{Op: "attack", Err: ErrNoWeapon}
		}
		return []string{combat.Strike(weapon, a.Enemy).Message}, nil

	case ActionFlee:
		moves := a.Tile.AdjacentMoves(w)
		if len(moves) == 0 {
			return nil, &NoEscapeError{At: a.Tile.At}
		}
		var i int
		if rng != nil {
			i = rng.Intn(len(moves))
		} else {
			i = rand.Intn(len(moves))
		}
		return moves[i].Execute(w, p, rng)

	default:
		return nil, &PreconditionError{Op: string(a.Kind), Err: errUnknownAction}
	}
}
