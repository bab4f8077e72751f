package entity

// StartingHP is the health a new player begins with.
const StartingHP = 100

// Player is the adventurer exploring the cave.
type Player struct {
	X, Y      int    // Current position in the world
	HP        int    // Current hit points, may go negative
	Inventory []Item // Items in pickup order
	Victory   bool   // Set once the player leaves the cave
}

// NewPlayer creates a player at the given position carrying inventory.
func NewPlayer(x, y int, inventory []Item) *Player {
	inv := make([]Item, len(inventory))
	copy(inv, inventory)
	return &Player{
		X:         x,
		Y:         y,
		HP:        StartingHP,
		Inventory: inv,
	}
}

// StartingInventory returns the items every new adventurer carries.
func StartingInventory() []Item {
	return []Item{
		NewGold(15),
		NewWeapon("Rock", "A fist-sized rock, suitable for bludgeoning.", 5),
	}
}

// IsAlive returns true if the player has HP remaining.
func (p *Player) IsAlive() bool { return p.HP > 0 }

// ApplyDamage reduces HP by amount. There is no floor.
func (p *Player) ApplyDamage(amount int) {
	p.HP -= amount
}

// AddItem appends item to the end of the inventory.
func (p *Player) AddItem(item Item) {
	p.Inventory = append(p.Inventory, item)
}

// BestWeapon returns the most damaging weapon carried. When several weapons
// share the top damage, the one picked up first wins.
func (p *Player) BestWeapon() (Item, bool) {
	var best Item
	found := false
	maxDamage := 0
	for _, item := range p.Inventory {
		if !item.IsWeapon() {
			continue
		}
		if !found || item.Damage > maxDamage {
			best = item
			maxDamage = item.Damage
			found = true
		}
	}
	return best, found
}

// Gold returns the total value of the gold carried.
func (p *Player) Gold() int {
	total := 0
	for _, item := range p.Inventory {
		if item.Kind == ItemGold {
			total += item.Amount
		}
	}
	return total
}

// Move updates the player position by the given delta.
func (p *Player) Move(dx, dy int) {
	p.X += dx
	p.Y += dy
}

// Position returns the current x, y coordinates.
func (p *Player) Position() (int, int) {
	return p.X, p.Y
}
