package entity

// Enemy is a hostile creature guarding a room. HP is tracked as a raw
// integer and may drop below zero; an enemy is alive while HP > 0.
type Enemy struct {
	ID     string `json:"id"`     // Definition identifier (e.g., "giant_spider")
	Name   string `json:"name"`   // Display name (e.g., "Giant Spider")
	HP     int    `json:"hp"`     // Current hit points
	Damage int    `json:"damage"` // Damage dealt to the player per hit
}

// NewEnemy creates a new enemy at full health.
func NewEnemy(id, name string, hp, damage int) *Enemy {
	return &Enemy{ID: id, Name: name, HP: hp, Damage: damage}
}

// IsAlive returns true if the enemy has HP remaining.
func (e *Enemy) IsAlive() bool { return e.HP > 0 }

// TakeDamage subtracts amount from HP without a floor.
func (e *Enemy) TakeDamage(amount int) {
	e.HP -= amount
}

// Clone returns an independent copy of the enemy.
func (e *Enemy) Clone() *Enemy {
	c := *e
	return &c
}
