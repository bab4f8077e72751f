// Package entity provides the items, enemies and player that live in the cave.
package entity

import "fmt"

// ItemKind tags the variant an Item represents.
type ItemKind string

const (
	ItemGeneric ItemKind = "item"
	ItemGold    ItemKind = "gold"
	ItemWeapon  ItemKind = "weapon"
)

// Item is an immutable inventory entry. Amount is only meaningful for gold,
// Damage only for weapons.
type Item struct {
	Kind        ItemKind `json:"kind"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Amount      int      `json:"amount,omitempty"`
	Damage      int      `json:"damage,omitempty"`
}

// NewGold creates a pile of gold worth amount.
func NewGold(amount int) Item {
	return Item{
		Kind:        ItemGold,
		Name:        "Gold",
		Description: fmt.Sprintf("A round coin with %d stamped on the front.", amount),
		Amount:      amount,
	}
}

// NewWeapon creates a weapon that deals damage per hit.
func NewWeapon(name, description string, damage int) Item {
	return Item{Kind: ItemWeapon, Name: name, Description: description, Damage: damage}
}

// NewGenericItem creates an item with no game effect.
func NewGenericItem(name, description string) Item {
	return Item{Kind: ItemGeneric, Name: name, Description: description}
}

// IsWeapon reports whether the item can be used to attack.
func (i Item) IsWeapon() bool { return i.Kind == ItemWeapon }

// String returns the inventory display form of the item.
func (i Item) String() string {
	s := fmt.Sprintf("%s\n=====\n%s", i.Name, i.Description)
	switch i.Kind {
	case ItemGold:
		s += fmt.Sprintf("\nValue: %d", i.Amount)
	case ItemWeapon:
		s += fmt.Sprintf("\nDamage: %d", i.Damage)
	}
	return s
}
