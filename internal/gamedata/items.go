package gamedata

import "github.com/samdwyer/cavecrawl/internal/entity"

// ItemDef defines an item loaded from JSON.
type ItemDef struct {
	ID          string          `json:"id"`                    // Unique identifier (e.g., "dagger")
	Kind        entity.ItemKind `json:"kind"`                  // "gold", "weapon" or "item"
	Name        string          `json:"name,omitempty"`        // Display name; gold is always "Gold"
	Description string          `json:"description,omitempty"` // Inventory text
	Amount      int             `json:"amount,omitempty"`      // Gold only
	Damage      int             `json:"damage,omitempty"`      // Weapons only
}

// Item creates the immutable inventory entry this definition describes.
func (d *ItemDef) Item() entity.Item {
	switch d.Kind {
	case entity.ItemGold:
		return entity.NewGold(d.Amount)
	case entity.ItemWeapon:
		return entity.NewWeapon(d.Name, d.Description, d.Damage)
	default:
		return entity.NewGenericItem(d.Name, d.Description)
	}
}

// ItemsFile represents the structure of items.json.
type ItemsFile struct {
	Items []ItemDef `json:"items"`
}

// LoadItems loads item definitions from the embedded items.json file.
func LoadItems() ([]ItemDef, error) {
	file, err := Load[ItemsFile]("items.json")
	if err != nil {
		return nil, err
	}
	return file.Items, nil
}
