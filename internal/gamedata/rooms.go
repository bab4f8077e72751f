package gamedata

import "github.com/samdwyer/cavecrawl/internal/world"

// RoomDef maps a map label to the tile it builds.
type RoomDef struct {
	Label      string         `json:"label"`                // Map label (e.g., "OgreRoom")
	Kind       world.TileKind `json:"kind"`                 // Tile behaviour
	Intro      string         `json:"intro"`                // Text on entry
	SpentIntro string         `json:"spentIntro,omitempty"` // Text once the enemy is dead or loot taken
	Color      string         `json:"color,omitempty"`      // Hex color for the intro text
	Item       string         `json:"item,omitempty"`       // Loot rooms: item ID
	Enemy      string         `json:"enemy,omitempty"`      // Enemy rooms: enemy ID
}

// RoomsFile represents the structure of rooms.json.
type RoomsFile struct {
	Rooms []RoomDef `json:"rooms"`
}

// LoadRooms loads room definitions from the embedded rooms.json file.
func LoadRooms() ([]RoomDef, error) {
	file, err := Load[RoomsFile]("rooms.json")
	if err != nil {
		return nil, err
	}
	return file.Rooms, nil
}
