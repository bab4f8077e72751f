package gamedata

import (
	"errors"
	"fmt"

	"github.com/samdwyer/cavecrawl/internal/entity"
	"github.com/samdwyer/cavecrawl/internal/world"
)

// ItemRegistry holds loaded item definitions keyed by ID.
type ItemRegistry struct {
	items map[string]*ItemDef
	all   []ItemDef
}

// NewItemRegistry creates a registry from loaded item definitions.
func NewItemRegistry(items []ItemDef) *ItemRegistry {
	registry := &ItemRegistry{
		items: make(map[string]*ItemDef),
		all:   items,
	}
	for i := range items {
		registry.items[items[i].ID] = &items[i]
	}
	return registry
}

// GetByID returns the item definition with the given ID, or nil if not found.
func (r *ItemRegistry) GetByID(id string) *ItemDef {
	return r.items[id]
}

// Count returns the number of item definitions in the registry.
func (r *ItemRegistry) Count() int {
	return len(r.all)
}

// EnemyRegistry holds loaded enemy definitions keyed by ID.
type EnemyRegistry struct {
	enemies map[string]*EnemyDef
	all     []EnemyDef
}

// NewEnemyRegistry creates a registry from loaded enemy definitions.
func NewEnemyRegistry(enemies []EnemyDef) *EnemyRegistry {
	registry := &EnemyRegistry{
		enemies: make(map[string]*EnemyDef),
		all:     enemies,
	}
	for i := range enemies {
		registry.enemies[enemies[i].ID] = &enemies[i]
	}
	return registry
}

// GetByID returns the enemy definition with the given ID, or nil if not found.
func (r *EnemyRegistry) GetByID(id string) *EnemyDef {
	return r.enemies[id]
}

// Count returns the number of enemy types in the registry.
func (r *EnemyRegistry) Count() int {
	return len(r.all)
}

// RoomRegistry holds loaded room definitions keyed by map label.
type RoomRegistry struct {
	rooms map[string]*RoomDef
	all   []RoomDef
}

// NewRoomRegistry creates a registry from loaded room definitions.
func NewRoomRegistry(rooms []RoomDef) *RoomRegistry {
	registry := &RoomRegistry{
		rooms: make(map[string]*RoomDef),
		all:   rooms,
	}
	for i := range rooms {
		registry.rooms[rooms[i].Label] = &rooms[i]
	}
	return registry
}

// GetByLabel returns the room definition for a map label, or nil if not found.
func (r *RoomRegistry) GetByLabel(label string) *RoomDef {
	return r.rooms[label]
}

// All returns all room definitions.
func (r *RoomRegistry) All() []RoomDef {
	return r.all
}

// Count returns the number of room definitions in the registry.
func (r *RoomRegistry) Count() int {
	return len(r.all)
}

// =============================================================================
// Catalog
// =============================================================================

// Catalog bundles the registries and builds tiles from map labels. Every
// tile gets its own item copy and freshly spawned enemy.
type Catalog struct {
	Items   *ItemRegistry
	Enemies *EnemyRegistry
	Rooms   *RoomRegistry
}

// NewCatalog creates a catalog and checks that every room refers to known
// items and enemies.
func NewCatalog(items []ItemDef, enemies []EnemyDef, rooms []RoomDef) (*Catalog, error) {
	c := &Catalog{
		Items:   NewItemRegistry(items),
		Enemies: NewEnemyRegistry(enemies),
		Rooms:   NewRoomRegistry(rooms),
	}

	for _, room := range rooms {
		if !room.Kind.Valid() {
			return nil, fmt.Errorf("room %s: unknown kind %q", room.Label, room.Kind)
		}
		if room.Kind == world.KindLoot && c.Items.GetByID(room.Item) == nil {
			return nil, fmt.Errorf("room %s: unknown item %q", room.Label, room.Item)
		}
		if room.Kind == world.KindEnemy && c.Enemies.GetByID(room.Enemy) == nil {
			return nil, fmt.Errorf("room %s: unknown enemy %q", room.Label, room.Enemy)
		}
	}
	return c, nil
}

// LoadCatalog loads and creates a catalog from the embedded JSON files.
func LoadCatalog() (*Catalog, error) {
	items, err := LoadItems()
	if err != nil {
		return nil, err
	}
	enemies, err := LoadEnemies()
	if err != nil {
		return nil, err
	}
	rooms, err := LoadRooms()
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, errors.New("no rooms loaded from rooms.json")
	}
	return NewCatalog(items, enemies, rooms)
}

// MustLoadCatalog loads a catalog, panicking on error.
func MustLoadCatalog() *Catalog {
	c, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// NewItem creates the item with the given ID.
func (c *Catalog) NewItem(id string) (entity.Item, bool) {
	def := c.Items.GetByID(id)
	if def == nil {
		return entity.Item{}, false
	}
	return def.Item(), true
}

// NewEnemy spawns a fresh enemy with the given ID.
func (c *Catalog) NewEnemy(id string) (*entity.Enemy, bool) {
	def := c.Enemies.GetByID(id)
	if def == nil {
		return nil, false
	}
	return def.Spawn(), true
}

// NewTile implements world.TileFactory.
func (c *Catalog) NewTile(label string, at world.Coord) (*world.Tile, bool) {
	def := c.Rooms.GetByLabel(label)
	if def == nil {
		return nil, false
	}

	tile := &world.Tile{
		Kind:       def.Kind,
		Label:      def.Label,
		At:         at,
		Intro:      def.Intro,
		SpentIntro: def.SpentIntro,
		Color:      def.Color,
	}
	switch def.Kind {
	case world.KindLoot:
		item, ok := c.NewItem(def.Item)
		if !ok {
			return nil, false
		}
		tile.Item = &item
	case world.KindEnemy:
		enemy, ok := c.NewEnemy(def.Enemy)
		if !ok {
			return nil, false
		}
		tile.Enemy = enemy
	}
	return tile, true
}

var _ world.TileFactory = (*Catalog)(nil)
