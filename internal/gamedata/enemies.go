package gamedata

import "github.com/samdwyer/cavecrawl/internal/entity"

// EnemyDef defines an enemy type loaded from JSON.
type EnemyDef struct {
	ID     string `json:"id"`     // Unique identifier (e.g., "ogre")
	Name   string `json:"name"`   // Display name (e.g., "Ogre")
	HP     int    `json:"hp"`     // Starting hit points
	Damage int    `json:"damage"` // Damage per hit against the player
}

// Spawn creates a fresh enemy from this definition.
func (d *EnemyDef) Spawn() *entity.Enemy {
	return entity.NewEnemy(d.ID, d.Name, d.HP, d.Damage)
}

// EnemiesFile represents the structure of enemies.json.
type EnemiesFile struct {
	Enemies []EnemyDef `json:"enemies"`
}

// LoadEnemies loads enemy definitions from the embedded enemies.json file.
func LoadEnemies() ([]EnemyDef, error) {
	file, err := Load[EnemiesFile]("enemies.json")
	if err != nil {
		return nil, err
	}
	return file.Enemies, nil
}
