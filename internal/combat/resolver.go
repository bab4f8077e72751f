// Package combat resolves the blows traded between the player and the
// creatures guarding the cave.
package combat

import (
	"fmt"

	"github.com/samdwyer/cavecrawl/internal/entity"
)

// Result contains the outcome of a single strike.
type Result struct {
	Damage  int    // Damage applied to the target
	Killed  bool   // True if the strike left the target dead
	Message string // Human-readable description
}

// Strike hits target once with weapon. Damage is the weapon's flat damage;
// the target's HP is not floored.
func Strike(weapon entity.Item, target *entity.Enemy) Result {
	target.TakeDamage(weapon.Damage)

	result := Result{
		Damage:  weapon.Damage,
		Killed:  !target.IsAlive(),
		Message: fmt.Sprintf("You use %s against %s!", weapon.Name, target.Name),
	}
	if result.Killed {
		result.Message += fmt.Sprintf(" You killed %s!", target.Name)
	} else {
		result.Message += fmt.Sprintf(" %s HP is %d.", target.Name, target.HP)
	}
	return result
}

// EnemyStrike lets a living enemy hit the player once. Dead enemies do
// nothing and return a zero Result.
func EnemyStrike(enemy *entity.Enemy, player *entity.Player) Result {
	if !enemy.IsAlive() {
		return Result{}
	}

	player.ApplyDamage(enemy.Damage)
	return Result{
		Damage:  enemy.Damage,
		Killed:  !player.IsAlive(),
		Message: fmt.Sprintf("%s does %d damage. You have %d HP remaining.", enemy.Name, enemy.Damage, player.HP),
	}
}
