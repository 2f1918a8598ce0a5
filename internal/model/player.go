package model

import (
	"fmt"
	"math"

	"github.com/rovenko/dungeoncrawl/internal/constants"
)

// Player is the player-controlled entity. Health may transiently exceed
// MaxHealth (temporary health from potions) but never drops below the point
// where TakeDamage reports death.
type Player struct {
	Pos         Vec2      `json:"pos"`
	Health      float64   `json:"health"`
	AttackPower float64   `json:"attack_power"`
	AttackRange float64   `json:"attack_range"`
	LastAttack  int64     `json:"last_attack"` // ms timestamp of last attack
	Inventory   Inventory `json:"inventory"`

	// Presentation timers, decremented by the driver each tick.
	DamageFlash int `json:"damage_flash"`
	AttackFlash int `json:"attack_flash"`
}

// NewPlayer creates a player at the given position with base stats.
func NewPlayer(pos Vec2) *Player {
	return &Player{
		Pos:         pos,
		Health:      constants.PlayerBaseHealth,
		AttackPower: constants.PlayerBaseAttack,
		AttackRange: constants.PlayerAttackRange,
	}
}

// MaxHealth returns the current max health derived from carried armor.
func (p *Player) MaxHealth() float64 {
	return constants.PlayerBaseHealth + float64(p.Inventory.Armor)*constants.ArmorHealthBonus
}

// CanAttack reports whether the attack cooldown has elapsed at now (ms).
func (p *Player) CanAttack(now int64) bool {
	return now-p.LastAttack >= constants.PlayerAttackCooldown
}

// Attack marks an attack at now and returns the attack power.
// The cooldown resets exactly once regardless of how many targets are hit.
func (p *Player) Attack(now int64) float64 {
	p.AttackFlash = 10
	p.LastAttack = now
	return p.AttackPower
}

// TakeDamage applies damage and reports whether the player died (health <= 0).
// Health may go negative internally; display clamping is the renderer's job.
func (p *Player) TakeDamage(amount float64) bool {
	p.Health -= amount
	p.DamageFlash = 20
	return p.Health <= 0
}

// AddItem records an item in the inventory and applies its effect.
//
// Armor heals a little on pickup but never reduces health already above max
// (temporary health is preserved). Potions grant temporary health at or above
// max; below max they heal half the missing health or the base heal amount,
// whichever is greater, capped at max.
func (p *Player) AddItem(kind ItemKind) {
	switch kind {
	case KindWeapon:
		p.AttackPower += constants.WeaponAttackBonus
	case KindArmor:
		newMax := p.MaxHealth() + constants.ArmorHealthBonus
		healed := math.Min(newMax, p.Health+constants.ArmorHealBonus)
		p.Health = math.Max(healed, p.Health)
	case KindPotion:
		maxHealth := p.MaxHealth()
		if p.Health >= maxHealth {
			p.Health += constants.PotionTempHeal
		} else {
			missing := maxHealth - p.Health
			heal := math.Max(constants.PotionHealAmount, math.Floor(missing/2))
			p.Health = math.Min(maxHealth, p.Health+heal)
		}
	}
	p.Inventory.Add(kind)
}

// EffectMessage describes what picking up an item of the given kind would do
// right now. Used for the UI message feed.
func (p *Player) EffectMessage(kind ItemKind) string {
	switch kind {
	case KindWeapon:
		return fmt.Sprintf("Attack +%v", constants.WeaponAttackBonus)
	case KindArmor:
		return fmt.Sprintf("Max Health +%v, Healed +%v", constants.ArmorHealthBonus, constants.ArmorHealBonus)
	case KindPotion:
		maxHealth := p.MaxHealth()
		if p.Health >= maxHealth {
			return fmt.Sprintf("+%v Temporary Health", constants.PotionTempHeal)
		}
		missing := maxHealth - p.Health
		heal := math.Max(constants.PotionHealAmount, math.Floor(missing/2))
		return fmt.Sprintf("Healed +%v", heal)
	}
	return ""
}
