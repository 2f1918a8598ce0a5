package model

import (
	"math"

	"github.com/rovenko/dungeoncrawl/internal/constants"
)

// Monster is an AI-controlled hostile entity.
//
// Miniboss is fixed at spawn from the dungeon level at spawn time and never
// recomputed, even if the dungeon level changes while the monster lives.
// TargetMiniboss is a weak reference by monster ID (resolve-or-clear on
// access), never an owning pointer.
type Monster struct {
	ID    int  `json:"id"`
	Level int  `json:"level"`
	Pos   Vec2 `json:"pos"`

	// Collision box, sized from the tile with the mini-boss scale applied.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Health    float64 `json:"health"`
	MaxHealth float64 `json:"max_health"`
	Damage    float64 `json:"damage"`
	Stats     string  `json:"stats"` // generated flavor text
	Miniboss  bool    `json:"miniboss"`
	Alive     bool    `json:"alive"`

	LastAttack int64 `json:"last_attack"` // ms timestamp of last attack

	// AI behavior state, owned by the behavior engine.
	WanderDir      Vec2          `json:"wander_dir"` // components in {-1, 0, 1}
	Alert          AlertBehavior `json:"alert"`
	AlertTimer     int           `json:"alert_timer"`
	TargetMiniboss int           `json:"target_miniboss"` // monster ID, 0 when none

	// Presentation timers, decremented by the driver each tick.
	DamageFlash int `json:"damage_flash"`
	AttackFlash int `json:"attack_flash"`
}

// NewMonster creates a monster of the given level at pos. The mini-boss flag
// is decided here, once, against dungeonLevel.
func NewMonster(id, level, dungeonLevel int, stats string, pos Vec2) *Monster {
	health := constants.MonsterHealthMultiplier * float64(level)
	size := float64(constants.TileSize)
	miniboss := level >= dungeonLevel+2
	if miniboss {
		size = math.Round(float64(constants.TileSize) * constants.MinibossScale)
	}
	return &Monster{
		ID:        id,
		Level:     level,
		Pos:       pos,
		Width:     size,
		Height:    size,
		Health:    health,
		MaxHealth: health,
		Damage:    constants.MonsterDamageMultiplier * float64(level),
		Stats:     stats,
		Miniboss:  miniboss,
		Alive:     true,
	}
}

// OverrideHealth raises spawn health to hp, clamped to at least the formula
// value. Generated stat blocks may suggest higher HP, never lower.
func (m *Monster) OverrideHealth(hp float64) {
	formula := constants.MonsterHealthMultiplier * float64(m.Level)
	if hp > formula {
		m.Health = hp
		m.MaxHealth = hp
	}
}

// TakeDamage applies damage to the monster and flips Alive at zero health.
func (m *Monster) TakeDamage(amount float64) {
	m.Health -= amount
	m.DamageFlash = 20
	if m.Health <= 0 {
		m.Alive = false
	}
}

// HealthRatio returns current health as a fraction of max health.
func (m *Monster) HealthRatio() float64 {
	if m.MaxHealth <= 0 {
		return 0
	}
	return m.Health / m.MaxHealth
}

// CanAttack reports whether the attack cooldown has elapsed at now (ms).
func (m *Monster) CanAttack(now int64) bool {
	return now-m.LastAttack >= constants.MonsterAttackCooldown
}

// Attack marks an attack at now and returns the damage dealt.
func (m *Monster) Attack(now int64) float64 {
	m.AttackFlash = 10
	m.LastAttack = now
	return m.Damage
}
