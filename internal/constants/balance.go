package constants

// Game balance constants. Tuned values; changing these shifts difficulty,
// not correctness.
const (
	TileSize = 32 // pixels

	// Level generation
	InitialMonsterCount = 3
	MonsterIncrement    = 2
	MaxMonsterCount     = 50

	// Player
	PlayerBaseHealth = 5.0
	PlayerBaseAttack = 0.5
	PlayerSpeed      = 5.0

	// Monster stat formulas: stat = level * multiplier
	MonsterHealthMultiplier = 1.0
	MonsterDamageMultiplier = 1.0

	// Equipment bonuses
	WeaponAttackBonus = 0.05 // each weapon adds this much attack power
	ArmorHealthBonus  = 1.0  // each armor adds this much max health
	ArmorHealBonus    = 1.0  // heal amount when picking up armor
	PotionHealAmount  = 5.0  // minimum heal from potions below max health
	PotionTempHeal    = 1.0  // temporary health from potions at max health

	// Loot
	LootDropChance = 0.3

	// Combat timing (milliseconds)
	PlayerAttackCooldown  = 500
	MonsterAttackCooldown = 1000

	// Combat ranges (pixels, box distance)
	PlayerAttackRange  = TileSize * 2.5 // hit-and-run range
	MonsterAttackRange = TileSize       // melee only

	// Death effect markers
	DeathEffectLifetime         = 90  // ticks, 1.5s at 60 Hz
	DeathEffectMinibossLifetime = 180 // ticks, 3s for mini-bosses
	MinibossScale               = 1.5 // size factor for mini-bosses
)
