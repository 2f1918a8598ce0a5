package combat

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/rovenko/dungeoncrawl/internal/constants"
	"github.com/rovenko/dungeoncrawl/internal/model"
)

// Loot reward tiers on monster death.
const (
	oneShotLootRolls  = 10 // monster that can one-shot the player
	minibossLootRolls = 3
	messageTicks      = 120
)

// State is the slice of game state the resolver needs for one tick.
// Implemented by the game state aggregate; defined here so combat does not
// depend on the driver package.
type State interface {
	Player() *model.Player
	Monsters() []*model.Monster
	DungeonLevel() int

	// RemoveMonster drops a monster from the live roster.
	RemoveMonster(m *model.Monster)
	// AddDeathEffect spawns a death marker at pos.
	AddDeathEffect(pos model.Vec2, miniboss bool)
	// DropLoot rolls loot near pos; count is both the number of Bernoulli
	// trials and, when fractional, each trial's success probability.
	DropLoot(count float64, pos model.Vec2)
	// DropLootKind places one item of a specific kind at pos.
	DropLootKind(kind model.ItemKind, pos model.Vec2)
	// SpawnStairway spawns the level exit; no-op if one already exists.
	SpawnStairway()
	// IsGameOver reports whether the game-over flag is latched.
	IsGameOver() bool
	// SetGameOver latches the game-over flag and records the death.
	SetGameOver()
	// SetMessage sets the transient UI message for the given tick count.
	SetMessage(text string, ticks int)
}

// Resolver resolves one tick of combat in both directions: the player's
// cooldown-gated multi-target attack and each monster's melee attack.
type Resolver struct{}

// NewResolver creates a combat resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve runs one combat tick at simulation time now (ms).
//
// The player attacks first and may empty part of the roster; surviving
// monsters then attack. Deaths are handled inline: roster removal, death
// marker, loot drop, and the stairway trigger when the roster empties.
func (r *Resolver) Resolve(now int64, st State) {
	player := st.Player()

	if player.CanAttack(now) {
		targets := monstersInRange(player, st.Monsters())
		if len(targets) > 0 {
			r.playerAttack(now, player, targets, st)
		}
	}

	for _, m := range st.Monsters() {
		if m.Alive && m.CanAttack(now) && player.Pos.WithinBox(m.Pos, constants.MonsterAttackRange) {
			r.monsterAttack(now, m, player, st)
		}
	}
}

// monstersInRange returns living monsters within the player's box attack
// range, sorted by ascending Euclidean distance.
func monstersInRange(player *model.Player, monsters []*model.Monster) []*model.Monster {
	var inRange []*model.Monster
	for _, m := range monsters {
		if !m.Alive {
			continue
		}
		if player.Pos.WithinBox(m.Pos, player.AttackRange) {
			inRange = append(inRange, m)
		}
	}

	sort.Slice(inRange, func(i, j int) bool {
		return player.Pos.DistanceSquared(inRange[i].Pos) < player.Pos.DistanceSquared(inRange[j].Pos)
	})
	return inRange
}

// playerAttack hits every in-range monster simultaneously with damage
// falloff: the i-th closest (0-indexed) takes attack_power/(i+1). The
// cooldown resets exactly once regardless of target count.
func (r *Resolver) playerAttack(now int64, player *model.Player, targets []*model.Monster, st State) {
	power := player.Attack(now)

	for i, m := range targets {
		damage := power / float64(i+1)
		m.TakeDamage(damage)

		if !m.Alive {
			r.handleMonsterDeath(m, st)
		}
	}
}

// monsterAttack applies one melee hit to the player.
func (r *Resolver) monsterAttack(now int64, m *model.Monster, player *model.Player, st State) {
	damage := m.Attack(now)
	died := player.TakeDamage(damage)

	st.SetMessage(fmt.Sprintf("Monster hits for %g damage!", damage), messageTicks)

	// Legacy loot drops once even when several monsters land killing
	// blows in the same tick.
	if died && !st.IsGameOver() {
		st.SetGameOver()
		r.handlePlayerDeath(player, st)
	}
}

// handleMonsterDeath removes the monster, leaves a death marker, and rolls
// loot by danger tier: a monster whose damage covers the player's whole max
// health pays the fixed one-shot reward, mini-bosses pay three rolls, and
// trivial stragglers pay at half the normal chance.
func (r *Resolver) handleMonsterDeath(m *model.Monster, st State) {
	var count float64
	switch {
	case m.Damage >= st.Player().MaxHealth():
		count = oneShotLootRolls
	case m.Miniboss:
		count = minibossLootRolls
	case m.Level < st.DungeonLevel()-1:
		count = constants.LootDropChance * 0.5
	default:
		count = constants.LootDropChance
	}

	pos := m.Pos
	st.RemoveMonster(m)
	st.AddDeathEffect(pos, m.Miniboss)
	st.DropLoot(count, pos)

	slog.Debug("monster died",
		"monster", m.ID,
		"level", m.Level,
		"miniboss", m.Miniboss,
		"lootRolls", count)

	if len(st.Monsters()) == 0 {
		st.SpawnStairway()
	}
}

// handlePlayerDeath drops legacy loot at the death position: half of the
// accumulated armor and weapon pieces, at least one of each kind owned.
// Rewards the next run; counters are untouched here.
func (r *Resolver) handlePlayerDeath(player *model.Player, st State) {
	armorPieces := player.Inventory.Armor
	weaponPieces := player.Inventory.Weapons

	armorDrop := armorPieces / 2
	weaponDrop := weaponPieces / 2
	if armorPieces > 0 && armorDrop == 0 {
		armorDrop = 1
	}
	if weaponPieces > 0 && weaponDrop == 0 {
		weaponDrop = 1
	}

	for range armorDrop {
		st.DropLootKind(model.KindArmor, player.Pos)
	}
	for range weaponDrop {
		st.DropLootKind(model.KindWeapon, player.Pos)
	}

	if armorDrop+weaponDrop > 0 {
		st.SetMessage(fmt.Sprintf("Your spirit left behind %d armor and %d weapons...", armorDrop, weaponDrop), 300)
		slog.Info("legacy loot dropped", "armor", armorDrop, "weapons", weaponDrop)
	}
}
