// Package prefs manages cosmetic item variants and their unlock progression.
// The simulation core treats returned variant ids as opaque strings; nothing
// here affects combat or AI outcomes.
package prefs

import (
	"math/rand/v2"

	"github.com/rovenko/dungeoncrawl/internal/model"
)

// Unlock thresholds: lifetime totals required per additional variant.
const (
	MonstersPerWeapon = 10
	MonstersPerArmor  = 15
	LevelsPerPotion   = 3
)

// variantDefinitions lists every variant per kind, in unlock order.
var variantDefinitions = map[model.ItemKind][]string{
	model.KindWeapon: {"sword", "axe", "dagger", "mace", "spear"},
	model.KindArmor:  {"helmet", "shield", "chestplate", "gauntlets", "boots"},
	model.KindPotion: {"bottle", "vial", "flask", "orb", "crystal"},
}

// Manager tracks unlocked variants and picks one at random for each new
// loot item.
type Manager struct {
	rng      *rand.Rand
	unlocked map[model.ItemKind][]string
}

// NewManager creates a variant manager with only the base variants unlocked.
func NewManager(rng *rand.Rand) *Manager {
	return &Manager{
		rng: rng,
		unlocked: map[model.ItemKind][]string{
			model.KindWeapon: {variantDefinitions[model.KindWeapon][0]},
			model.KindArmor:  {variantDefinitions[model.KindArmor][0]},
			model.KindPotion: {variantDefinitions[model.KindPotion][0]},
		},
	}
}

// PickVariant returns a random unlocked variant id for the given kind.
func (m *Manager) PickVariant(kind model.ItemKind) string {
	variants := m.unlocked[kind]
	if len(variants) == 0 {
		return ""
	}
	return variants[m.rng.IntN(len(variants))]
}

// Unlocked returns the unlocked variants for a kind, in unlock order.
func (m *Manager) Unlocked(kind model.ItemKind) []string {
	return m.unlocked[kind]
}

// RecordProgress re-derives unlocks from lifetime totals. Thresholds are
// cumulative: every MonstersPerWeapon kills unlock the next weapon variant,
// and so on down each definition list.
func (m *Manager) RecordProgress(monstersKilled, levelsCompleted int) {
	m.applyUnlocks(model.KindWeapon, 1+monstersKilled/MonstersPerWeapon)
	m.applyUnlocks(model.KindArmor, 1+monstersKilled/MonstersPerArmor)
	m.applyUnlocks(model.KindPotion, 1+levelsCompleted/LevelsPerPotion)
}

func (m *Manager) applyUnlocks(kind model.ItemKind, count int) {
	defs := variantDefinitions[kind]
	if count > len(defs) {
		count = len(defs)
	}
	if count > len(m.unlocked[kind]) {
		m.unlocked[kind] = defs[:count]
	}
}
