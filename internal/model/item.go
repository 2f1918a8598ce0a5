package model

// ItemKind classifies loot items. The closed set mirrors what the player
// inventory can carry.
type ItemKind string

const (
	KindWeapon ItemKind = "weapon"
	KindArmor  ItemKind = "armor"
	KindPotion ItemKind = "potion"
)

// ItemKinds returns the closed set of item kinds, in stable order.
func ItemKinds() []ItemKind {
	return []ItemKind{KindWeapon, KindArmor, KindPotion}
}

// Valid reports whether k is one of the known item kinds.
func (k ItemKind) Valid() bool {
	switch k {
	case KindWeapon, KindArmor, KindPotion:
		return true
	}
	return false
}

// Inventory is a multiset of item kinds carried by the player.
type Inventory struct {
	Weapons int `json:"weapons"`
	Armor   int `json:"armor"`
	Potions int `json:"potions"`
}

// Add records one item of the given kind.
func (inv *Inventory) Add(kind ItemKind) {
	switch kind {
	case KindWeapon:
		inv.Weapons++
	case KindArmor:
		inv.Armor++
	case KindPotion:
		inv.Potions++
	}
}

// Count returns how many items of the given kind are carried.
func (inv Inventory) Count(kind ItemKind) int {
	switch kind {
	case KindWeapon:
		return inv.Weapons
	case KindArmor:
		return inv.Armor
	case KindPotion:
		return inv.Potions
	}
	return 0
}

// Total returns the total number of carried items.
func (inv Inventory) Total() int {
	return inv.Weapons + inv.Armor + inv.Potions
}
