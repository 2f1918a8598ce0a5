package model

// slideSpeed is how fast a dropped item slides toward its scatter target,
// in pixels per tick.
const slideSpeed = 3.0

// LootItem is an item lying on the ground.
//
// The slide target only drives the drop animation; pickup always tests the
// current position. Loot persists across level transitions and restarts.
type LootItem struct {
	Pos     Vec2     `json:"pos"`
	Kind    ItemKind `json:"kind"`
	Variant string   `json:"variant"` // opaque cosmetic variant id

	Target  Vec2 `json:"target"`
	Sliding bool `json:"sliding"`
}

// NewLootItem creates a loot item resting at pos.
func NewLootItem(kind ItemKind, pos Vec2, variant string) *LootItem {
	return &LootItem{Pos: pos, Kind: kind, Variant: variant, Target: pos}
}

// NewSlidingLootItem creates a loot item at pos that slides toward target.
func NewSlidingLootItem(kind ItemKind, pos, target Vec2, variant string) *LootItem {
	return &LootItem{Pos: pos, Kind: kind, Variant: variant, Target: target, Sliding: true}
}

// Update advances the slide animation one tick and reports whether the item
// has come to rest.
func (l *LootItem) Update() bool {
	if !l.Sliding {
		return true
	}

	delta := l.Target.Sub(l.Pos)
	dist := l.Pos.Distance(l.Target)

	if dist <= slideSpeed {
		l.Pos = l.Target
		l.Sliding = false
		return true
	}

	l.Pos = l.Pos.Add(delta.Scale(slideSpeed / dist))
	return false
}
