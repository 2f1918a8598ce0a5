package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rovenko/dungeoncrawl/internal/constants"
)

func TestLootItem_SlidesTowardTarget(t *testing.T) {
	item := NewSlidingLootItem(KindPotion, NewVec2(0, 0), NewVec2(30, 0), "bottle")

	done := item.Update()
	assert.False(t, done)
	assert.InDelta(t, 3.0, item.Pos.X, 1e-9)

	for range 20 {
		item.Update()
	}
	assert.True(t, item.Update())
	assert.Equal(t, NewVec2(30, 0), item.Pos)
	assert.False(t, item.Sliding)
}

func TestLootItem_RestingItemIsDone(t *testing.T) {
	item := NewLootItem(KindWeapon, NewVec2(5, 5), "sword")
	assert.True(t, item.Update())
	assert.Equal(t, NewVec2(5, 5), item.Pos)
}

func TestDeathEffect_Lifetime(t *testing.T) {
	e := NewDeathEffect(NewVec2(0, 0), false)
	assert.Equal(t, constants.DeathEffectLifetime, e.Lifetime)

	boss := NewDeathEffect(NewVec2(0, 0), true)
	assert.Equal(t, constants.DeathEffectMinibossLifetime, boss.Lifetime)

	for i := 0; i < constants.DeathEffectLifetime-1; i++ {
		assert.False(t, e.Update())
	}
	assert.True(t, e.Update())
}

func TestSnapshot_RestoreProducesFreshInstances(t *testing.T) {
	player := NewPlayer(NewVec2(10, 10))
	monsters := []*Monster{NewMonster(1, 3, 1, "", NewVec2(100, 100))}
	loot := []*LootItem{NewLootItem(KindArmor, NewVec2(200, 200), "helmet")}

	snap := CaptureSnapshot(2, Stats{MonstersDefeated: 7}, player, monsters, loot)

	// Mutating the originals must not touch the snapshot.
	monsters[0].Health = 0
	loot[0].Pos = NewVec2(0, 0)

	restored := snap.RestoreMonsters()
	assert.Equal(t, 3.0, restored[0].Health)
	assert.NotSame(t, monsters[0], restored[0])

	restoredLoot := snap.RestoreLoot()
	assert.Equal(t, NewVec2(200, 200), restoredLoot[0].Pos)
	assert.Equal(t, 7, snap.Stats.MonstersDefeated)
}
