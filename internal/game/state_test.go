package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rovenko/dungeoncrawl/internal/assets"
	"github.com/rovenko/dungeoncrawl/internal/level"
	"github.com/rovenko/dungeoncrawl/internal/model"
)

const (
	testArenaW = 1200
	testArenaH = 800
)

// staticVariants satisfies level.VariantPicker without the preference manager.
type staticVariants struct{}

func (staticVariants) PickVariant(kind model.ItemKind) string { return string(kind) + "_base" }

func newTestState(t *testing.T, seed uint64) *State {
	t.Helper()
	gen, err := level.NewGenerator(testArenaW, testArenaH, rand.New(rand.NewPCG(seed, seed+1)),
		assets.NewPlaceholder(), staticVariants{})
	require.NoError(t, err)

	st := NewState(gen)
	require.NoError(t, st.GenerateLevel())
	return st
}

func TestSpawnStairway_Idempotent(t *testing.T) {
	st := newTestState(t, 1)

	st.SpawnStairway()
	first := st.Stairway()
	require.NotNil(t, first)

	st.SpawnStairway()
	assert.Same(t, first, st.Stairway(), "existing stairway must not be replaced")
}

func TestRemoveMonster_CountsKill(t *testing.T) {
	st := newTestState(t, 2)
	before := len(st.Monsters())

	st.RemoveMonster(st.Monsters()[0])

	assert.Len(t, st.Monsters(), before-1)
	assert.Equal(t, 1, st.Stats().MonstersDefeated)

	// Removing a monster that is not on the roster changes nothing.
	st.RemoveMonster(model.NewMonster(9999, 1, 1, "", model.NewVec2(0, 0)))
	assert.Len(t, st.Monsters(), before-1)
	assert.Equal(t, 1, st.Stats().MonstersDefeated)
}

func TestRemoveLoot_CountsPickup(t *testing.T) {
	st := newTestState(t, 3)

	item := model.NewLootItem(model.KindPotion, model.NewVec2(100, 100), "v")
	st.loot = append(st.loot, item)

	st.RemoveLoot(item)
	assert.Empty(t, st.Loot())
	assert.Equal(t, 1, st.Stats().ItemsCollected)
}

func TestSetGameOver_LatchesOnce(t *testing.T) {
	st := newTestState(t, 4)

	st.SetGameOver()
	st.SetGameOver()

	assert.True(t, st.IsGameOver())
	assert.Equal(t, 1, st.Stats().Deaths, "deaths counted once per game over")
}

func TestAdvanceLevel(t *testing.T) {
	st := newTestState(t, 5)
	st.SpawnStairway()

	require.NoError(t, st.AdvanceLevel())

	assert.Equal(t, 2, st.DungeonLevel())
	assert.Equal(t, 1, st.Stats().LevelsCompleted)
	assert.Nil(t, st.Stairway())
	assert.NotEmpty(t, st.Monsters())

	msg, ticks := st.Message()
	assert.Equal(t, "Entering Level 2!", msg)
	assert.Positive(t, ticks)
}

func TestRetry_RestoresLevelStart(t *testing.T) {
	st := newTestState(t, 6)

	startCount := len(st.Monsters())
	startHealth := st.Player().Health
	startPos := st.Player().Pos
	damaged := st.Monsters()[0]

	// A failed attempt: progress within the level, then death.
	damaged.TakeDamage(0.5)
	st.RemoveMonster(st.Monsters()[1])
	st.Player().Health = 0.5
	st.Player().Pos = model.NewVec2(50, 50)
	st.SetGameOver()

	require.NoError(t, st.Retry())

	assert.False(t, st.IsGameOver())
	assert.Len(t, st.Monsters(), startCount)
	assert.Equal(t, startHealth, st.Player().Health)
	assert.Equal(t, startPos, st.Player().Pos)
	assert.Equal(t, model.Stats{}, st.Stats(), "counters back to the level-start capture")

	// Restored monsters are fresh instances at full health.
	restored := st.Monsters()[0]
	assert.NotSame(t, damaged, restored)
	assert.Equal(t, restored.MaxHealth, restored.Health)
}

func TestRetry_WithoutSnapshotRestarts(t *testing.T) {
	st := newTestState(t, 7)
	st.snapshot = nil
	st.level = 5
	st.SetGameOver()

	require.NoError(t, st.Retry())

	assert.False(t, st.IsGameOver())
	assert.Equal(t, 1, st.DungeonLevel())
	assert.NotEmpty(t, st.Monsters())
}

func TestRestart_KeepsDeathsAndLoot(t *testing.T) {
	st := newTestState(t, 8)

	ghost := model.NewLootItem(model.KindWeapon, model.NewVec2(200, 200), "v")
	st.loot = append(st.loot, ghost)
	st.stats.MonstersDefeated = 7
	st.level = 4
	st.SetGameOver()
	st.SetPaused(true)

	require.NoError(t, st.Restart())

	assert.False(t, st.IsGameOver())
	assert.False(t, st.IsPaused())
	assert.Equal(t, 1, st.DungeonLevel())
	assert.Equal(t, model.Stats{Deaths: 1}, st.Stats())
	assert.Contains(t, st.Loot(), ghost, "ground loot survives the restart")

	player := st.Player()
	assert.Equal(t, model.NewVec2(testArenaW/2, testArenaH/2), player.Pos)
	assert.Equal(t, 5.0, player.Health)
	assert.Zero(t, player.Inventory.Total())
}

func TestUpdateTimers(t *testing.T) {
	st := newTestState(t, 9)

	st.SetMessage("hit", 2)
	st.Player().DamageFlash = 1
	st.AddDeathEffect(model.NewVec2(100, 100), false)
	sliding := model.NewSlidingLootItem(model.KindArmor, model.NewVec2(0, 0), model.NewVec2(30, 0), "v")
	st.loot = append(st.loot, sliding)

	st.UpdateTimers()

	_, ticks := st.Message()
	assert.Equal(t, 1, ticks)
	assert.Zero(t, st.Player().DamageFlash)
	assert.Len(t, st.Effects(), 1)
	assert.Equal(t, 3.0, sliding.Pos.X, "one slide step toward the target")

	// A regular death effect expires after its full lifetime.
	for range 89 {
		st.UpdateTimers()
	}
	assert.Empty(t, st.Effects())
}
