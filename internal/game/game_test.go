package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rovenko/dungeoncrawl/internal/assets"
	"github.com/rovenko/dungeoncrawl/internal/constants"
	"github.com/rovenko/dungeoncrawl/internal/model"
	"github.com/rovenko/dungeoncrawl/internal/prefs"
)

func newTestGame(t *testing.T, seed uint64) *Game {
	t.Helper()
	g, err := New(testArenaW, testArenaH, rand.New(rand.NewPCG(seed, seed+1)),
		assets.NewPlaceholder(), staticVariants{})
	require.NoError(t, err)
	return g
}

func TestNew_GeneratesFirstLevel(t *testing.T) {
	g := newTestGame(t, 1)

	st := g.State()
	assert.Equal(t, 1, st.DungeonLevel())
	assert.NotEmpty(t, st.Monsters())
	assert.NotEqual(t, [16]byte{}, [16]byte(g.SessionID()))
	assert.Equal(t, model.NewVec2(testArenaW/2, testArenaH/2), st.Player().Pos)
}

func TestNew_RejectsBadArena(t *testing.T) {
	_, err := New(10, 10, rand.New(rand.NewPCG(1, 2)), assets.NewPlaceholder(), staticVariants{})
	assert.Error(t, err)
}

func TestTick_ClockAdvances(t *testing.T) {
	g := newTestGame(t, 2)

	for range TicksPerSecond {
		require.NoError(t, g.Tick(Input{}))
	}
	assert.Equal(t, int64(1000), g.Now(), "sixty ticks is one simulated second")
}

func TestTick_MovesAndClampsPlayer(t *testing.T) {
	g := newTestGame(t, 3)
	player := g.State().Player()

	startX := player.Pos.X
	require.NoError(t, g.Tick(Input{Right: true}))
	assert.Equal(t, startX+constants.PlayerSpeed, player.Pos.X)

	player.Pos = model.NewVec2(0, 0)
	require.NoError(t, g.Tick(Input{Left: true, Up: true}))
	assert.Equal(t, model.NewVec2(0, 0), player.Pos, "movement clamps at the arena edge")

	player.Pos = model.NewVec2(testArenaW, testArenaH)
	require.NoError(t, g.Tick(Input{Right: true, Down: true}))
	assert.Equal(t, testArenaW-float64(constants.TileSize), player.Pos.X)
	assert.Equal(t, testArenaH-float64(constants.TileSize), player.Pos.Y)
}

func TestTick_PausedSkipsEverything(t *testing.T) {
	g := newTestGame(t, 4)
	player := g.State().Player()
	startPos := player.Pos

	g.SetPaused(true)
	for range 10 {
		require.NoError(t, g.Tick(Input{Right: true}))
	}

	assert.Equal(t, int64(0), g.Now(), "clock frozen while paused")
	assert.Equal(t, startPos, player.Pos)

	g.SetPaused(false)
	require.NoError(t, g.Tick(Input{Right: true}))
	assert.NotEqual(t, startPos, player.Pos)
}

func TestTick_GameOverFreezesSimulation(t *testing.T) {
	g := newTestGame(t, 5)
	st := g.State()
	st.SetGameOver()

	startPos := st.Player().Pos
	require.NoError(t, g.Tick(Input{Right: true}))

	assert.Positive(t, g.Now(), "clock still runs after game over")
	assert.Equal(t, startPos, st.Player().Pos)
}

func TestTick_PicksUpLoot(t *testing.T) {
	g := newTestGame(t, 6)
	st := g.State()
	player := st.Player()

	item := model.NewLootItem(model.KindWeapon, player.Pos, "v")
	st.loot = append(st.loot, item)

	require.NoError(t, g.Tick(Input{}))

	assert.NotContains(t, st.Loot(), item)
	assert.Equal(t, 1, player.Inventory.Weapons)
	assert.InDelta(t, constants.PlayerBaseAttack+constants.WeaponAttackBonus, player.AttackPower, 1e-9)

	msg, _ := st.Message()
	assert.Contains(t, msg, "Picked up weapon")
}

func TestTick_StairwayAdvancesLevel(t *testing.T) {
	g := newTestGame(t, 7)
	st := g.State()

	st.stairway = model.NewStairway(st.Player().Pos)
	require.NoError(t, g.Tick(Input{}))

	assert.Equal(t, 2, st.DungeonLevel())
	assert.Equal(t, 1, st.Stats().LevelsCompleted)
	assert.Nil(t, st.Stairway())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	g := newTestGame(t, 8)
	st := g.State()

	for range 30 {
		require.NoError(t, g.Tick(Input{Right: true}))
	}
	st.Player().AddItem(model.KindWeapon)
	st.SpawnStairway()

	save := g.Save()
	require.NotNil(t, save)
	assert.Equal(t, g.SessionID(), save.SessionID)
	assert.False(t, save.SavedAt.IsZero())

	other := newTestGame(t, 9)
	other.Load(save)
	restored := other.State()

	assert.Equal(t, g.SessionID(), other.SessionID())
	assert.Equal(t, g.Now(), other.Now())
	assert.Equal(t, st.DungeonLevel(), restored.DungeonLevel())
	assert.Equal(t, st.Stats(), restored.Stats())
	assert.Equal(t, *st.Player(), *restored.Player())
	assert.NotSame(t, st.Player(), restored.Player())

	require.Len(t, restored.Monsters(), len(st.Monsters()))
	for i, m := range st.Monsters() {
		assert.Equal(t, *m, *restored.Monsters()[i])
	}
	require.NotNil(t, restored.Stairway())
	assert.Equal(t, st.Stairway().Pos, restored.Stairway().Pos)

	// Retry still works after a save/load cycle.
	require.NoError(t, other.Retry())
	assert.Equal(t, st.DungeonLevel(), restored.DungeonLevel())
}

func TestTick_RecordsUnlockProgress(t *testing.T) {
	rng := rand.New(rand.NewPCG(12, 13))
	manager := prefs.NewManager(rng)
	g, err := New(testArenaW, testArenaH, rng, assets.NewPlaceholder(), manager)
	require.NoError(t, err)

	assert.Len(t, manager.Unlocked(model.KindWeapon), 1, "base variant only before any kills")

	st := g.State()
	st.stats.MonstersDefeated = 25
	st.stats.LevelsCompleted = 3
	require.NoError(t, g.Tick(Input{}))

	assert.Len(t, manager.Unlocked(model.KindWeapon), 3)
	assert.Len(t, manager.Unlocked(model.KindArmor), 2)
	assert.Len(t, manager.Unlocked(model.KindPotion), 2)

	// New drops now have more than the base variant to draw from.
	seen := map[string]bool{}
	for range 200 {
		seen[manager.PickVariant(model.KindWeapon)] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestLoad_RecordsUnlockProgress(t *testing.T) {
	g := newTestGame(t, 14)
	g.State().stats.MonstersDefeated = 10
	save := g.Save()

	rng := rand.New(rand.NewPCG(15, 16))
	manager := prefs.NewManager(rng)
	other, err := New(testArenaW, testArenaH, rng, assets.NewPlaceholder(), manager)
	require.NoError(t, err)
	other.Load(save)

	assert.Len(t, manager.Unlocked(model.KindWeapon), 2, "unlocks re-derived from the restored totals")
}

func TestLoad_ClearsTransientState(t *testing.T) {
	g := newTestGame(t, 10)
	save := g.Save()

	other := newTestGame(t, 11)
	other.State().AddDeathEffect(model.NewVec2(100, 100), false)
	other.State().SetMessage("stale", 100)

	other.Load(save)

	assert.Empty(t, other.State().Effects())
	msg, ticks := other.State().Message()
	assert.Empty(t, msg)
	assert.Zero(t, ticks)
}
