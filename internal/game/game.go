// Package game owns the fixed-tick driver: one discrete update per frame
// calling AI, combat, loot pickup, stairway interaction, and timers in
// order, all synchronously within the tick.
package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/rovenko/dungeoncrawl/internal/ai"
	"github.com/rovenko/dungeoncrawl/internal/combat"
	"github.com/rovenko/dungeoncrawl/internal/constants"
	"github.com/rovenko/dungeoncrawl/internal/level"
	"github.com/rovenko/dungeoncrawl/internal/model"
)

// TicksPerSecond is the nominal fixed tick rate.
const TicksPerSecond = 60

// Input is one tick's worth of directional input.
type Input struct {
	Left, Right, Up, Down bool
}

// ProgressRecorder receives the session totals so cosmetic unlocks can track
// progression. Satisfied by prefs.Manager; pickers without it simply never
// unlock anything new.
type ProgressRecorder interface {
	RecordProgress(monstersKilled, levelsCompleted int)
}

// Game wires the state aggregate to the behavior engine and combat resolver
// and advances the simulation one tick at a time.
type Game struct {
	state    *State
	engine   *ai.Engine
	resolver *combat.Resolver
	progress ProgressRecorder // nil when the variant picker has no progression

	sessionID uuid.UUID
	tick      int64
	nowMS     int64 // simulation clock, derived from the tick counter
}

// New creates a game over the given arena with a seeded random source and
// generates the first level.
func New(arenaWidth, arenaHeight float64, rng *rand.Rand, flavor level.FlavorSource, variants level.VariantPicker) (*Game, error) {
	gen, err := level.NewGenerator(arenaWidth, arenaHeight, rng, flavor, variants)
	if err != nil {
		return nil, fmt.Errorf("creating level generator: %w", err)
	}

	g := &Game{
		state:     NewState(gen),
		engine:    ai.NewEngine(arenaWidth, arenaHeight, rng),
		resolver:  combat.NewResolver(),
		sessionID: uuid.New(),
	}
	if rec, ok := variants.(ProgressRecorder); ok {
		g.progress = rec
	}

	if err := g.state.GenerateLevel(); err != nil {
		return nil, err
	}
	return g, nil
}

// State returns the game-state aggregate for renderers and stores.
func (g *Game) State() *State { return g.state }

// SessionID returns the unique id of this play session.
func (g *Game) SessionID() uuid.UUID { return g.sessionID }

// Now returns the simulation clock in milliseconds.
func (g *Game) Now() int64 { return g.nowMS }

// Tick advances the simulation one frame: player movement, monster AI,
// combat, loot pickup, stairway interaction, timers. A paused game skips
// the tick entirely; after game over only the clock advances.
func (g *Game) Tick(in Input) error {
	if g.state.IsPaused() {
		return nil
	}

	g.tick++
	g.nowMS = g.tick * 1000 / TicksPerSecond

	if g.state.IsGameOver() {
		return nil
	}

	g.movePlayer(in)
	g.engine.Update(g.state.Player(), g.state.Monsters())
	g.resolver.Resolve(g.nowMS, g.state)
	g.pickupLoot()
	if err := g.enterStairway(); err != nil {
		return err
	}
	g.state.UpdateTimers()
	g.recordProgress()

	return nil
}

// recordProgress feeds the session totals to the variant progression.
// Unlocks are monotonic, so calling with identical totals is a no-op.
func (g *Game) recordProgress() {
	if g.progress == nil {
		return
	}
	stats := g.state.Stats()
	g.progress.RecordProgress(stats.MonstersDefeated, stats.LevelsCompleted)
}

// movePlayer applies directional input and clamps to the arena.
func (g *Game) movePlayer(in Input) {
	player := g.state.Player()

	if in.Left {
		player.Pos.X -= constants.PlayerSpeed
	}
	if in.Right {
		player.Pos.X += constants.PlayerSpeed
	}
	if in.Up {
		player.Pos.Y -= constants.PlayerSpeed
	}
	if in.Down {
		player.Pos.Y += constants.PlayerSpeed
	}

	const tile = constants.TileSize
	player.Pos.X = max(0, min(g.state.gen.ArenaWidth()-tile, player.Pos.X))
	player.Pos.Y = max(0, min(g.state.gen.ArenaHeight()-tile, player.Pos.Y))
}

// pickupLoot collects every loot item within one tile of the player,
// applying its effect and counting it.
func (g *Game) pickupLoot() {
	player := g.state.Player()

	// Iterate a copy: pickup mutates the loot list.
	items := make([]*model.LootItem, len(g.state.Loot()))
	copy(items, g.state.Loot())

	for _, item := range items {
		if !player.Pos.WithinBox(item.Pos, constants.TileSize) {
			continue
		}

		effect := player.EffectMessage(item.Kind)
		player.AddItem(item.Kind)
		g.state.RemoveLoot(item)
		g.state.SetMessage(fmt.Sprintf("Picked up %s! %s", item.Kind, effect), 180)
	}
}

// enterStairway advances the level when the player reaches the stairway.
func (g *Game) enterStairway() error {
	stairway := g.state.Stairway()
	if stairway == nil {
		return nil
	}

	if g.state.Player().Pos.WithinBox(stairway.Pos, constants.TileSize) {
		return g.state.AdvanceLevel()
	}
	return nil
}

// Retry restores the level-start snapshot.
func (g *Game) Retry() error { return g.state.Retry() }

// Restart resets the run to level 1, keeping lifetime deaths and loot.
func (g *Game) Restart() error { return g.state.Restart() }

// SetPaused toggles the pause flag.
func (g *Game) SetPaused(paused bool) { g.state.SetPaused(paused) }
