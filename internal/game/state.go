package game

import (
	"fmt"
	"log/slog"

	"github.com/rovenko/dungeoncrawl/internal/level"
	"github.com/rovenko/dungeoncrawl/internal/model"
)

// State is the single mutable game-state aggregate: player, monster roster,
// loot, stairway, effects, counters, and the level-start snapshot. It is
// owned by the tick driver and lent to each component for one tick.
//
// State implements combat.State.
type State struct {
	level    int
	stats    model.Stats
	gameOver bool
	paused   bool

	player   *model.Player
	monsters []*model.Monster
	loot     []*model.LootItem
	stairway *model.Stairway
	effects  []*model.DeathEffect
	snapshot *model.Snapshot

	message      string
	messageTimer int

	gen *level.Generator
}

// NewState creates the aggregate with the player at the arena center and no
// level generated yet.
func NewState(gen *level.Generator) *State {
	return &State{
		level:  1,
		player: model.NewPlayer(model.NewVec2(gen.ArenaWidth()/2, gen.ArenaHeight()/2)),
		gen:    gen,
	}
}

// Player returns the player entity.
func (s *State) Player() *model.Player { return s.player }

// Monsters returns the live monster roster.
func (s *State) Monsters() []*model.Monster { return s.monsters }

// Loot returns the loot items on the ground.
func (s *State) Loot() []*model.LootItem { return s.loot }

// Stairway returns the level exit, nil while monsters remain.
func (s *State) Stairway() *model.Stairway { return s.stairway }

// Effects returns the live death-effect markers.
func (s *State) Effects() []*model.DeathEffect { return s.effects }

// DungeonLevel returns the current dungeon level.
func (s *State) DungeonLevel() int { return s.level }

// Stats returns the running session totals.
func (s *State) Stats() model.Stats { return s.stats }

// IsGameOver reports whether the game-over flag is latched.
func (s *State) IsGameOver() bool { return s.gameOver }

// IsPaused reports whether ticking is suspended.
func (s *State) IsPaused() bool { return s.paused }

// SetPaused toggles the pause flag. A paused game skips ticking entirely.
func (s *State) SetPaused(paused bool) { s.paused = paused }

// Message returns the transient UI message and its remaining ticks.
func (s *State) Message() (string, int) { return s.message, s.messageTimer }

// SetMessage sets the transient UI message for the given tick count.
func (s *State) SetMessage(text string, ticks int) {
	s.message = text
	s.messageTimer = ticks
}

// SetGameOver latches the game-over flag and records the death in the
// lifetime counter.
func (s *State) SetGameOver() {
	if s.gameOver {
		return
	}
	s.gameOver = true
	s.stats.Deaths++
	slog.Info("game over", "level", s.level, "deaths", s.stats.Deaths)
}

// RemoveMonster drops a monster from the roster and counts the kill.
func (s *State) RemoveMonster(m *model.Monster) {
	for i, other := range s.monsters {
		if other == m {
			s.monsters = append(s.monsters[:i], s.monsters[i+1:]...)
			s.stats.MonstersDefeated++
			return
		}
	}
}

// RemoveLoot drops a loot item from the ground and counts the pickup.
func (s *State) RemoveLoot(item *model.LootItem) {
	for i, other := range s.loot {
		if other == item {
			s.loot = append(s.loot[:i], s.loot[i+1:]...)
			s.stats.ItemsCollected++
			return
		}
	}
}

// AddDeathEffect spawns a death marker at pos.
func (s *State) AddDeathEffect(pos model.Vec2, miniboss bool) {
	s.effects = append(s.effects, model.NewDeathEffect(pos, miniboss))
}

// DropLoot rolls loot near pos and adds the drops to the ground.
func (s *State) DropLoot(count float64, pos model.Vec2) {
	s.loot = append(s.loot, s.gen.RollLoot(count, pos)...)
}

// DropLootKind places one item of a specific kind at pos.
func (s *State) DropLootKind(kind model.ItemKind, pos model.Vec2) {
	s.loot = append(s.loot, s.gen.RollLootKind(kind, pos))
}

// SpawnStairway spawns the level exit once the roster is cleared.
// Idempotent: a no-op while a stairway already exists.
func (s *State) SpawnStairway() {
	if s.stairway != nil {
		return
	}
	pos := s.gen.StairwayPosition(s.player.Pos, s.loot)
	s.stairway = model.NewStairway(pos)
	s.SetMessage("Level cleared! Collect loot, then find the stairway!", 240)
}

// GenerateLevel builds the current level's roster and captures the
// level-start snapshot backing retry. Loot persists across levels.
func (s *State) GenerateLevel() error {
	monsters, err := s.gen.Generate(s.level, s.player.Pos)
	if err != nil {
		return fmt.Errorf("generating level %d: %w", s.level, err)
	}
	s.monsters = monsters
	s.stairway = nil
	s.snapshot = model.CaptureSnapshot(s.level, s.stats, s.player, s.monsters, s.loot)
	return nil
}

// AdvanceLevel moves to the next dungeon level and regenerates.
func (s *State) AdvanceLevel() error {
	s.stats.LevelsCompleted++
	s.level++
	s.stairway = nil
	s.SetMessage(fmt.Sprintf("Entering Level %d!", s.level), 120)
	slog.Info("advancing level", "level", s.level)
	return s.GenerateLevel()
}

// Retry restores the level-start snapshot exactly: player stats, monster
// roster, and loot as captured, with counters from before the failed
// attempt. Without a snapshot it degrades to a full restart.
func (s *State) Retry() error {
	if s.snapshot == nil {
		slog.Warn("retry requested without snapshot, restarting")
		return s.Restart()
	}

	snap := s.snapshot
	s.level = snap.Level
	s.stats = snap.Stats
	player := snap.Player
	s.player = &player
	s.monsters = snap.RestoreMonsters()
	s.loot = snap.RestoreLoot()
	s.stairway = nil
	s.effects = nil
	s.gameOver = false
	s.message = ""
	s.messageTimer = 0

	slog.Info("level retried", "level", s.level)
	return nil
}

// Restart resets the run to level 1. The lifetime death counter and the
// loot on the ground both survive: past runs leave their ghosts behind.
func (s *State) Restart() error {
	deaths := s.stats.Deaths

	s.gameOver = false
	s.paused = false
	s.level = 1
	s.stats = model.Stats{Deaths: deaths}
	s.monsters = nil
	s.stairway = nil
	s.effects = nil
	s.message = ""
	s.messageTimer = 0
	s.player = model.NewPlayer(model.NewVec2(s.gen.ArenaWidth()/2, s.gen.ArenaHeight()/2))

	return s.GenerateLevel()
}

// UpdateTimers advances all per-tick countdowns: the message feed, flash
// timers, loot slide animations, and death-effect lifetimes.
func (s *State) UpdateTimers() {
	if s.messageTimer > 0 {
		s.messageTimer--
	}

	if s.player.DamageFlash > 0 {
		s.player.DamageFlash--
	}
	if s.player.AttackFlash > 0 {
		s.player.AttackFlash--
	}

	for _, m := range s.monsters {
		if m.DamageFlash > 0 {
			m.DamageFlash--
		}
		if m.AttackFlash > 0 {
			m.AttackFlash--
		}
	}

	for _, item := range s.loot {
		item.Update()
	}

	// Collect expirations, then apply, to avoid mutating mid-iteration.
	var live []*model.DeathEffect
	for _, e := range s.effects {
		if !e.Update() {
			live = append(live, e)
		}
	}
	s.effects = live
}
