package game

import (
	"time"

	"github.com/rovenko/dungeoncrawl/internal/model"
)

// Save captures the full session state as a persistence DTO, including the
// level-start snapshot so retry survives a save/load cycle.
func (g *Game) Save() *model.SaveState {
	s := g.state

	save := &model.SaveState{
		SessionID: g.sessionID,
		SavedAt:   time.Now().UTC(),
		NowMS:     g.nowMS,
		Level:     s.level,
		Stats:     s.stats,
		GameOver:  s.gameOver,
		Player:    *s.player,
		Monsters:  make([]model.Monster, 0, len(s.monsters)),
		Loot:      make([]model.LootItem, 0, len(s.loot)),
		Snapshot:  s.snapshot,
	}

	for _, m := range s.monsters {
		save.Monsters = append(save.Monsters, *m)
	}
	for _, item := range s.loot {
		save.Loot = append(save.Loot, *item)
	}
	if s.stairway != nil {
		stairway := *s.stairway
		save.Stairway = &stairway
	}
	return save
}

// Load restores a session from a persistence DTO. Death effects are
// transient and come back empty.
func (g *Game) Load(save *model.SaveState) {
	s := g.state

	g.sessionID = save.SessionID
	g.nowMS = save.NowMS
	g.tick = save.NowMS * TicksPerSecond / 1000

	s.level = save.Level
	s.stats = save.Stats
	s.gameOver = save.GameOver
	player := save.Player
	s.player = &player
	s.snapshot = save.Snapshot
	s.effects = nil
	s.message = ""
	s.messageTimer = 0

	s.monsters = make([]*model.Monster, 0, len(save.Monsters))
	for i := range save.Monsters {
		m := save.Monsters[i]
		s.monsters = append(s.monsters, &m)
	}
	s.loot = make([]*model.LootItem, 0, len(save.Loot))
	for i := range save.Loot {
		item := save.Loot[i]
		s.loot = append(s.loot, &item)
	}
	if save.Stairway != nil {
		stairway := *save.Stairway
		s.stairway = &stairway
	} else {
		s.stairway = nil
	}

	// Re-derive cosmetic unlocks from the restored totals.
	g.recordProgress()
}
