package model

// Snapshot is a value copy of the full game state captured at level start.
// Retry restores exactly this state, undoing combat progress within the
// level without undoing progression earned before it.
//
// Monsters and loot are stored by value; restoring produces fresh instances.
type Snapshot struct {
	Level    int        `json:"level"`
	Stats    Stats      `json:"stats"`
	Player   Player     `json:"player"`
	Monsters []Monster  `json:"monsters"`
	Loot     []LootItem `json:"loot"`
}

// CaptureSnapshot deep-copies the given state into a Snapshot.
func CaptureSnapshot(level int, stats Stats, player *Player, monsters []*Monster, loot []*LootItem) *Snapshot {
	snap := &Snapshot{
		Level:    level,
		Stats:    stats,
		Player:   *player,
		Monsters: make([]Monster, 0, len(monsters)),
		Loot:     make([]LootItem, 0, len(loot)),
	}
	for _, m := range monsters {
		snap.Monsters = append(snap.Monsters, *m)
	}
	for _, l := range loot {
		snap.Loot = append(snap.Loot, *l)
	}
	return snap
}

// RestoreMonsters returns fresh monster instances copied from the snapshot.
func (s *Snapshot) RestoreMonsters() []*Monster {
	monsters := make([]*Monster, 0, len(s.Monsters))
	for i := range s.Monsters {
		m := s.Monsters[i]
		monsters = append(monsters, &m)
	}
	return monsters
}

// RestoreLoot returns fresh loot instances copied from the snapshot.
func (s *Snapshot) RestoreLoot() []*LootItem {
	loot := make([]*LootItem, 0, len(s.Loot))
	for i := range s.Loot {
		l := s.Loot[i]
		loot = append(loot, &l)
	}
	return loot
}
