package model

import (
	"time"

	"github.com/google/uuid"
)

// SaveState is the persistence DTO: everything needed to restore a session,
// including the level-start snapshot backing retry.
type SaveState struct {
	SessionID uuid.UUID `json:"session_id"`
	SavedAt   time.Time `json:"saved_at"`
	NowMS     int64     `json:"now_ms"` // simulation clock at save time

	Level    int   `json:"level"`
	Stats    Stats `json:"stats"`
	GameOver bool  `json:"game_over"`

	Player   Player     `json:"player"`
	Monsters []Monster  `json:"monsters"`
	Loot     []LootItem `json:"loot"`
	Stairway *Stairway  `json:"stairway,omitempty"`
	Snapshot *Snapshot  `json:"snapshot,omitempty"`
}
