package model

// Stats holds running session totals. Deaths is a lifetime counter and
// survives full restarts; the rest reset per run.
type Stats struct {
	MonstersDefeated int `json:"monsters_defeated"`
	ItemsCollected   int `json:"items_collected"`
	LevelsCompleted  int `json:"levels_completed"`
	Deaths           int `json:"deaths"`
}
