package model

// Stairway is the level exit. At most one exists per level, spawned when the
// monster roster empties and destroyed on level advance.
type Stairway struct {
	Pos Vec2 `json:"pos"`
}

// NewStairway creates a stairway at pos.
func NewStairway(pos Vec2) *Stairway {
	return &Stairway{Pos: pos}
}
