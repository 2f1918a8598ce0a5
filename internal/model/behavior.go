package model

// AlertBehavior represents the committed behavior of a monster inside the
// alert zone. Once chosen it is held until the per-monster timer expires.
type AlertBehavior int32

const (
	// AlertNone - no behavior committed yet, re-roll on next alert tick
	AlertNone AlertBehavior = iota
	// AlertChase - monster moves toward the player
	AlertChase
	// AlertWander - monster wanders randomly
	AlertWander
	// AlertApproachMiniboss - monster moves toward a targeted mini-boss
	AlertApproachMiniboss
)

// String returns human-readable behavior name
func (b AlertBehavior) String() string {
	switch b {
	case AlertNone:
		return "NONE"
	case AlertChase:
		return "CHASE"
	case AlertWander:
		return "WANDER"
	case AlertApproachMiniboss:
		return "APPROACH_MINIBOSS"
	default:
		return "UNKNOWN"
	}
}
