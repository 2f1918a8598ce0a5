package model

import "github.com/rovenko/dungeoncrawl/internal/constants"

// DeathEffect is the ephemeral marker left where a monster died. Pure
// presentation; the simulation only guarantees its existence and expiry.
type DeathEffect struct {
	Pos      Vec2 `json:"pos"`
	Miniboss bool `json:"miniboss"`
	Lifetime int  `json:"lifetime"` // remaining ticks
}

// NewDeathEffect creates a death marker at pos. Mini-boss markers live twice
// as long.
func NewDeathEffect(pos Vec2, miniboss bool) *DeathEffect {
	lifetime := constants.DeathEffectLifetime
	if miniboss {
		lifetime = constants.DeathEffectMinibossLifetime
	}
	return &DeathEffect{Pos: pos, Miniboss: miniboss, Lifetime: lifetime}
}

// Update counts down one tick and reports whether the marker has expired.
func (e *DeathEffect) Update() bool {
	e.Lifetime--
	return e.Lifetime <= 0
}
