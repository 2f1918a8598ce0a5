package ai

import (
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/rovenko/dungeoncrawl/internal/model"
)

// Behavior engine constants.
const (
	AggressiveDistance      = 150  // px - monsters always chase within this range
	AlertDistance           = 300  // px - monsters sometimes chase within this range
	AlertChaseChance        = 0.7  // chance to chase when committing in the alert zone
	WanderSpeed             = 0.5  // px/tick while wandering
	DirectionChangeChance   = 0.02 // chance per tick to change wander direction
	MinibossInfluenceRadius = 200  // px - mini-boss pull on nearby monsters
	MinibossBiasChance      = 0.3  // chance to approach a nearby mini-boss instead
	DispersionRadius        = 80   // px - monsters this close repel each other
	DispersionChance        = 0.5  // chance to adopt the dispersion direction

	// Alert-zone behavior commitment window, in ticks (1-2s at 60 Hz).
	alertCommitMin = 60
	alertCommitMax = 120

	// Repulsion vectors below this magnitude give no clear direction.
	dispersionEpsilon = 0.1
)

// diagonalFactor equalizes diagonal step speed with axis-aligned steps.
var diagonalFactor = 1.0 / math.Sqrt(2)

// Engine drives per-monster behavior for one tick at a time: distance-gated
// state selection, sticky alert-zone commitment, mini-boss clustering,
// dispersion, wander with collision avoidance.
//
// Update is a pure function of current state plus the injected random source;
// it performs no I/O.
type Engine struct {
	arenaWidth  float64
	arenaHeight float64
	rng         *rand.Rand
}

// NewEngine creates a behavior engine for an arena of the given pixel size.
func NewEngine(arenaWidth, arenaHeight float64, rng *rand.Rand) *Engine {
	return &Engine{
		arenaWidth:  arenaWidth,
		arenaHeight: arenaHeight,
		rng:         rng,
	}
}

// Update advances every living monster by one tick.
//
// Monsters move one at a time; later monsters observe positions already
// updated this tick. Final positions are always clamped to the arena.
func (e *Engine) Update(player *model.Player, monsters []*model.Monster) {
	for _, m := range monsters {
		if !m.Alive {
			continue
		}

		toPlayer := player.Pos.Sub(m.Pos)
		dist := player.Pos.Distance(m.Pos)

		switch {
		case dist <= AggressiveDistance:
			// Close monsters always chase the player directly.
			e.moveToward(m, toPlayer)
		case dist <= AlertDistance:
			e.thinkAlert(m, monsters, toPlayer)
		default:
			// Distant monsters wander.
			e.wander(m, player, monsters)
		}

		if m.AlertTimer > 0 {
			m.AlertTimer--
		}

		e.clampToArena(m)
	}
}

// thinkAlert runs the sticky alert-zone state machine: a behavior is
// committed for 60-120 ticks and executed every tick until the timer
// expires, regardless of distance fluctuation within the band.
func (e *Engine) thinkAlert(m *model.Monster, monsters []*model.Monster, toPlayer model.Vec2) {
	if m.AlertTimer <= 0 || m.Alert == model.AlertNone {
		e.commitAlertBehavior(m, monsters)
	}

	switch m.Alert {
	case model.AlertChase:
		e.moveToward(m, toPlayer)
	case model.AlertApproachMiniboss:
		if target := resolveMiniboss(m, monsters); target != nil {
			e.moveToward(m, target.Pos.Sub(m.Pos))
		} else {
			e.wanderStep(m, monsters, nil)
		}
	default:
		e.wanderStep(m, monsters, nil)
	}
}

// commitAlertBehavior re-rolls the alert-zone behavior and its hold timer.
// Regular monsters near a mini-boss commit to approaching it with the bias
// chance; otherwise they chase or wander.
func (e *Engine) commitAlertBehavior(m *model.Monster, monsters []*model.Monster) {
	m.TargetMiniboss = 0

	var nearby *model.Monster
	if !m.Miniboss {
		nearby = e.findNearbyMiniboss(m, monsters)
	}

	if nearby != nil && e.rng.Float64() < MinibossBiasChance {
		m.Alert = model.AlertApproachMiniboss
		m.TargetMiniboss = nearby.ID
	} else if e.rng.Float64() < AlertChaseChance {
		m.Alert = model.AlertChase
	} else {
		m.Alert = model.AlertWander
	}

	m.AlertTimer = alertCommitMin + e.rng.IntN(alertCommitMax-alertCommitMin+1)

	if IsDebugEnabled() {
		slog.Debug("alert behavior committed",
			"monster", m.ID,
			"behavior", m.Alert,
			"ticks", m.AlertTimer,
			"target", m.TargetMiniboss)
	}
}

// resolveMiniboss resolves the weak mini-boss reference, clearing it when the
// referent is gone or dead.
func resolveMiniboss(m *model.Monster, monsters []*model.Monster) *model.Monster {
	if m.TargetMiniboss == 0 {
		return nil
	}
	for _, other := range monsters {
		if other.ID == m.TargetMiniboss {
			if other.Alive {
				return other
			}
			break
		}
	}
	m.TargetMiniboss = 0
	return nil
}

// moveToward steps one 8-directional unit toward the target offset, scaling
// diagonal steps by 1/sqrt(2) to equalize speed. A zero offset is a no-op.
func (e *Engine) moveToward(m *model.Monster, delta model.Vec2) {
	if delta.X == 0 && delta.Y == 0 {
		return
	}

	moveX := sign(delta.X)
	moveY := sign(delta.Y)

	if moveX != 0 && moveY != 0 {
		moveX *= diagonalFactor
		moveY *= diagonalFactor
	}

	m.Pos.X += moveX
	m.Pos.Y += moveY
}

// wander moves a monster that is outside the alert zone, applying dispersion
// bias when it is clustered with others.
func (e *Engine) wander(m *model.Monster, player *model.Player, monsters []*model.Monster) {
	disp := e.dispersionDirection(m, player, monsters)
	e.wanderStep(m, monsters, disp)
}

// wanderStep advances the monster along its wander direction, bouncing off
// walls and avoiding other monsters. disp, when non-nil, is the dispersion
// direction; actively-dispersing monsters and mini-bosses bypass the
// monster-collision block.
func (e *Engine) wanderStep(m *model.Monster, monsters []*model.Monster, disp *model.Vec2) {
	if e.rng.Float64() < DirectionChangeChance {
		if disp != nil && e.rng.Float64() < DispersionChance {
			m.WanderDir = *disp
		} else {
			m.WanderDir = e.RandomDirection()
		}
	}

	newX := m.Pos.X + m.WanderDir.X*WanderSpeed
	newY := m.Pos.Y + m.WanderDir.Y*WanderSpeed

	// Bounce off arena walls by inverting that axis.
	if newX <= 0 || newX >= e.arenaWidth-m.Width {
		m.WanderDir.X *= -1
		newX = m.Pos.X + m.WanderDir.X*WanderSpeed
	}
	if newY <= 0 || newY >= e.arenaHeight-m.Height {
		m.WanderDir.Y *= -1
		newY = m.Pos.Y + m.WanderDir.Y*WanderSpeed
	}

	canMove := !collidesWithMonster(m, monsters, newX, newY) || m.Miniboss || disp != nil
	if canMove {
		m.Pos.X = newX
		m.Pos.Y = newY
	} else {
		// Blocked by another monster: pick a fresh direction next step.
		m.WanderDir = e.RandomDirection()
	}
}

// RandomDirection returns a direction with each component uniform in {-1, 0, 1}.
func (e *Engine) RandomDirection() model.Vec2 {
	return model.Vec2{
		X: float64(e.rng.IntN(3) - 1),
		Y: float64(e.rng.IntN(3) - 1),
	}
}

// collidesWithMonster reports whether moving m to (x, y) would overlap
// another living monster. Boxes must be separated by at least the larger of
// the two sizes on both axes to count as clear.
func collidesWithMonster(m *model.Monster, monsters []*model.Monster, x, y float64) bool {
	for _, other := range monsters {
		if other == m || !other.Alive {
			continue
		}

		dx := math.Abs(x - other.Pos.X)
		dy := math.Abs(y - other.Pos.Y)

		maxW := math.Max(m.Width, other.Width)
		maxH := math.Max(m.Height, other.Height)

		if dx < maxW && dy < maxH {
			return true
		}
	}
	return false
}

// findNearbyMiniboss returns the nearest living mini-boss within the
// influence radius, or nil.
func (e *Engine) findNearbyMiniboss(m *model.Monster, monsters []*model.Monster) *model.Monster {
	var nearest *model.Monster
	nearestDist := math.Inf(1)

	for _, other := range monsters {
		if !other.Miniboss || !other.Alive || other == m {
			continue
		}

		dist := other.Pos.Distance(m.Pos)
		if dist <= MinibossInfluenceRadius && dist < nearestDist {
			nearest = other
			nearestDist = dist
		}
	}
	return nearest
}

// dispersionDirection computes the weighted repulsion away from monsters
// clustered within the dispersion radius, quantized to an 8-directional unit
// vector. Returns nil while the monster is engaged (within alert distance of
// the player) or when no clear direction emerges.
func (e *Engine) dispersionDirection(m *model.Monster, player *model.Player, monsters []*model.Monster) *model.Vec2 {
	if player.Pos.Distance(m.Pos) <= AlertDistance {
		return nil
	}

	var repelX, repelY float64
	found := false

	for _, other := range monsters {
		if other == m || !other.Alive {
			continue
		}

		delta := other.Pos.Sub(m.Pos)
		dist := other.Pos.Distance(m.Pos)
		if dist > DispersionRadius {
			continue
		}

		// Closer monsters push harder.
		weight := 1.0 / math.Max(dist, 1)
		repelX -= delta.X * weight
		repelY -= delta.Y * weight
		found = true
	}

	if !found {
		return nil
	}
	if math.Abs(repelX) < dispersionEpsilon && math.Abs(repelY) < dispersionEpsilon {
		return nil
	}

	dir := model.Vec2{X: sign(repelX), Y: sign(repelY)}
	return &dir
}

// clampToArena keeps the monster's box inside the arena bounds.
func (e *Engine) clampToArena(m *model.Monster) {
	m.Pos.X = math.Max(0, math.Min(e.arenaWidth-m.Width, m.Pos.X))
	m.Pos.Y = math.Max(0, math.Min(e.arenaHeight-m.Height, m.Pos.Y))
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
