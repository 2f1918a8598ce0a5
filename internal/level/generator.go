// Package level implements the level/progression controller: monster count
// and level-mix sampling, safe spawn placement, stairway placement, and loot
// rolling.
package level

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/rovenko/dungeoncrawl/internal/assets"
	"github.com/rovenko/dungeoncrawl/internal/constants"
	"github.com/rovenko/dungeoncrawl/internal/model"
)

// Level generation constants.
const (
	spawnAttempts = 20

	// Minimum separations, in tiles.
	monsterPlayerSeparation  = 5
	stairwayPlayerSeparation = 3
	stairwayLootSeparation   = 2

	// Level mix fractions.
	higherTierFraction   = 0.05
	currentTierFraction  = 0.35
	previousTierFraction = 0.15

	// Distinct higher-tier levels are capped to bound unique-asset churn.
	maxDistinctHigherLevels = 4

	// The monster cap stays fixed until this dungeon level, then grows by
	// one per ten levels.
	dynamicCapStartLevel = 30

	// Loot scatters within this radius of the death position, in tiles.
	lootScatterTiles = 3
)

// FlavorSource supplies generated monster stat blocks.
// Satisfied by assets.Provider implementations.
type FlavorSource interface {
	MonsterFlavorText(level int) string
}

// VariantPicker picks a cosmetic variant id for a new loot item.
// Satisfied by prefs.Manager.
type VariantPicker interface {
	PickVariant(kind model.ItemKind) string
}

// Generator produces level rosters, placements, and loot.
type Generator struct {
	arenaWidth  float64
	arenaHeight float64
	rng         *rand.Rand
	flavor      FlavorSource
	variants    VariantPicker

	nextID int // monotonic monster ID source
}

// minArenaTiles is the smallest arena edge, in tiles, the placement routines
// can sample: stairway candidates use two-tile margins on one side and three
// on the other, so anything narrower inverts the sampling range.
const minArenaTiles = 6

// NewGenerator creates a generator for the given arena. Fails fast on a
// degenerate arena: the simulation cannot recover from bad geometry mid-tick.
func NewGenerator(arenaWidth, arenaHeight float64, rng *rand.Rand, flavor FlavorSource, variants VariantPicker) (*Generator, error) {
	const minEdge = constants.TileSize * minArenaTiles
	if arenaWidth < minEdge || arenaHeight < minEdge {
		return nil, fmt.Errorf("arena %gx%g too small, need at least %dx%d",
			arenaWidth, arenaHeight, minEdge, minEdge)
	}
	if rng == nil {
		return nil, fmt.Errorf("nil random source")
	}
	return &Generator{
		arenaWidth:  arenaWidth,
		arenaHeight: arenaHeight,
		rng:         rng,
		flavor:      flavor,
		variants:    variants,
		nextID:      1,
	}, nil
}

// ArenaWidth returns the arena width in pixels.
func (g *Generator) ArenaWidth() float64 { return g.arenaWidth }

// ArenaHeight returns the arena height in pixels.
func (g *Generator) ArenaHeight() float64 { return g.arenaHeight }

// MonsterCount returns how many monsters a dungeon level spawns. The cap is
// fixed until dynamicCapStartLevel, then gains one per ten levels.
func (g *Generator) MonsterCount(dungeonLevel int) int {
	base := constants.InitialMonsterCount + (dungeonLevel-1)*constants.MonsterIncrement
	limit := constants.MaxMonsterCount
	if dungeonLevel >= dynamicCapStartLevel {
		limit += dungeonLevel/10 - 2
	}
	return min(base, limit)
}

// LevelMix samples the per-monster levels for a dungeon level, shuffled.
//
// Roughly 5% are higher-tier (mini-boss candidates), 35% current level, 15%
// previous level, and the remainder uniform over older levels. Higher-tier
// levels are sampled from [level+2, level+2+floor(level^2*0.1)] with at most
// maxDistinctHigherLevels distinct values reused cyclically. At level 1 the
// previous-tier slots are left unfilled, so the roster runs slightly short.
func (g *Generator) LevelMix(dungeonLevel, total int) []int {
	higherCount := max(1, int(float64(total)*higherTierFraction))
	currentCount := max(1, int(float64(total)*currentTierFraction))
	previousCount := max(0, int(float64(total)*previousTierFraction))
	olderCount := total - currentCount - previousCount - higherCount

	levels := make([]int, 0, total)

	// Higher tier: a small pool of distinct sampled values, reused cyclically.
	spread := int(float64(dungeonLevel*dungeonLevel) * 0.1)
	distinct := min(maxDistinctHigherLevels, higherCount)
	pool := make([]int, 0, distinct)
	for range distinct {
		pool = append(pool, dungeonLevel+2+g.rng.IntN(spread+1))
	}
	for i := range higherCount {
		levels = append(levels, pool[i%len(pool)])
	}

	for range currentCount {
		levels = append(levels, dungeonLevel)
	}

	if dungeonLevel > 1 {
		for range previousCount {
			levels = append(levels, dungeonLevel-1)
		}
	}

	for range olderCount {
		levels = append(levels, 1+g.rng.IntN(max(1, dungeonLevel-1)))
	}

	g.rng.Shuffle(len(levels), func(i, j int) {
		levels[i], levels[j] = levels[j], levels[i]
	})
	return levels
}

// Generate builds the monster roster for a dungeon level, placed safely away
// from the player.
func (g *Generator) Generate(dungeonLevel int, playerPos model.Vec2) ([]*model.Monster, error) {
	if dungeonLevel < 1 {
		return nil, fmt.Errorf("invalid dungeon level %d", dungeonLevel)
	}

	mix := g.LevelMix(dungeonLevel, g.MonsterCount(dungeonLevel))
	monsters := make([]*model.Monster, 0, len(mix))

	for _, monsterLevel := range mix {
		pos := g.MonsterSpawnPosition(playerPos)
		stats := g.flavor.MonsterFlavorText(monsterLevel)

		m := model.NewMonster(g.nextID, monsterLevel, dungeonLevel, stats, pos)
		g.nextID++

		if hp, ok := assets.ParseHealthOverride(stats); ok {
			m.OverrideHealth(hp)
		}
		m.WanderDir = model.Vec2{
			X: float64(g.rng.IntN(3) - 1),
			Y: float64(g.rng.IntN(3) - 1),
		}

		monsters = append(monsters, m)
	}

	slog.Info("level generated",
		"level", dungeonLevel,
		"monsters", len(monsters))
	return monsters, nil
}

// MonsterSpawnPosition finds a spawn spot separated from the player by more
// than five tiles on at least one axis. After spawnAttempts misses it falls
// back to the corner opposite the player's half.
func (g *Generator) MonsterSpawnPosition(playerPos model.Vec2) model.Vec2 {
	const tile = constants.TileSize
	minSep := float64(tile * monsterPlayerSeparation)

	for range spawnAttempts {
		pos := g.randomPoint(tile, tile, g.arenaWidth-tile*2, g.arenaHeight-tile*2)

		dx := abs(playerPos.X - pos.X)
		dy := abs(playerPos.Y - pos.Y)
		if dx > minSep || dy > minSep {
			return pos
		}
	}

	if playerPos.X < g.arenaWidth/2 {
		return model.NewVec2(g.arenaWidth-tile*2, tile*2)
	}
	return model.NewVec2(tile*2, tile*2)
}

// StairwayPosition finds a stairway spot at least three tiles from the
// player and two tiles from every loot item, falling back to the top-right
// corner.
func (g *Generator) StairwayPosition(playerPos model.Vec2, loot []*model.LootItem) model.Vec2 {
	const tile = constants.TileSize
	playerSep := float64(tile * stairwayPlayerSeparation)
	lootSep := float64(tile * stairwayLootSeparation)

	for range spawnAttempts {
		pos := g.randomPoint(tile*2, tile*2, g.arenaWidth-tile*3, g.arenaHeight-tile*3)

		if playerPos.WithinBox(pos, playerSep) {
			continue
		}

		tooClose := false
		for _, item := range loot {
			if item.Pos.WithinBox(pos, lootSep) {
				tooClose = true
				break
			}
		}
		if !tooClose {
			return pos
		}
	}

	return model.NewVec2(g.arenaWidth-tile*2, tile*2)
}

// RollLoot rolls loot drops near a death position.
//
// The count doubles as trial count and, when fractional, as each trial's own
// success probability: an integer count >= 1 always drops exactly count
// items, a fractional count runs one trial at that probability. Dropped
// items spawn at the death position and slide to a scattered rest point.
func (g *Generator) RollLoot(count float64, at model.Vec2) []*model.LootItem {
	var drops []*model.LootItem

	for remaining := count; remaining > 0; remaining-- {
		if g.rng.Float64() >= count {
			continue
		}

		kinds := model.ItemKinds()
		kind := kinds[g.rng.IntN(len(kinds))]
		target := g.scatterPoint(at)
		drops = append(drops, model.NewSlidingLootItem(kind, at, target, g.variants.PickVariant(kind)))
	}
	return drops
}

// RollLootKind places one item of a specific kind at pos. Used for legacy
// loot on player death.
func (g *Generator) RollLootKind(kind model.ItemKind, pos model.Vec2) *model.LootItem {
	return model.NewLootItem(kind, g.clampToArena(pos), g.variants.PickVariant(kind))
}

// scatterPoint picks a rest point within the scatter radius of at, clamped
// to the arena.
func (g *Generator) scatterPoint(at model.Vec2) model.Vec2 {
	const radius = constants.TileSize * lootScatterTiles
	return g.clampToArena(model.Vec2{
		X: at.X + float64(g.rng.IntN(radius*2+1)-radius),
		Y: at.Y + float64(g.rng.IntN(radius*2+1)-radius),
	})
}

func (g *Generator) clampToArena(pos model.Vec2) model.Vec2 {
	const tile = constants.TileSize
	return model.Vec2{
		X: max(0, min(g.arenaWidth-tile, pos.X)),
		Y: max(0, min(g.arenaHeight-tile, pos.Y)),
	}
}

// randomPoint returns a uniform point with whole-pixel coordinates in
// [minX, maxX] x [minY, maxY].
func (g *Generator) randomPoint(minX, minY, maxX, maxY float64) model.Vec2 {
	return model.Vec2{
		X: minX + float64(g.rng.IntN(int(maxX-minX)+1)),
		Y: minY + float64(g.rng.IntN(int(maxY-minY)+1)),
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
