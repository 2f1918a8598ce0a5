// Package assets defines the collaborator contract for generated sprite art
// and monster flavor text. The simulation treats handles as opaque and must
// behave identically when every request returns an immediate placeholder.
package assets

import (
	"fmt"
	"strconv"
	"strings"
)

// Handle is an opaque reference to a visual asset.
type Handle string

// Provider supplies decorative assets. Implementations must never block the
// simulation; returning a placeholder immediately is always acceptable.
type Provider interface {
	// Sprite returns a visual handle for the given asset kind.
	// params are generation hints (e.g. "level"), opaque to the core.
	Sprite(kind string, params map[string]string) Handle

	// MonsterFlavorText returns a generated stat block for a monster of the
	// given level. May carry an "HP: N" hint the spawner applies.
	MonsterFlavorText(level int) string
}

// Placeholder is a Provider that answers every request immediately with
// static content. Used when no generation backend is configured and as the
// degraded fallback the simulation must tolerate.
type Placeholder struct{}

// NewPlaceholder creates a placeholder asset provider.
func NewPlaceholder() *Placeholder {
	return &Placeholder{}
}

// Sprite returns a deterministic placeholder handle.
func (p *Placeholder) Sprite(kind string, params map[string]string) Handle {
	return Handle("placeholder:" + kind)
}

// MonsterFlavorText returns the default stat block for the level.
func (p *Placeholder) MonsterFlavorText(level int) string {
	return fmt.Sprintf("Level %d monster", level)
}

// ParseHealthOverride extracts an "HP: N" hint from a generated stat block.
// Returns false when the text carries no usable hint.
func ParseHealthOverride(stats string) (float64, bool) {
	for _, line := range strings.Split(stats, "\n") {
		idx := strings.Index(line, "HP:")
		if idx < 0 {
			continue
		}
		value := strings.TrimSpace(line[idx+len("HP:"):])
		if end := strings.IndexAny(value, " ,;"); end >= 0 {
			value = value[:end]
		}
		hp, err := strconv.ParseFloat(value, 64)
		if err != nil || hp <= 0 {
			continue
		}
		return hp, true
	}
	return 0, false
}
