// Package palette generates the fixed-size color palettes behind a terminal theme.
package palette

import (
	"strings"

	"github.com/alexisbeaulieu97/colorterm/internal/color"
)

// Size is the number of colors in every palette.
const Size = 5

// Palette is an ordered set of colors. Slot order is fixed at generation time and
// target schemas address slots by index.
type Palette [Size]color.Color

// Strings formats every slot as rgba().
func (p Palette) Strings() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = color.Format(c)
	}
	return out
}

// Mode selects a generation strategy.
type Mode string

const (
	ModeCubehelix Mode = "cubehelix"
	ModeRandom    Mode = "random"
)

// Modes lists the supported generation modes in display order.
func Modes() []Mode {
	return []Mode{ModeCubehelix, ModeRandom}
}

// ParseMode maps user input onto a Mode. "cubix" is accepted as an alias for
// cubehelix and anything unrecognised falls back to random.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ModeCubehelix), "cubix":
		return ModeCubehelix
	default:
		return ModeRandom
	}
}

// Valid reports whether m names a known strategy.
func (m Mode) Valid() bool {
	return m == ModeCubehelix || m == ModeRandom
}

// Next cycles to the following mode.
func (m Mode) Next() Mode {
	if m == ModeCubehelix {
		return ModeRandom
	}
	return ModeCubehelix
}
