package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelativeLuminanceBounds(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.0, RelativeLuminance(Opaque(0, 0, 0)), 1e-12)
	assert.InDelta(t, 1.0, RelativeLuminance(Opaque(255, 255, 255)), 1e-12)
}

func TestContrastRatio(t *testing.T) {
	t.Parallel()

	black := Opaque(0, 0, 0)
	white := Opaque(255, 255, 255)

	assert.InDelta(t, 21.0, ContrastRatio(black, white), 1e-9)
	assert.InDelta(t, 21.0, ContrastRatio(white, black), 1e-9)
	assert.InDelta(t, 1.0, ContrastRatio(white, white), 1e-12)

	// #777777 on white is the classic just-below-AA grey.
	grey := MustParse("#777777")
	assert.InDelta(t, 4.48, ContrastRatio(grey, white), 0.01)
}

func TestContrastRatioIgnoresAlpha(t *testing.T) {
	t.Parallel()

	a := Color{R: 10, G: 20, B: 30, A: 0.1}
	b := Color{R: 240, G: 230, B: 220, A: 0.9}

	assert.Equal(t, ContrastRatio(a.WithAlpha(1), b.WithAlpha(1)), ContrastRatio(a, b))
}

func TestContrastRatioIsAtLeastOne(t *testing.T) {
	t.Parallel()

	for v := 0; v <= 255; v += 15 {
		c := Opaque(uint8(v), uint8(255-v), uint8(v/2))
		assert.GreaterOrEqual(t, ContrastRatio(c, MustParse("#336699")), 1.0)
	}
}

func TestIsDark(t *testing.T) {
	t.Parallel()

	assert.True(t, IsDark(MustParse("#101820")))
	assert.False(t, IsDark(MustParse("#f0f0e0")))
}
