// Package color holds the RGBA color value used throughout colorterm along with
// its parser, its canonical rgba() serialization and the WCAG contrast model.
package color

import (
	"fmt"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an sRGB color with an explicit alpha channel.
type Color struct {
	R uint8
	G uint8
	B uint8
	A float64
}

// Opaque returns a fully opaque color.
func Opaque(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// FromColorful converts a go-colorful value, clamping out-of-gamut channels.
func FromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Opaque(r, g, b)
}

// Colorful returns the color as a go-colorful value, dropping alpha.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// WithAlpha returns a copy of c with alpha clamped into [0,1].
func (c Color) WithAlpha(a float64) Color {
	c.A = clampUnit(a)
	return c
}

// Hex renders the color channels as #rrggbb. Alpha is not represented.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String implements fmt.Stringer using the rgba() form.
func (c Color) String() string {
	return Format(c)
}

// Format serializes a color as rgba(r, g, b, a). Channels are written as stored and
// alpha uses the shortest decimal that parses back to the same value.
func Format(c Color) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, formatAlpha(c.A))
}

func formatAlpha(a float64) string {
	return strconv.FormatFloat(a, 'f', -1, 64)
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
