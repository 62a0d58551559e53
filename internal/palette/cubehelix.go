package palette

import (
	"context"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/alexisbeaulieu97/colorterm/internal/color"
)

const (
	helixGamma      = 0.7
	helixLightMin   = 0.3
	helixLightMax   = 0.8
	helixHue        = 1.0
	maxHue          = 360
	lightnessTol    = 1e-4
	lightnessRounds = 20
)

// Helix describes one cubehelix color path (Green, 2011).
type Helix struct {
	Start     float64 // start hue in degrees
	Rotations float64
	Hue       float64 // saturation amplitude
	Gamma     float64
	Lightness [2]float64
}

// At returns the raw path color at t in [0,1], clipped to the sRGB gamut.
func (h Helix) At(t float64) colorful.Color {
	a := 2 * math.Pi * ((h.Start+120)/360 + h.Rotations*t)
	l := math.Pow(h.Lightness[0]+(h.Lightness[1]-h.Lightness[0])*t, h.Gamma)
	amp := h.Hue * l * (1 - l) / 2
	cosA, sinA := math.Cos(a), math.Sin(a)

	return colorful.Color{
		R: l + amp*(-0.14861*cosA+1.78277*sinA),
		G: l + amp*(-0.29227*cosA-0.90649*sinA),
		B: l + amp*(1.97294*cosA),
	}.Clamped()
}

func lightness(c colorful.Color) float64 {
	l, _, _ := c.Lab()
	return l
}

// Corrected returns the path color whose CIE lightness sits at fraction t of the
// way between the endpoint lightnesses, found by bisecting the path parameter.
func (h Helix) Corrected(t float64) colorful.Color {
	l0 := lightness(h.At(0))
	l1 := lightness(h.At(1))
	descending := l0 > l1
	ideal := l0 + (l1-l0)*t

	t0, t1 := 0.0, 1.0
	c := h.At(t)
	diff := lightness(c) - ideal
	for i := 0; i < lightnessRounds && math.Abs(diff) > lightnessTol; i++ {
		if descending {
			diff = -diff
		}
		if diff < 0 {
			t0 = t
			t += (t1 - t) * 0.5
		} else {
			t1 = t
			t += (t0 - t) * 0.5
		}
		c = h.At(t)
		diff = lightness(c) - ideal
	}
	return c
}

// Samples returns n lightness-corrected colors evenly spaced along the path.
func (h Helix) Samples(n int) []color.Color {
	out := make([]color.Color, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = color.FromColorful(h.Corrected(t))
	}
	return out
}

// randomHelix draws the two free parameters: a whole-degree start hue and a
// rotation count in [-1,1] with two decimals.
func (g *Generator) randomHelix() Helix {
	start := float64(g.rng.IntN(maxHue))
	rotations := math.Round((g.rng.Float64()-0.5)*2*100) / 100

	return Helix{
		Start:     start,
		Rotations: rotations,
		Hue:       helixHue,
		Gamma:     helixGamma,
		Lightness: [2]float64{helixLightMin, helixLightMax},
	}
}

// cubehelix samples one path. Contrast is not checked; the path's monotonic
// lightness is what separates the slots.
func (g *Generator) cubehelix(ctx context.Context) Palette {
	h := g.randomHelix()

	var p Palette
	copy(p[:], h.Samples(Size))

	g.logger.Debug(ctx, "cubehelix palette generated", "start", h.Start, "rotations", h.Rotations)
	return p
}
