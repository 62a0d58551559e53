package color

import "math"

// MinimumTextContrast is the WCAG AA ratio for normal text.
const MinimumTextContrast = 4.5

func linearize(channel uint8) float64 {
	c := float64(channel) / 255
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// RelativeLuminance returns the WCAG relative luminance of c in [0,1]. Alpha is ignored.
func RelativeLuminance(c Color) float64 {
	return 0.2126*linearize(c.R) + 0.7152*linearize(c.G) + 0.0722*linearize(c.B)
}

// ContrastRatio returns the WCAG contrast ratio between a and b, in [1,21].
// Both colors are treated as opaque.
func ContrastRatio(a, b Color) float64 {
	la := RelativeLuminance(a)
	lb := RelativeLuminance(b)
	lighter := math.Max(la, lb)
	darker := math.Min(la, lb)
	return (lighter + 0.05) / (darker + 0.05)
}

// IsDark reports whether text on c should be light.
func IsDark(c Color) bool {
	return ContrastRatio(c, Opaque(255, 255, 255)) >= ContrastRatio(c, Opaque(0, 0, 0))
}
