package color

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	cterrors "github.com/alexisbeaulieu97/colorterm/pkg/errors"
)

// ErrInvalidColor is wrapped by every parse failure.
var ErrInvalidColor = errors.New("invalid color")

var functionalPattern = regexp.MustCompile(`^(rgba?)\(\s*([^,\s]+)\s*,\s*([^,\s]+)\s*,\s*([^,\s)]+)\s*(?:,\s*([^,\s)]+)\s*)?\)$`)

// Parse converts free-form color input into a Color. Accepted forms are hex
// (#rgb, #rgba, #rrggbb, #rrggbbaa), rgb()/rgba() with channels in [0,255] and
// alpha in [0,1] or a percentage, CSS color names, and "transparent".
func Parse(input string) (Color, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return Color{}, cterrors.NewColorParseError(input, fmt.Errorf("%w: empty input", ErrInvalidColor))
	}

	var (
		c   Color
		err error
	)
	switch {
	case strings.HasPrefix(s, "#"):
		c, err = parseHex(s)
	case strings.HasPrefix(s, "rgb"):
		c, err = parseFunctional(s)
	default:
		c, err = parseNamed(s)
	}
	if err != nil {
		return Color{}, cterrors.NewColorParseError(input, err)
	}
	return c, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(input string) Color {
	c, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(s string) (Color, error) {
	digits := s[1:]
	alpha := 1.0

	switch len(digits) {
	case 3, 6:
	case 4:
		v, err := strconv.ParseUint(digits[3:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: bad alpha digit in %q", ErrInvalidColor, s)
		}
		alpha = float64(v*17) / 255
		digits = digits[:3]
	case 8:
		v, err := strconv.ParseUint(digits[6:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: bad alpha digits in %q", ErrInvalidColor, s)
		}
		alpha = float64(v) / 255
		digits = digits[:6]
	default:
		return Color{}, fmt.Errorf("%w: hex color must have 3, 4, 6 or 8 digits", ErrInvalidColor)
	}

	for _, r := range digits {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return Color{}, fmt.Errorf("%w: non-hex digit %q", ErrInvalidColor, r)
		}
	}

	parsed, err := colorful.Hex("#" + digits)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %v", ErrInvalidColor, err)
	}
	r, g, b := parsed.RGB255()
	return Color{R: r, G: g, B: b, A: alpha}, nil
}

func parseFunctional(s string) (Color, error) {
	m := functionalPattern.FindStringSubmatch(s)
	if m == nil {
		return Color{}, fmt.Errorf("%w: malformed %q", ErrInvalidColor, s)
	}

	hasAlpha := m[5] != ""
	if m[1] == "rgba" && !hasAlpha {
		return Color{}, fmt.Errorf("%w: rgba() needs four components", ErrInvalidColor)
	}

	var channels [3]uint8
	for i, raw := range m[2:5] {
		v, err := parseChannel(raw)
		if err != nil {
			return Color{}, err
		}
		channels[i] = v
	}

	alpha := 1.0
	if hasAlpha {
		a, err := parseAlpha(m[5])
		if err != nil {
			return Color{}, err
		}
		alpha = a
	}

	return Color{R: channels[0], G: channels[1], B: channels[2], A: alpha}, nil
}

func parseChannel(raw string) (uint8, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: channel %q is not a number", ErrInvalidColor, raw)
	}
	if v < 0 || v > 255 {
		return 0, fmt.Errorf("%w: channel %q out of range [0,255]", ErrInvalidColor, raw)
	}
	return uint8(math.Round(v)), nil
}

func parseAlpha(raw string) (float64, error) {
	scale := 1.0
	if strings.HasSuffix(raw, "%") {
		raw = strings.TrimSuffix(raw, "%")
		scale = 100
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: alpha %q is not a number", ErrInvalidColor, raw)
	}
	v /= scale
	if v < 0 || v > 1 {
		return 0, fmt.Errorf("%w: alpha %q out of range [0,1]", ErrInvalidColor, raw)
	}
	return v, nil
}

func parseNamed(s string) (Color, error) {
	if s == "transparent" {
		return Color{A: 0}, nil
	}
	named, ok := colornames.Map[s]
	if !ok {
		return Color{}, fmt.Errorf("%w: unknown color name %q", ErrInvalidColor, s)
	}
	return Opaque(named.R, named.G, named.B), nil
}
