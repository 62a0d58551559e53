package palette

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/alexisbeaulieu97/colorterm/internal/color"
	"github.com/alexisbeaulieu97/colorterm/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/colorterm/internal/ports"
	cterrors "github.com/alexisbeaulieu97/colorterm/pkg/errors"
)

const (
	DefaultMinContrast   = color.MinimumTextContrast
	DefaultResetAfter    = 200
	DefaultMaxIterations = 100_000
)

// ErrGenerationExhausted is returned when the random strategy hits its draw ceiling.
var ErrGenerationExhausted = errors.New("generation exhausted")

// Generator produces palettes. A Generator owns its random source and is not
// safe for concurrent use.
type Generator struct {
	rng           *rand.Rand
	minContrast   float64
	resetAfter    int
	maxIterations int
	logger        ports.Logger
}

// Option customises a Generator.
type Option func(*Generator)

// WithRand sets the random source, mainly for reproducible tests.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		if rng != nil {
			g.rng = rng
		}
	}
}

// WithMinContrast sets the ratio every random candidate must reach against the anchor.
func WithMinContrast(ratio float64) Option {
	return func(g *Generator) {
		if ratio >= 1 {
			g.minContrast = ratio
		}
	}
}

// WithResetAfter sets how many consecutive rejections trigger a new anchor.
func WithResetAfter(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.resetAfter = n
		}
	}
}

// WithMaxIterations caps the total number of candidate draws per palette.
func WithMaxIterations(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxIterations = n
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger ports.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGenerator builds a Generator with defaults suitable for interactive use.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		rng:           rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		minContrast:   DefaultMinContrast,
		resetAfter:    DefaultResetAfter,
		maxIterations: DefaultMaxIterations,
		logger:        logging.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a complete palette for mode, or an error and no palette.
// Unknown modes use the random strategy.
func (g *Generator) Generate(ctx context.Context, mode Mode) (Palette, error) {
	switch mode {
	case ModeCubehelix:
		return g.cubehelix(ctx), nil
	default:
		return g.random(ctx)
	}
}

func (g *Generator) randomColor() color.Color {
	v := g.rng.Uint32()
	return color.Opaque(uint8(v>>16), uint8(v>>8), uint8(v))
}

// random draws uniform colors and keeps those that reach minContrast against the
// anchor (the first accepted color). A run of resetAfter rejections replaces the
// anchor and discards everything accepted against the old one.
func (g *Generator) random(ctx context.Context) (Palette, error) {
	accepted := make([]color.Color, 0, Size)
	accepted = append(accepted, g.randomColor())
	rejections := 0
	resets := 0

	for draws := 0; len(accepted) < Size; draws++ {
		if draws >= g.maxIterations {
			g.logger.Warn(ctx, "random palette generation exhausted", "draws", draws, "resets", resets)
			return Palette{}, cterrors.NewGenerationError(string(ModeRandom), draws, ErrGenerationExhausted)
		}
		if draws%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return Palette{}, cterrors.NewGenerationError(string(ModeRandom), draws, err)
			}
		}

		candidate := g.randomColor()
		if color.ContrastRatio(candidate, accepted[0]) >= g.minContrast {
			accepted = append(accepted, candidate)
			rejections = 0
			continue
		}

		rejections++
		if rejections >= g.resetAfter {
			accepted = append(accepted[:0], g.randomColor())
			rejections = 0
			resets++
		}
	}

	g.logger.Debug(ctx, "random palette generated", "resets", resets)

	var p Palette
	copy(p[:], accepted)
	return p, nil
}
