// Package store holds the editor session state: the working palette, the active
// generation mode and target, and the navigable generation history.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/colorterm/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/colorterm/internal/palette"
	"github.com/alexisbeaulieu97/colorterm/internal/ports"
	"github.com/alexisbeaulieu97/colorterm/internal/schema"
)

// Generator is the palette source used by ChangeMode.
type Generator interface {
	Generate(ctx context.Context, mode palette.Mode) (palette.Palette, error)
}

// Entry is one generated palette in the history.
type Entry struct {
	ID        uuid.UUID
	Palette   palette.Palette
	Mode      palette.Mode
	CreatedAt time.Time
}

// Direction selects the navigation direction for Seek.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

// Store owns the working palette and the history. The history is append-only and
// the cursor always points at a valid entry once the history is non-empty. A Store
// is not safe for concurrent use.
type Store struct {
	gen     Generator
	mode    palette.Mode
	target  schema.Target
	palette palette.Palette
	history []Entry
	cursor  int
	logger  ports.Logger
	now     func() time.Time
}

// Option customises a Store.
type Option func(*Store)

// WithMode sets the initial generation mode.
func WithMode(mode palette.Mode) Option {
	return func(s *Store) {
		if mode.Valid() {
			s.mode = mode
		}
	}
}

// WithTarget sets the initial target. Unsupported targets are ignored.
func WithTarget(target schema.Target) Option {
	return func(s *Store) {
		if _, err := schema.Lookup(target); err == nil {
			s.target = target
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger ports.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger.With("component", "store")
		}
	}
}

// WithClock overrides the clock used to stamp history entries.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New returns an empty store. Call ChangeMode to produce the first palette.
func New(gen Generator, opts ...Option) *Store {
	s := &Store{
		gen:    gen,
		mode:   palette.ModeCubehelix,
		target: schema.TargetIterm,
		logger: logging.NewNoOpLogger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ChangeMode generates a palette with the current mode. On success the palette
// becomes the working palette, is appended to the history and the cursor moves to
// it. On failure the store is unchanged.
func (s *Store) ChangeMode(ctx context.Context) error {
	p, err := s.gen.Generate(ctx, s.mode)
	if err != nil {
		s.logger.Warn(ctx, "palette generation failed", "mode", string(s.mode), "error", err)
		return err
	}

	s.palette = p
	s.history = append(s.history, Entry{
		ID:        uuid.New(),
		Palette:   p,
		Mode:      s.mode,
		CreatedAt: s.now(),
	})
	s.cursor = len(s.history) - 1

	s.logger.Debug(ctx, "palette appended to history",
		"mode", string(s.mode),
		"history_len", len(s.history),
	)
	return nil
}

// Mode returns the active generation mode.
func (s *Store) Mode() palette.Mode { return s.mode }

// SetMode changes the mode used by the next ChangeMode.
func (s *Store) SetMode(mode palette.Mode) {
	s.mode = mode
}

// Target returns the active target.
func (s *Store) Target() schema.Target { return s.target }

// SetTarget switches the active role table. The palette itself is untouched.
func (s *Store) SetTarget(target schema.Target) error {
	if _, err := schema.Lookup(target); err != nil {
		return err
	}
	s.target = target
	return nil
}

// Seek moves the cursor one step in dir, saturating at either end, and loads the
// entry under the cursor into the working palette. It reports whether the cursor
// moved.
func (s *Store) Seek(dir Direction) bool {
	if len(s.history) == 0 {
		return false
	}
	next := s.cursor + int(dir)
	if next < 0 || next >= len(s.history) {
		return false
	}
	s.cursor = next
	s.palette = s.history[s.cursor].Palette
	return true
}

// Back moves toward older entries.
func (s *Store) Back() bool { return s.Seek(Backward) }

// Forward moves toward newer entries.
func (s *Store) Forward() bool { return s.Seek(Forward) }

// Palette returns the working palette.
func (s *Store) Palette() palette.Palette { return s.palette }

// History returns a copy of the history.
func (s *Store) History() []Entry {
	return append([]Entry(nil), s.history...)
}

// Cursor returns the history position. It is meaningless while Len is zero.
func (s *Store) Cursor() int { return s.cursor }

// Len returns the number of history entries.
func (s *Store) Len() int { return len(s.history) }

// Current returns the entry under the cursor.
func (s *Store) Current() (Entry, bool) {
	if len(s.history) == 0 {
		return Entry{}, false
	}
	return s.history[s.cursor], true
}

// UpdateColor edits the working palette through the active target's role table.
// History entries are never modified.
func (s *Store) UpdateColor(key, value string) (bool, error) {
	p, changed, err := schema.UpdateColor(s.target, s.palette, key, value)
	if err != nil {
		return false, err
	}
	s.palette = p
	return changed, nil
}

// Mapping formats the working palette under the active target.
func (s *Store) Mapping() (map[string]string, error) {
	return schema.Mapping(s.target, s.palette)
}

// SelectedAlpha returns the alpha of the active target's emphasis role.
func (s *Store) SelectedAlpha() (float64, error) {
	return schema.SelectedAlpha(s.target, s.palette)
}

// Roles lists the active target's role names.
func (s *Store) Roles() ([]string, error) {
	return schema.Roles(s.target)
}
