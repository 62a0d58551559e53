// Package schema maps palette slots onto the named color roles each terminal
// application understands.
package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/colorterm/internal/color"
	"github.com/alexisbeaulieu97/colorterm/internal/palette"
	cterrors "github.com/alexisbeaulieu97/colorterm/pkg/errors"
)

var (
	// ErrUnsupportedSchema is returned for targets with no role table.
	ErrUnsupportedSchema = errors.New("unsupported schema")
	// ErrRoleNotFound is returned when a schema lacks the requested role.
	ErrRoleNotFound = errors.New("role not found")
)

// Target names a terminal application.
type Target string

const (
	TargetIterm Target = "iterm"
	TargetWarp  Target = "warp"
	TargetHyper Target = "hyper"
)

// Role names shared across schemas.
const (
	RoleBackground   = "background"
	RoleForeground   = "foreground"
	RoleLink         = "link"
	RoleSelected     = "selected"
	RoleSelectedText = "selectedText"
	RoleAccent       = "accent"
)

// Role binds a role name to a palette slot.
type Role struct {
	Name  string
	Index int
}

// Schema is the role table of one target. Roles are ordered for display.
type Schema struct {
	Target   Target
	Label    string
	Roles    []Role
	Emphasis string
}

var targetOrder = []Target{TargetIterm, TargetWarp, TargetHyper}

var schemas = map[Target]Schema{
	TargetIterm: {
		Target: TargetIterm,
		Label:  "iTerm2",
		Roles: []Role{
			{Name: RoleBackground, Index: 0},
			{Name: RoleForeground, Index: 1},
			{Name: RoleLink, Index: 2},
			{Name: RoleSelected, Index: 3},
			{Name: RoleSelectedText, Index: 4},
		},
		Emphasis: RoleSelected,
	},
	TargetWarp: {
		Target: TargetWarp,
		Label:  "Warp",
		Roles: []Role{
			{Name: RoleBackground, Index: 0},
			{Name: RoleForeground, Index: 1},
			{Name: RoleAccent, Index: 2},
		},
		Emphasis: RoleAccent,
	},
	TargetHyper: {
		Target: TargetHyper,
		Label:  "Hyper",
		Roles: []Role{
			{Name: RoleBackground, Index: 0},
			{Name: RoleForeground, Index: 1},
			{Name: RoleSelected, Index: 3},
		},
		Emphasis: RoleSelected,
	},
}

// Targets lists every supported target in display order.
func Targets() []Target {
	return append([]Target(nil), targetOrder...)
}

// ParseTarget normalises user input into a supported Target.
func ParseTarget(s string) (Target, error) {
	t := Target(strings.ToLower(strings.TrimSpace(s)))
	if _, err := Lookup(t); err != nil {
		return "", err
	}
	return t, nil
}

// Next cycles through supported targets. Unknown targets restart at the first.
func (t Target) Next() Target {
	for i, candidate := range targetOrder {
		if candidate == t {
			return targetOrder[(i+1)%len(targetOrder)]
		}
	}
	return targetOrder[0]
}

// Lookup returns the role table for target.
func Lookup(target Target) (Schema, error) {
	s, ok := schemas[target]
	if !ok {
		return Schema{}, cterrors.NewSchemaError(string(target), ErrUnsupportedSchema)
	}
	return s, nil
}

// Index returns the palette slot bound to role.
func (s Schema) Index(role string) (int, bool) {
	for _, r := range s.Roles {
		if r.Name == role {
			return r.Index, true
		}
	}
	return 0, false
}

// RoleNames returns the ordered role names.
func (s Schema) RoleNames() []string {
	names := make([]string, len(s.Roles))
	for i, r := range s.Roles {
		names[i] = r.Name
	}
	return names
}

// Colors returns the palette color behind every role.
func (s Schema) Colors(p palette.Palette) map[string]color.Color {
	out := make(map[string]color.Color, len(s.Roles))
	for _, r := range s.Roles {
		out[r.Name] = p[r.Index]
	}
	return out
}

// Mapping returns every role formatted as rgba().
func (s Schema) Mapping(p palette.Palette) map[string]string {
	out := make(map[string]string, len(s.Roles))
	for _, r := range s.Roles {
		out[r.Name] = Format(p[r.Index])
	}
	return out
}

// Format is the canonical rgba() serialization used in mappings.
func Format(c color.Color) string {
	return color.Format(c)
}

// Roles returns the ordered role names exposed by target.
func Roles(target Target) ([]string, error) {
	s, err := Lookup(target)
	if err != nil {
		return nil, err
	}
	return s.RoleNames(), nil
}

// Mapping formats p under target's role table.
func Mapping(target Target, p palette.Palette) (map[string]string, error) {
	s, err := Lookup(target)
	if err != nil {
		return nil, err
	}
	return s.Mapping(p), nil
}

// UpdateColor replaces the slot behind key with the parsed value. Keys outside the
// target's role table leave the palette untouched and report false. Unparseable
// values return an error and the original palette.
func UpdateColor(target Target, p palette.Palette, key, value string) (palette.Palette, bool, error) {
	s, err := Lookup(target)
	if err != nil {
		return p, false, err
	}
	idx, ok := s.Index(key)
	if !ok {
		return p, false, nil
	}
	c, err := color.Parse(value)
	if err != nil {
		return p, false, err
	}
	p[idx] = c
	return p, true, nil
}

// SelectedAlpha returns the alpha of the target's emphasis role, read back from its
// formatted rgba() string.
func SelectedAlpha(target Target, p palette.Palette) (float64, error) {
	s, err := Lookup(target)
	if err != nil {
		return 0, err
	}
	if s.Emphasis == "" {
		return 0, cterrors.NewSchemaError(string(target), ErrRoleNotFound)
	}
	idx, ok := s.Index(s.Emphasis)
	if !ok {
		return 0, cterrors.NewSchemaError(string(target), fmt.Errorf("%w: %s", ErrRoleNotFound, s.Emphasis))
	}
	parsed, err := color.Parse(Format(p[idx]))
	if err != nil {
		return 0, err
	}
	return parsed.A, nil
}
