package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/colorterm/internal/color"
)

// RoleEntry is one role row of the editor.
type RoleEntry struct {
	Name     string
	Color    color.Color
	Contrast float64
}

// RoleList renders the roles of a target as colored swatches.
type RoleList struct {
	entries  []RoleEntry
	selected int
}

// NewRoleList builds a role list in the order of names. Contrast is measured
// against background; the background row itself reports 1.
func NewRoleList(names []string, colors map[string]color.Color, background color.Color, selected int) RoleList {
	entries := make([]RoleEntry, 0, len(names))
	for _, name := range names {
		c := colors[name]
		entries = append(entries, RoleEntry{
			Name:     name,
			Color:    c,
			Contrast: color.ContrastRatio(c, background),
		})
	}
	return RoleList{entries: entries, selected: selected}
}

// Entries returns the ordered role entries.
func (l RoleList) Entries() []RoleEntry {
	clone := make([]RoleEntry, len(l.entries))
	copy(clone, l.entries)
	return clone
}

// View renders one line per role: cursor marker, swatch, name, value and contrast.
func (l RoleList) View() string {
	width := 0
	for _, e := range l.entries {
		width = max(width, len(e.Name))
	}

	lines := make([]string, 0, len(l.entries))
	for i, e := range l.entries {
		marker := "  "
		if i == l.selected {
			marker = "▸ "
		}
		lines = append(lines, fmt.Sprintf("%s%s %-*s %-24s %5.2f:1 %s",
			marker, Swatch(e.Color), width, e.Name, color.Format(e.Color), e.Contrast, ContrastMark(e.Contrast)))
	}
	return strings.Join(lines, "\n")
}

// Swatch renders a short block filled with c. Alpha is not representable in a
// terminal cell, so only the RGB channels are shown.
func Swatch(c color.Color) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("      ")
}

// ContrastMark reports whether ratio meets the minimum text contrast.
func ContrastMark(ratio float64) string {
	if ratio >= color.MinimumTextContrast {
		return "✓"
	}
	return "✗"
}
