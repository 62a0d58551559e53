package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// HistoryBar renders the cursor position within the palette history.
type HistoryBar struct {
	bar progress.Model
}

// NewHistoryBar creates a history bar of the given width.
func NewHistoryBar(width int) HistoryBar {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	if width > 0 {
		bar.Width = width
	}
	return HistoryBar{bar: bar}
}

// View renders "cursor/len" followed by a bar filled up to the cursor.
// An empty history renders as 0/0.
func (h HistoryBar) View(cursor, length int) string {
	pos := 0
	ratio := 0.0
	if length > 0 {
		pos = cursor + 1
		ratio = float64(pos) / float64(length)
	}
	label := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%d/%d", pos, length))
	return lipgloss.JoinHorizontal(lipgloss.Left, label, " ", h.bar.ViewAs(ratio))
}
