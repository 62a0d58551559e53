package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestViewEmptyStore(t *testing.T) {
	m, _ := newTestModel(t, 0)

	view := m.View()
	assert.Contains(t, view, "colorterm")
	assert.Contains(t, view, "Press g to generate")
	assert.Contains(t, view, "0/0")
}

func TestViewShowsRolesAndSummary(t *testing.T) {
	m, _ := newTestModel(t, 2)

	view := m.View()
	for _, role := range []string{"background", "foreground", "link", "selected", "selectedText"} {
		assert.Contains(t, view, role)
	}
	assert.Contains(t, view, "iTerm2")
	assert.Contains(t, view, "cubehelix")
	assert.Contains(t, view, "2/2")
	assert.Contains(t, view, "Emphasis alpha: 1")
	assert.Contains(t, view, "Readable roles:")
}

func TestViewFollowsTarget(t *testing.T) {
	m, _ := newTestModel(t, 1)

	m, _ = press(t, m, runeKey('t'))
	view := m.View()
	assert.Contains(t, view, "Warp")
	assert.Contains(t, view, "accent")
	assert.NotContains(t, view, "selectedText")
}

func TestViewEditMode(t *testing.T) {
	m, _ := newTestModel(t, 1)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	view := m.View()
	assert.Contains(t, view, "Editing background")
	assert.Contains(t, view, "apply")
	assert.Contains(t, view, "cancel")
}

func TestViewShowsError(t *testing.T) {
	m, _ := newTestModel(t, 1)
	m.setError("something broke")

	assert.Contains(t, m.View(), "✗ something broke")
}
