// Package tui implements the interactive palette editor.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/colorterm/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/colorterm/internal/ports"
	"github.com/alexisbeaulieu97/colorterm/internal/store"
	"github.com/alexisbeaulieu97/colorterm/internal/tui/components"
)

// generateMsg asks the model to generate a palette from inside the update loop.
type generateMsg struct{}

// Model is the Bubbletea state of the palette editor. The store is owned by
// the model for the lifetime of the program.
type Model struct {
	ctx       context.Context
	store     *store.Store
	exporter  Exporter
	outputDir string
	logger    ports.Logger

	keys     keyMap
	editKeys editKeyMap
	help     help.Model
	input    textinput.Model
	spinner  spinner.Model
	history  components.HistoryBar

	viewMode  ViewMode
	selected  int
	editing   string
	width     int
	height    int
	exporting bool
	exported  string
	status    string
	errorMsg  string
	quitting  bool
}

// NewModel creates an editor over st. exporter may be nil, in which case the
// export key reports that no render service is configured.
func NewModel(ctx context.Context, st *store.Store, exporter Exporter, outputDir string, logger ports.Logger) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	in := textinput.New()
	in.Placeholder = "#rrggbb, rgba(r, g, b, a) or a color name"
	in.CharLimit = 64
	in.Width = 40
	in.Prompt = "› "

	keys := defaultKeyMap()

	return Model{
		ctx:       ctx,
		store:     st,
		exporter:  exporter,
		outputDir: outputDir,
		logger:    logger.With("component", "tui"),
		keys:      keys,
		editKeys:  editKeyMap{apply: keys.Apply, cancel: keys.Cancel},
		help:      help.New(),
		input:     in,
		spinner:   s,
		history:   components.NewHistoryBar(30),
		viewMode:  ViewPalette,
	}
}

// Init generates the first palette when the store is still empty.
func (m Model) Init() tea.Cmd {
	if m.store.Len() == 0 {
		return func() tea.Msg { return generateMsg{} }
	}
	return nil
}

// Store exposes the edited store, mainly for callers inspecting the final state.
func (m Model) Store() *store.Store {
	return m.store
}

// Mode reports the active interaction mode.
func (m Model) Mode() ViewMode {
	return m.viewMode
}

// Selected returns the index of the highlighted role.
func (m Model) Selected() int {
	return m.selected
}

// Err returns the message of the last error shown, if any.
func (m Model) Err() string {
	return m.errorMsg
}

func (m Model) roles() []string {
	roles, err := m.store.Roles()
	if err != nil {
		return nil
	}
	return roles
}

func (m *Model) clampSelection() {
	n := len(m.roles())
	switch {
	case n == 0:
		m.selected = 0
	case m.selected >= n:
		m.selected = n - 1
	case m.selected < 0:
		m.selected = 0
	}
}

func (m *Model) setError(msg string) {
	m.errorMsg = msg
	m.status = ""
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.errorMsg = ""
}
