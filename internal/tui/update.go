package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/colorterm/internal/export"
	"github.com/alexisbeaulieu97/colorterm/internal/schema"
)

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case generateMsg:
		m.generate()
		return m, nil

	case spinner.TickMsg:
		if !m.exporting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ExportCompleteMsg:
		m.exporting = false
		m.exported = msg.Path
		m.setStatus(fmt.Sprintf("%s theme saved", msg.Target))
		m.logger.Info(m.ctx, "theme exported", "target", string(msg.Target), "path", msg.Path)
		return m, nil

	case ExportErrorMsg:
		m.exporting = false
		m.setError(fmt.Sprintf("export failed: %v", msg.Err))
		m.logger.Error(m.ctx, "theme export failed", "target", string(msg.Target), "error", msg.Err)
		return m, nil

	case ExportCancelledMsg:
		m.exporting = false
		m.setStatus("export cancelled")
		return m, nil
	}

	if m.viewMode == ViewEdit {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeyPress routes keys by view mode. ctrl+c quits from anywhere.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.viewMode {
	case ViewEdit:
		return m.handleEditKeys(msg)
	default:
		return m.handlePaletteKeys(msg)
	}
}

func (m Model) handlePaletteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Generate):
		m.generate()

	case key.Matches(msg, m.keys.Back):
		if m.store.Back() {
			m.setStatus(m.position())
		} else {
			m.setStatus("already at the oldest palette")
		}

	case key.Matches(msg, m.keys.Forward):
		if m.store.Forward() {
			m.setStatus(m.position())
		} else {
			m.setStatus("already at the newest palette")
		}

	case key.Matches(msg, m.keys.Mode):
		m.store.SetMode(m.store.Mode().Next())
		m.setStatus(fmt.Sprintf("mode set to %s", m.store.Mode()))

	case key.Matches(msg, m.keys.Target):
		if err := m.store.SetTarget(m.store.Target().Next()); err != nil {
			m.setError(err.Error())
			break
		}
		m.clampSelection()
		m.setStatus(fmt.Sprintf("target set to %s", m.store.Target()))

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.roles())-1 {
			m.selected++
		}

	case key.Matches(msg, m.keys.Edit):
		return m.startEdit()

	case key.Matches(msg, m.keys.Export):
		return m.startExport()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.stopEdit()
		m.setStatus("edit cancelled")
		return m, nil

	case key.Matches(msg, m.keys.Apply):
		role := m.editing
		changed, err := m.store.UpdateColor(role, m.input.Value())
		if err != nil {
			// Stay in edit mode so the value can be corrected.
			m.setError(err.Error())
			return m, nil
		}
		m.stopEdit()
		if changed {
			m.setStatus(fmt.Sprintf("%s updated", role))
		} else {
			m.setStatus(fmt.Sprintf("%s is not a role of %s", role, m.store.Target()))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) startEdit() (tea.Model, tea.Cmd) {
	roles := m.roles()
	if len(roles) == 0 || m.store.Len() == 0 {
		m.setError("nothing to edit yet, generate a palette first")
		return m, nil
	}
	m.clampSelection()
	role := roles[m.selected]

	mapping, err := m.store.Mapping()
	if err != nil {
		m.setError(err.Error())
		return m, nil
	}

	m.editing = role
	m.viewMode = ViewEdit
	m.input.SetValue(mapping[role])
	m.input.CursorEnd()
	m.errorMsg = ""
	return m, tea.Batch(m.input.Focus(), textinput.Blink)
}

func (m *Model) stopEdit() {
	m.viewMode = ViewPalette
	m.editing = ""
	m.input.Blur()
	m.input.Reset()
}

func (m Model) startExport() (tea.Model, tea.Cmd) {
	if m.exporting {
		return m, nil
	}
	if m.exporter == nil {
		m.setError("no render service configured")
		return m, nil
	}
	if m.store.Len() == 0 {
		m.setError("nothing to export yet, generate a palette first")
		return m, nil
	}

	req, err := export.FromStore(m.store)
	if err != nil {
		m.setError(err.Error())
		return m, nil
	}

	m.exporting = true
	m.setStatus(fmt.Sprintf("exporting %s theme", req.GenerateMode))
	return m, tea.Batch(m.spinner.Tick, exportCmd(m.ctx, m.exporter, req, m.outputDir))
}

func (m *Model) generate() {
	if err := m.store.ChangeMode(m.ctx); err != nil {
		m.setError(fmt.Sprintf("generation failed: %v", err))
		m.logger.Warn(m.ctx, "palette generation failed", "mode", string(m.store.Mode()), "error", err)
		return
	}
	m.setStatus(fmt.Sprintf("generated %s palette %s", m.store.Mode(), m.position()))
}

func (m Model) position() string {
	return fmt.Sprintf("%d/%d", m.store.Cursor()+1, m.store.Len())
}

var _ tea.Model = Model{}

// targetLabel returns the display label of the active target.
func (m Model) targetLabel() string {
	s, err := schema.Lookup(m.store.Target())
	if err != nil {
		return string(m.store.Target())
	}
	return s.Label
}
