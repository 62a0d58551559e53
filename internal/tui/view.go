package tui

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/colorterm/internal/color"
	"github.com/alexisbeaulieu97/colorterm/internal/schema"
	"github.com/alexisbeaulieu97/colorterm/internal/tui/components"
)

// View renders the current model state
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content strings.Builder

	content.WriteString(m.renderHeader())
	content.WriteString("\n")

	content.WriteString(m.renderPalette())
	content.WriteString("\n")

	if m.viewMode == ViewEdit {
		content.WriteString(m.renderEditor())
		content.WriteString("\n")
	}

	content.WriteString(m.renderStatus())
	content.WriteString(m.renderFooter())

	return content.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("colorterm")
	info := fmt.Sprintf("%s %s  %s %s  %s %s",
		labelStyle.Render("mode"), valueStyle.Render(string(m.store.Mode())),
		labelStyle.Render("target"), valueStyle.Render(m.targetLabel()),
		labelStyle.Render("history"), m.history.View(m.store.Cursor(), m.store.Len()))
	return headerStyle.Render(title + info)
}

func (m Model) renderPalette() string {
	if m.store.Len() == 0 {
		return labelStyle.Render("No palette yet. Press g to generate one.")
	}

	sch, err := schema.Lookup(m.store.Target())
	if err != nil {
		return errorBannerStyle.Render(err.Error())
	}

	p := m.store.Palette()
	colors := sch.Colors(p)
	background := colors[schema.RoleBackground]
	list := components.NewRoleList(sch.RoleNames(), colors, background, m.selected)

	passing, total := 0, 0
	for _, e := range list.Entries() {
		if e.Name == schema.RoleBackground {
			continue
		}
		total++
		if e.Contrast >= color.MinimumTextContrast {
			passing++
		}
	}

	data := components.SummaryData{Passing: passing, Total: total, Exporting: m.exporting, Exported: m.exported}
	if alpha, err := m.store.SelectedAlpha(); err == nil {
		data.Alpha = alpha
		data.HasAlpha = true
	}

	return list.View() + "\n" + sectionStyle.Render(components.NewSummary(data).View())
}

func (m Model) renderEditor() string {
	label := labelStyle.Render("Editing " + m.editing)
	return editStyle.Render(label + "\n" + m.input.View())
}

func (m Model) renderStatus() string {
	switch {
	case m.errorMsg != "":
		return errorBannerStyle.Render("✗ "+m.errorMsg) + "\n"
	case m.exporting:
		return m.spinner.View() + " " + m.status + "\n"
	case m.status != "":
		return statusStyle.Render(m.status) + "\n"
	default:
		return ""
	}
}

func (m Model) renderFooter() string {
	if m.viewMode == ViewEdit {
		return footerStyle.Render(m.help.View(m.editKeys))
	}
	return footerStyle.Render(m.help.View(m.keys))
}
