package components

import (
	"fmt"
	"strings"
)

// SummaryData aggregates the editor state shown under the role list.
type SummaryData struct {
	Mode      string
	Target    string
	Alpha     float64
	HasAlpha  bool
	Passing   int
	Total     int
	Exporting bool
	Exported  string
}

// Summary renders a textual palette summary.
type Summary struct {
	data SummaryData
}

// NewSummary creates a new Summary component.
func NewSummary(data SummaryData) Summary {
	return Summary{data: data}
}

// View renders the summary.
func (s Summary) View() string {
	var lines []string
	if s.data.Mode != "" || s.data.Target != "" {
		lines = append(lines, fmt.Sprintf("Mode: %s  Target: %s", s.data.Mode, s.data.Target))
	}
	if s.data.HasAlpha {
		lines = append(lines, fmt.Sprintf("Emphasis alpha: %s", strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", s.data.Alpha), "0"), ".")))
	}
	if s.data.Total > 0 {
		lines = append(lines, fmt.Sprintf("Readable roles: %d/%d", s.data.Passing, s.data.Total))
	}

	if s.data.Exporting {
		lines = append(lines, "Export in progress")
	} else if s.data.Exported != "" {
		lines = append(lines, "Exported to "+s.data.Exported)
	}

	return strings.Join(lines, "\n")
}
