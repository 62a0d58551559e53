package components

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSummaryView(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     SummaryData
		contains []string
		absent   []string
	}{
		{
			name: "renders empty summary",
			data: SummaryData{},
		},
		{
			name:     "renders mode and target",
			data:     SummaryData{Mode: "random", Target: "warp"},
			contains: []string{"Mode: random  Target: warp"},
		},
		{
			name:     "renders trimmed alpha",
			data:     SummaryData{Alpha: 0.5, HasAlpha: true},
			contains: []string{"Emphasis alpha: 0.5"},
		},
		{
			name:     "renders opaque alpha",
			data:     SummaryData{Alpha: 1, HasAlpha: true},
			contains: []string{"Emphasis alpha: 1"},
		},
		{
			name:     "renders readable count",
			data:     SummaryData{Passing: 3, Total: 4},
			contains: []string{"Readable roles: 3/4"},
		},
		{
			name:     "export in progress wins over previous path",
			data:     SummaryData{Exporting: true, Exported: "/tmp/x.zip"},
			contains: []string{"Export in progress"},
			absent:   []string{"/tmp/x.zip"},
		},
		{
			name:     "renders exported path",
			data:     SummaryData{Exported: "/tmp/x.zip"},
			contains: []string{"Exported to /tmp/x.zip"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			view := NewSummary(tt.data).View()
			if len(tt.contains) == 0 {
				require.Equal(t, "", view)
			}
			for _, s := range tt.contains {
				require.Contains(t, view, s)
			}
			for _, s := range tt.absent {
				require.NotContains(t, view, s)
			}
		})
	}
}
