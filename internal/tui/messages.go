package tui

import "github.com/alexisbeaulieu97/colorterm/internal/schema"

// ViewMode selects which interaction the editor is in.
type ViewMode int

const (
	// ViewPalette is the default palette browsing mode.
	ViewPalette ViewMode = iota
	// ViewEdit shows the text input for a single role.
	ViewEdit
)

// ExportCompleteMsg reports a saved theme bundle.
type ExportCompleteMsg struct {
	Target schema.Target
	Path   string
}

// ExportErrorMsg reports a failed export.
type ExportErrorMsg struct {
	Target schema.Target
	Err    error
}

// ExportCancelledMsg is sent when the export context ends before the bundle is saved.
type ExportCancelledMsg struct {
	Target schema.Target
}
