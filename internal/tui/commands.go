package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/colorterm/internal/export"
)

// Exporter sends a request to the render service and saves the bundle in dir.
type Exporter interface {
	Export(ctx context.Context, req export.Request, dir string) (string, error)
}

// exportCmd runs the export off the update loop. req is a snapshot, so edits
// made while the command is in flight do not change what is sent.
func exportCmd(ctx context.Context, exporter Exporter, req export.Request, dir string) tea.Cmd {
	return func() tea.Msg {
		path, err := exporter.Export(ctx, req, dir)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return ExportCancelledMsg{Target: req.GenerateMode}
			}
			return ExportErrorMsg{Target: req.GenerateMode, Err: err}
		}
		return ExportCompleteMsg{Target: req.GenerateMode, Path: path}
	}
}
