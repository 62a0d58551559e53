package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/colorterm/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/colorterm/internal/ports"
	"github.com/alexisbeaulieu97/colorterm/internal/tui"
)

type editOptions struct {
	logFile string
}

// isTerminal is swapped in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func newEditCmd(app *AppContext) *cobra.Command {
	opts := &editOptions{}

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Open the interactive palette editor",
		Long: `Open the interactive palette editor. When stdout is not a terminal the
command prints one generated palette instead, like 'colorterm generate'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, app, opts)
		},
	}

	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Write logs to this file while the editor is open")
	cmd.Flags().StringP("mode", "m", "", "Initial generation mode (cubehelix, random)")
	cmd.Flags().StringP("target", "t", "", "Initial target (iterm, warp, hyper)")
	bindFlag(cmd, "mode", "generator.mode")
	bindFlag(cmd, "target", "target")

	return cmd
}

func runEdit(cmd *cobra.Command, app *AppContext, opts *editOptions) error {
	if !isTerminal() {
		return runGenerate(cmd, app, &generateOptions{format: formatText, count: 1})
	}

	ctx, logger := app.CommandContext(cmd, "command.edit")

	// stdout belongs to the editor: log either to a file or into a buffer
	// replayed once the screen is released.
	var tuiLogger ports.Logger
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return newCommandError("edit", "opening log file", err, "Check that the log file directory exists and is writable.")
		}
		defer f.Close()
		fileLogger, err := newLogger(f, app.Config.Log)
		if err != nil {
			return err
		}
		tuiLogger = fileLogger.With("command", "command.edit")
	} else {
		buffer := logging.NewEventBuffer(0)
		defer buffer.Flush(logger)
		tuiLogger = logging.NewBufferedLogger(buffer)
	}

	tuiLogger.Info(ctx, "launching editor", "mode", app.Config.Generator.Mode, "target", app.Config.Target)

	m := tui.NewModel(ctx, app.NewStore(tuiLogger), app.ExportClient(tuiLogger), app.Config.Export.OutputDir, tuiLogger)
	if err := runProgram(ctx, m); err != nil {
		tuiLogger.Error(ctx, "editor execution failed", "error", err)
		return fmt.Errorf("failed to run editor: %w", err)
	}

	tuiLogger.Info(ctx, "editor closed")
	return nil
}

func runProgram(ctx context.Context, m tea.Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
