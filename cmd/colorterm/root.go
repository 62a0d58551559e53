package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "colorterm",
		Short:         "colorterm generates readable color themes for terminal emulators",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.Load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If no subcommand is provided, launch the editor
			return runEdit(cmd, app, &editOptions{})
		},
	}

	cmd.PersistentFlags().StringVar(&app.configPath, "config", "", "Path to a colorterm.yaml configuration file")
	cmd.PersistentFlags().StringVar(&app.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().SetAnnotation("log-level", configKeyAnnotation, []string{"log.level"}) //nolint:errcheck

	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newGenerateCmd(app))
	cmd.AddCommand(newRolesCmd(app))
	cmd.AddCommand(newRenderCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
