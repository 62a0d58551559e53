package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/colorterm/internal/export"
	"github.com/alexisbeaulieu97/colorterm/internal/ports"
)

func newExportCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Generate a palette and save the render service's theme bundle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger := app.CommandContext(cmd, "command.export")
			logger.Info(ctx, "export start", "endpoint", app.Config.Export.Endpoint, "target", app.Config.Target)
			err := runExport(ctx, logger, cmd, app)
			if err != nil {
				logger.Error(ctx, "export command failed", "error", err)
			}
			return err
		},
	}

	cmd.Flags().StringP("mode", "m", "", "Generation mode (cubehelix, random)")
	cmd.Flags().StringP("target", "t", "", "Target terminal (iterm, warp, hyper)")
	cmd.Flags().String("endpoint", "", "Render service endpoint")
	cmd.Flags().StringP("out", "o", "", "Directory the bundle is saved to")
	bindFlag(cmd, "mode", "generator.mode")
	bindFlag(cmd, "target", "target")
	bindFlag(cmd, "endpoint", "export.endpoint")
	bindFlag(cmd, "out", "export.output_dir")

	return cmd
}

func runExport(ctx context.Context, logger ports.Logger, cmd *cobra.Command, app *AppContext) error {
	st := app.NewStore(logger)
	if err := st.ChangeMode(ctx); err != nil {
		return newCommandError("export", "generating palette", err, "Lower generator.min_contrast or raise generator.max_iterations.")
	}
	req, err := export.FromStore(st)
	if err != nil {
		return err
	}

	path, err := app.ExportClient(logger).Export(ctx, req, app.Config.Export.OutputDir)
	if err != nil {
		return newCommandError("export", "exporting theme", err, "Check that the render service is running ('colorterm serve') and export.endpoint points at it.")
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
