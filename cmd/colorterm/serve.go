package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/colorterm/internal/render"
	"github.com/alexisbeaulieu97/colorterm/internal/server"
)

const shutdownGrace = 10 * time.Second

func newServeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the render service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger := app.CommandContext(cmd, "command.serve")

			renderer, err := render.New()
			if err != nil {
				return err
			}

			srvCfg, err := server.ConfigFrom(app.Config.Server)
			if err != nil {
				return newCommandError("serve", "reading server settings", err, "Check server.trusted_proxies.")
			}

			srv := server.New(srvCfg, renderer, logger)
			if err := srv.Run(ctx, shutdownGrace); err != nil {
				logger.Error(ctx, "serve command failed", "error", err)
				return newCommandError("serve", "running render service", err, "Check that server.addr is free.")
			}
			return nil
		},
	}

	cmd.Flags().String("addr", "", "Listen address (host:port)")
	bindFlag(cmd, "addr", "server.addr")

	return cmd
}
