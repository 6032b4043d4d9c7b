package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/exovance/site/internal/logging"
	"github.com/exovance/site/internal/server"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		Long: `Serve the contact API, health and metrics endpoints, and the built site
from STATIC_DIR when set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(dryRun)
			if err != nil {
				return err
			}

			logger, err := logging.InitLogger(cfg.LogConfig())
			if err != nil {
				return err
			}
			defer logger.Close()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.Run(ctx, cfg, logger)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Accept submissions without sending them")
	return cmd
}
