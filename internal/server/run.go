package server

import (
	"context"
	"fmt"
	"time"

	"github.com/exovance/site/internal/config"
	"github.com/exovance/site/internal/logging"
	"github.com/exovance/site/internal/telemetry"
)

// Run initialises tracing, then serves until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, logger *logging.Logger) error {
	shutdownTracing, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName: ServiceName,
		Environment: cfg.Environment,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    cfg.OTLPInsecure,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("Failed to flush traces: %v", err)
		}
	}()

	srv, err := NewServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("Starting server in %s mode on port %s", cfg.Environment, cfg.Port)
	if cfg.RelayDryRun {
		logger.Warn("RELAY_DRY_RUN is set: contact submissions will not be delivered")
	}
	return srv.Start(ctx)
}
