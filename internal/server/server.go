package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/exovance/site/internal/api/handlers"
	"github.com/exovance/site/internal/api/middleware"
	"github.com/exovance/site/internal/config"
	"github.com/exovance/site/internal/contact"
	"github.com/exovance/site/internal/logging"
	"github.com/exovance/site/internal/metrics"
	"github.com/exovance/site/internal/server/routes"
	"github.com/exovance/site/internal/tasks"
	"github.com/exovance/site/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	ServiceName     = "exovance-site"
	shutdownTimeout = 15 * time.Second
)

// Server represents the HTTP server
type Server struct {
	cfg      *config.Config
	logger   *logging.Logger
	router   *gin.Engine
	registry *contact.Registry
	cleanup  *tasks.FormCleanup
	metrics  *metrics.Metrics
}

// NewServer wires handlers, middleware, and the mail relay from cfg
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	// Request logging goes through our own logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	router := gin.New()
	if err := utils.ConfigureClientIP(router, cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	met := metrics.New("exovance", nil)
	mailRelay := NewRelay(cfg, met, logger)

	formConfig := contact.Config{
		Credentials: cfg.Credentials(),
		Mapping:     cfg.Mapping(),
	}
	registry := contact.NewRegistry(func() *contact.Controller {
		return contact.NewController(formConfig, mailRelay, logger)
	}, cfg.FormTTL, cfg.MaxForms)

	routes.SetupGlobalMiddleware(router, logger, met, routes.GlobalOptions{
		ServiceName:    ServiceName,
		Production:     cfg.IsProduction(),
		AllowedOrigins: cfg.AllowedOrigins,
		LogRequests:    cfg.LogRequests,
	})

	h := &routes.Handlers{
		Contact: handlers.NewContactHandler(registry, cfg.Mapping(), met),
		Health:  handlers.NewHealthHandler(),
	}
	m := &routes.Middleware{
		ContactRateLimit: middleware.NewRateLimiter(middleware.RateLimitConfig{
			RPS:   cfg.ContactRateRPS,
			Burst: cfg.ContactRateBurst,
		}),
		MaxBodySize: middleware.DefaultMaxBodySize,
	}
	routes.Setup(router, h, m, met, cfg.StaticDir)

	return &Server{
		cfg:      cfg,
		logger:   logger,
		router:   router,
		registry: registry,
		cleanup:  tasks.NewFormCleanup(registry, cfg.FormSweepInterval, logger),
		metrics:  met,
	}, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Registry returns the form registry
func (s *Server) Registry() *contact.Registry {
	return s.registry
}

// Start serves until ctx is cancelled, then drains in-flight requests
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.cfg.Port)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", s.cfg.Port, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// A submit waits for the relay
		WriteTimeout: s.cfg.RelayTimeout + 20*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.cleanup.Start()
	defer s.cleanup.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening on %s", ln.Addr())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
