package routes

import (
	"github.com/exovance/site/internal/api/middleware"
	"github.com/exovance/site/internal/logging"
	"github.com/exovance/site/internal/metrics"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// GlobalOptions configures middleware applied to every route
type GlobalOptions struct {
	ServiceName    string
	Production     bool
	AllowedOrigins []string
	LogRequests    bool
}

// Setup configures all route groups
func Setup(router *gin.Engine, h *Handlers, m *Middleware, met *metrics.Metrics, staticDir string) {
	logger := logging.GetGlobalLogger()

	SetupHealthRoutes(router, h.Health, met.Handler())

	v1 := router.Group("/api/v1")

	// Contact routes (public)
	SetupContactRoutes(v1, h.Contact, m)

	SetupStaticRoutes(router, staticDir)

	logger.Debug("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, logger *logging.Logger, met *metrics.Metrics, opts GlobalOptions) {
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(otelgin.Middleware(opts.ServiceName))
	router.Use(met.Middleware())
	router.Use(middleware.RequestLogger(logger, opts.LogRequests))
	router.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: opts.AllowedOrigins,
		Development:    !opts.Production,
	}))
	router.Use(middleware.SecurityHeaders(opts.Production))
}

