package routes

import (
	"github.com/exovance/site/internal/api/handlers"
	"github.com/exovance/site/internal/api/middleware"
)

// Handlers contains all the route handlers
type Handlers struct {
	Contact *handlers.ContactHandler
	Health  *handlers.HealthHandler
}

// Middleware contains route-specific middleware
type Middleware struct {
	ContactRateLimit *middleware.RateLimiter
	// MaxBodySize caps contact request bodies
	MaxBodySize int64
}
