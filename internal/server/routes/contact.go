package routes

import (
	"github.com/exovance/site/internal/api/handlers"
	"github.com/exovance/site/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// SetupContactRoutes configures contact form routes
func SetupContactRoutes(router *gin.RouterGroup, contact *handlers.ContactHandler, m *Middleware) {
	public := router.Group("/contact")
	{
		// Only submissions count against the per-client budget
		public.POST("/submit",
			m.ContactRateLimit.Middleware(),
			middleware.BodyLimit(m.MaxBodySize),
			contact.Submit,
		)
		public.GET("/forms/:id", contact.FormStatus)
	}
}
