package middleware

import (
	"net/http"
	"strings"

	"github.com/exovance/site/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

// CORSConfig lists origins allowed to call the API from a browser
type CORSConfig struct {
	AllowedOrigins []string
	// Development accepts any origin
	Development bool
}

func (cfg CORSConfig) allows(origin string) bool {
	if cfg.Development {
		return true
	}
	for _, allowed := range cfg.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// CORS middleware
func CORS(cfg CORSConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Same-origin and non-browser requests carry no Origin header
		if origin == "" {
			c.Next()
			return
		}

		if !cfg.allows(origin) {
			c.AbortWithStatusJSON(http.StatusForbidden, common.NewErrorResponse(
				common.ErrCodeForbidden,
				"Origin not allowed",
				nil,
			))
			return
		}

		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Add("Vary", "Origin")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Accept, Origin, X-Requested-With, X-Request-ID, X-Form-ID")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Expose-Headers", "X-Request-ID, X-Form-ID, X-RateLimit-Limit, X-RateLimit-Remaining, Retry-After")
		h.Set("Access-Control-Max-Age", "86400") // 24 hours

		// Handle preflight requests
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
