package middleware

import (
	"time"

	"github.com/exovance/site/internal/api/constants"
	"github.com/exovance/site/internal/logging"
	"github.com/exovance/site/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request. It is a no-op unless enabled.
func RequestLogger(logger *logging.Logger, enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.LogHTTPRequest(
			c.Request.Method,
			path,
			utils.GetRealIP(c),
			c.GetString(constants.ContextKeyRequestID),
			c.Writer.Status(),
			c.Writer.Size(),
			time.Since(start),
		)
	}
}
