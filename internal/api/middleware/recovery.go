package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/exovance/site/internal/api/constants"
	"github.com/exovance/site/internal/api/dto/common"
	"github.com/exovance/site/internal/logging"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into a 500 and logs the stack
func Recovery(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("[PANIC] %s %s | %s | %v\n%s",
					c.Request.Method,
					c.Request.URL.Path,
					c.GetString(constants.ContextKeyRequestID),
					err,
					debug.Stack(),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, common.NewErrorResponse(
					common.ErrCodeInternalServer,
					"Internal server error",
					nil,
				))
			}
		}()

		c.Next()
	}
}
