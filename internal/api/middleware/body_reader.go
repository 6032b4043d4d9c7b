package middleware

import (
	"net/http"

	"github.com/exovance/site/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

// DefaultMaxBodySize caps contact submissions
const DefaultMaxBodySize int64 = 64 * 1024

// BodyLimit rejects bodies larger than maxBytes. Declared lengths are checked up front,
// chunked bodies fail while being read.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodySize
	}
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, common.NewErrorResponse(
				common.ErrCodePayloadTooLarge,
				"Request body too large",
				nil,
			))
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
