package utils

import (
	"github.com/exovance/site/internal/api/dto/common"
	"github.com/exovance/site/internal/logging"

	"github.com/gin-gonic/gin"
)

// HandleAPIError logs err and writes an error envelope. Error details are only
// included outside release mode.
func HandleAPIError(c *gin.Context, err error, status int, code common.ErrorCode, message string) {
	if err != nil {
		logging.GetGlobalLogger().LogHTTPError(
			c.Request.Method,
			c.Request.URL.Path,
			GetRealIP(c),
			status,
			message,
			err,
		)
	}

	var details any
	if err != nil && gin.Mode() != gin.ReleaseMode {
		details = err.Error()
	}

	c.AbortWithStatusJSON(status, common.NewErrorResponse(code, message, details))
}

// HandleClientError writes an error envelope with explicit details and logs nothing.
// Used where the details are meant for the visitor, such as field validation results.
func HandleClientError(c *gin.Context, status int, code common.ErrorCode, message string, details any) {
	c.AbortWithStatusJSON(status, common.NewErrorResponse(code, message, details))
}
