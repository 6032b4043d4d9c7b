package utils

import (
	"net/http"

	"github.com/exovance/site/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

// HandleSuccess sends a success response with data
func HandleSuccess(c *gin.Context, data any) {
	c.JSON(http.StatusOK, common.NewSuccessResponse(data))
}
