package routes

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/exovance/site/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

// SetupStaticRoutes serves the built site from dir. Unknown non-API paths fall back to
// index.html so client-side routes resolve.
func SetupStaticRoutes(router *gin.Engine, dir string) {
	router.NoRoute(func(c *gin.Context) {
		if dir == "" || isAPIPath(c.Request.URL.Path) ||
			(c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse(common.ErrCodeNotFound, "Route not found", nil))
			return
		}

		// path.Clean on a rooted path cannot escape dir.
		rel := path.Clean("/" + c.Request.URL.Path)
		file := filepath.Join(dir, filepath.FromSlash(rel))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}

		index := filepath.Join(dir, "index.html")
		if _, err := os.Stat(index); err != nil {
			c.JSON(http.StatusNotFound, common.NewErrorResponse(common.ErrCodeNotFound, "Route not found", nil))
			return
		}
		c.File(index)
	})
}

func isAPIPath(p string) bool {
	return p == "/api" || strings.HasPrefix(p, "/api/")
}
