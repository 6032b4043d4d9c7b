package utils

import (
	"github.com/gin-gonic/gin"
)

// RemoteIPHeaders are the forwarding headers set by the reverse proxy in front of the site.
var RemoteIPHeaders = []string{"X-Real-IP", "X-Forwarded-For"}

// ConfigureClientIP makes gin resolve client addresses from RemoteIPHeaders, but only
// for requests arriving from one of the trusted proxies.
func ConfigureClientIP(router *gin.Engine, trustedProxies []string) error {
	router.RemoteIPHeaders = RemoteIPHeaders
	return router.SetTrustedProxies(trustedProxies)
}

// GetRealIP returns the client IP used for logging and rate limiting.
func GetRealIP(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return c.RemoteIP()
}
