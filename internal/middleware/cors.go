// ================== internal/middleware/cors.go ==================
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const allowedMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"

// CORS admits cross-origin requests from allowedOrigin only. "*" echoes any origin.
func CORS(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		allowOrigin := ""
		if allowedOrigin == "*" && origin != "" {
			// Credentials forbid a literal wildcard, so echo the request origin.
			allowOrigin = origin
		} else if origin != "" && origin == allowedOrigin {
			allowOrigin = origin
		}

		c.Header("Vary", "Origin, Access-Control-Request-Method, Access-Control-Request-Headers")

		if allowOrigin != "" {
			c.Header("Access-Control-Allow-Origin", allowOrigin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", allowedMethods)

			reqHeaders := c.Request.Header.Get("Access-Control-Request-Headers")
			if strings.TrimSpace(reqHeaders) == "" {
				reqHeaders = "Content-Type, Authorization"
			}
			c.Header("Access-Control-Allow-Headers", reqHeaders)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
