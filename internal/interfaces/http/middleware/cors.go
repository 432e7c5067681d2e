package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS permits cross-origin requests from any origin. The API carries no
// cookies or ambient credentials, so a permissive policy is safe; tighten the
// origin list at the ingress when the deployment needs it.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+RequestIDHeader)
		h.Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
