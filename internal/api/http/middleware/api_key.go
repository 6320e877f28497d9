package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIKey guards mutating endpoints with a shared-secret header check.
// An empty expected key disables the check, which keeps local
// development friction-free.
func APIKey(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if expected == "" {
			c.Next()
			return
		}

		if c.GetHeader("X-API-Key") != expected {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"errorCode": "UNAUTHORIZED",
				"message":   "invalid API key",
			})
			return
		}

		c.Next()
	}
}
