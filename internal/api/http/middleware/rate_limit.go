package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit throttles the expensive graph algorithm endpoints with a
// single shared token bucket. The algorithms hold Neo4j GDS resources
// while they run, so bursty clients are pushed back with 429s instead
// of queueing work behind the pool.
func RateLimit(perSecond float64, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(perSecond), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"errorCode": "RATE_LIMITED",
				"message":   "too many concurrent analysis requests",
			})
			return
		}
		c.Next()
	}
}
