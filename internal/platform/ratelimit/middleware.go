package ratelimit

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Middleware returns a Gin middleware that throttles requests per client
// IP using the given limiter. When the window is exhausted the request
// is aborted with 429 before the handler runs.
func Middleware(l *Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}
