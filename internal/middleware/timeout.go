package middleware

import (
	"context" // Request deadlines
	"time"    // Timeout duration

	"github.com/gin-gonic/gin" // Gin web framework
)

// RequestTimeoutMiddleware bounds every request by a deadline so a stalled
// store call surfaces as a retryable timeout instead of hanging the session.
func RequestTimeoutMiddleware(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d) // Derive deadline
		defer cancel()
		c.Request = c.Request.WithContext(ctx) // Propagate to handlers
		c.Next()                               // Proceed to the next handler
	}
}
