package middleware

import (
	"net/http"                  // HTTP status codes
	"otp_market/internal/store" // Account store

	"github.com/gin-gonic/gin" // Gin web framework
)

// AdminOnlyMiddleware checks the account's role in the store on each request
func AdminOnlyMiddleware(accounts *store.AccountStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get account ID from context
		// Check if account ID exists in context
		if !exists {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Fetch account from the store
		acc, err := accounts.GetByID(c.Request.Context(), userID.(uint))
		if err != nil {
			// If account not found or any error, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		// Check if account role is admin
		if acc.Role != "admin" {
			// If not admin, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		// If admin, proceed to the next handler
		c.Next()
	}
}
