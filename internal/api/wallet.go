package api

import (
	"net/http"                   // HTTP status codes
	"otp_market/internal/domain" // Importing domain models
	"otp_market/internal/store"  // Store handles
	"otp_market/internal/utils"  // Cache helpers
	"strconv"                    // String conversion
	"time"                       // Cache TTLs

	"github.com/gin-gonic/gin" // Gin web framework
)

// cacheTTL is how long dashboard reads may be served from Redis.
const cacheTTL = 60 * time.Second

// walletKey is the cache key for an account's wallet.
func walletKey(userID uint) string {
	return "wallet:user:" + strconv.Itoa(int(userID))
}

// GetWalletHandler returns wallet info for the authenticated account
func GetWalletHandler(wallets *store.WalletStore, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get account ID from context
		// Check if account ID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := c.Request.Context()           // Request-scoped context
		cacheKey := walletKey(userID.(uint)) // Cache key for wallet
		var wallet domain.Wallet             // Wallet struct to hold data
		found, err := cache.Get(ctx, cacheKey, &wallet)
		// If found in cache, return it
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"wallet": wallet, "cached": true})
			return
		}
		// If not in cache, fetch from the store
		w, err := wallets.GetByUserID(ctx, userID.(uint))
		if err != nil {
			// Return not found if wallet doesn't exist
			c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
			return
		}
		_ = cache.Set(ctx, cacheKey, w, cacheTTL)                  // Cache the wallet
		c.JSON(http.StatusOK, gin.H{"wallet": w, "cached": false}) // Return wallet info
	}
}

// ListActivityHandler returns the account's most recent audit records
func ListActivityHandler(activities *store.ActivityStore, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get account ID from context
		// Check if account ID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := c.Request.Context()
		cacheKey := "activity:user:" + strconv.Itoa(int(userID.(uint))) // Cache key for recent activity
		var cached []domain.ActivityRecord
		found, err := cache.Get(ctx, cacheKey, &cached)
		// If found in cache, return it
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"activities": cached, "cached": true})
			return
		}
		// Fetch the last 10 records from the store
		recs, err := activities.ListRecent(ctx, userID.(uint), 10)
		if err != nil {
			// If fetching fails, return error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activities"})
			return
		}
		_ = cache.Set(ctx, cacheKey, recs, cacheTTL)                      // Cache the records
		c.JSON(http.StatusOK, gin.H{"activities": recs, "cached": false}) // Return activity list
	}
}
