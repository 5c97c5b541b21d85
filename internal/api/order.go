package api

import (
	"net/http"                    // HTTP status codes
	"otp_market/internal/domain"  // Importing domain models
	"otp_market/internal/service" // Order workflow
	"otp_market/internal/store"   // Store handles
	"otp_market/internal/utils"   // Cache helpers
	"strconv"                     // String conversion

	"github.com/gin-gonic/gin" // Gin web framework
)

// PlaceOrderRequest represents a rental order request
type PlaceOrderRequest struct {
	Service  string `json:"service" binding:"required"`  // Service identifier
	Country  string `json:"country" binding:"required"`  // Number country
	Duration int    `json:"duration" binding:"required"` // Rental duration in minutes
}

// ordersPrefix is the cache key prefix for an account's order pages.
func ordersPrefix(userID uint) string {
	return "orders:user:" + strconv.Itoa(int(userID))
}

// PlaceOrderHandler places a rental order against the wallet
func PlaceOrderHandler(orders *service.OrderService, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get account ID from context
		// Check if account ID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req PlaceOrderRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		ctx := c.Request.Context() // Deadline-bounded request context
		// Run the order workflow; price is derived from the duration tier
		orderID, err := orders.PlaceOrder(ctx, userID.(uint), req.Service, req.Country, req.Duration, requestMeta(c))
		if err != nil {
			// Map workflow errors onto HTTP statuses
			c.JSON(workflowStatus(err), gin.H{"error": workflowMessage(err)})
			return
		}
		// Invalidate wallet and order history caches after the debit
		_ = cache.Delete(ctx, walletKey(userID.(uint)), "activity:user:"+strconv.Itoa(int(userID.(uint))))
		_ = cache.DeletePrefix(ctx, ordersPrefix(userID.(uint)))
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"order_id": orderID, "message": "Order placed successfully"})
	}
}

// ListOrdersHandler returns the authenticated account's orders, paginated
func ListOrdersHandler(orders *store.OrderStore, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get account ID from context
		// Check if account ID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		page, pageSize, offset := pagination(c) // Pagination parameters
		ctx := c.Request.Context()
		// Cache key covers the page coordinates
		cacheKey := ordersPrefix(userID.(uint)) + ":page:" + strconv.Itoa(page) + ":size:" + strconv.Itoa(pageSize)
		var cached struct {
			Orders     []domain.Order `json:"orders"`      // List of orders
			Page       int            `json:"page"`        // Current page
			PageSize   int            `json:"page_size"`   // Page size
			Total      int64          `json:"total"`       // Total number of orders
			TotalPages int            `json:"total_pages"` // Total pages
		}
		found, err := cache.Get(ctx, cacheKey, &cached)
		// If found in cache, return it
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"orders":      cached.Orders,     // List of orders
				"page":        cached.Page,       // Current page
				"page_size":   cached.PageSize,   // Page size
				"total":       cached.Total,      // Total number of orders
				"total_pages": cached.TotalPages, // Total pages
				"cached":      true,              // Indicate response is from cache
			})
			return
		}
		// Fetch a page of orders from the store
		list, total, err := orders.ListByUser(ctx, userID.(uint), offset, pageSize)
		if err != nil {
			// If fetching fails, return error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		resp := gin.H{
			"orders":      list,       // List of orders
			"page":        page,       // Current page
			"page_size":   pageSize,   // Page size
			"total":       total,      // Total number of orders
			"total_pages": totalPages, // Total pages
			"cached":      false,      // Not from cache
		}
		_ = cache.Set(ctx, cacheKey, resp, cacheTTL) // Cache the result
		c.JSON(http.StatusOK, resp)                  // Return order history
	}
}
