package api

import (
	"context"                     // Transactional funding approval
	"errors"                      // Error matching
	"fmt"                         // Audit detail strings
	"net/http"                    // HTTP status codes
	"otp_market/internal/domain"  // Importing domain models
	"otp_market/internal/service" // Activity logging
	"otp_market/internal/store"   // Store handles
	"otp_market/internal/utils"   // Cache helpers
	"strconv"                     // String conversion

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // For gorm.ErrRecordNotFound
)

// AccountAdminResponse represents the account data returned to admin
type AccountAdminResponse struct {
	ID          uint          `json:"id"`           // Account ID
	Email       string        `json:"email"`        // Login email
	FullName    string        `json:"full_name"`    // Display name
	Role        string        `json:"role"`         // Account role
	IsActive    bool          `json:"is_active"`    // Account enabled flag
	TotalSpent  float64       `json:"total_spent"`  // Lifetime spend
	TotalOTPs   int           `json:"total_otps"`   // OTPs received
	NumbersUsed int           `json:"numbers_used"` // Numbers rented
	Wallet      domain.Wallet `json:"wallet"`       // Associated wallet
}

// ListAccountsHandler returns all accounts with their wallet info
func ListAccountsHandler(accounts *store.AccountStore, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, pageSize, offset := pagination(c) // Pagination parameters
		ctx := c.Request.Context()
		// Create a cache key based on pagination parameters
		cacheKey := "admin:accounts:page=" + strconv.Itoa(page) + ":size=" + strconv.Itoa(pageSize)
		var cached struct {
			Accounts   []AccountAdminResponse `json:"accounts"`    // List of accounts
			Page       int                    `json:"page"`        // Current page
			PageSize   int                    `json:"page_size"`   // Page size
			Total      int64                  `json:"total"`       // Total number of accounts
			TotalPages int                    `json:"total_pages"` // Total pages
		}
		found, err := cache.Get(ctx, cacheKey, &cached)
		// If cached data found, return it
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"accounts":    cached.Accounts,   // List of accounts
				"page":        cached.Page,       // Current page
				"page_size":   cached.PageSize,   // Page size
				"total":       cached.Total,      // Total number of accounts
				"total_pages": cached.TotalPages, // Total pages
				"cached":      true,              // Indicate response is from cache
			})
			return
		}
		// Fetch a page of accounts with wallets from the store
		list, total, err := accounts.List(ctx, offset, pageSize)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch accounts"}) // Return on error
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		// Map accounts to response format
		resp := make([]AccountAdminResponse, len(list))
		for i, a := range list {
			resp[i] = AccountAdminResponse{
				ID:          a.ID,          // Account ID
				Email:       a.Email,       // Login email
				FullName:    a.FullName,    // Display name
				Role:        a.Role,        // Account role
				IsActive:    a.IsActive,    // Enabled flag
				TotalSpent:  a.TotalSpent,  // Lifetime spend
				TotalOTPs:   a.TotalOTPs,   // OTPs received
				NumbersUsed: a.NumbersUsed, // Numbers rented
				Wallet:      a.Wallet,      // Associated wallet
			}
		}
		// Prepare final response data
		respData := gin.H{
			"accounts":    resp,       // List of accounts
			"page":        page,       // Current page
			"page_size":   pageSize,   // Page size
			"total":       total,      // Total number of accounts
			"total_pages": totalPages, // Total pages
			"cached":      false,      // Indicate response is not from cache
		}
		_ = cache.Set(ctx, cacheKey, respData, cacheTTL) // Cache the response
		c.JSON(http.StatusOK, respData)                  // Return the response
	}
}

// ListFundingHandler returns funding requests, optionally filtered by status
func ListFundingHandler(funding *store.FundingStore, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, pageSize, offset := pagination(c) // Pagination parameters
		status := c.Query("status")             // Optional status filter
		ctx := c.Request.Context()
		// Cache key covers the filter and page coordinates
		cacheKey := adminFundingPrefix + ":status=" + status + ":page=" + strconv.Itoa(page) + ":size=" + strconv.Itoa(pageSize)
		var cached struct {
			Requests   []domain.FundingRequest `json:"requests"`    // List of funding requests
			Page       int                     `json:"page"`        // Current page
			PageSize   int                     `json:"page_size"`   // Page size
			Total      int64                   `json:"total"`       // Total number of requests
			TotalPages int                     `json:"total_pages"` // Total pages
		}
		found, err := cache.Get(ctx, cacheKey, &cached)
		// If cached data found, return it
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"requests":    cached.Requests,   // List of funding requests
				"page":        cached.Page,       // Current page
				"page_size":   cached.PageSize,   // Page size
				"total":       cached.Total,      // Total number of requests
				"total_pages": cached.TotalPages, // Total pages
				"cached":      true,              // Indicate response is from cache
			})
			return
		}
		// Fetch a page of funding requests from the store
		list, total, err := funding.List(ctx, status, offset, pageSize)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch funding requests"}) // Return on error
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		respData := gin.H{
			"requests":    list,       // List of funding requests
			"page":        page,       // Current page
			"page_size":   pageSize,   // Page size
			"total":       total,      // Total number of requests
			"total_pages": totalPages, // Total pages
			"cached":      false,      // Indicate response is not from cache
		}
		_ = cache.Set(ctx, cacheKey, respData, cacheTTL) // Cache the response
		c.JSON(http.StatusOK, respData)                  // Return the response
	}
}

// ApproveFundingHandler settles a pending funding request and credits the
// wallet by the requested amount. Settlement and credit are one transaction,
// and a request settles at most once.
func ApproveFundingHandler(funding *store.FundingStore, wallets *store.WalletStore, txm *store.TxManager, activity *service.ActivityLogger, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.Param("id") // External request id from the route
		ctx := c.Request.Context()
		// Look up the request to credit the right account
		req, err := funding.GetByPublicID(ctx, requestID)
		if err != nil {
			// If request not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Funding request not found"})
			return
		}
		// Settle and credit atomically
		err = txm.WithTransaction(ctx, func(txCtx context.Context) error {
			// Pending-only guard lives in the conditional update
			if err := funding.SettleStatus(txCtx, requestID, domain.FundingStatusApproved); err != nil {
				return err
			}
			// Credit the wallet by the claimed amount
			return wallets.Credit(txCtx, req.UserID, req.Amount)
		})
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Already settled by another admin action
			c.JSON(http.StatusConflict, gin.H{"error": "Funding request already settled"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Approval failed"})
			return
		}
		// Invalidate wallet and funding listing caches
		_ = cache.Delete(ctx, walletKey(req.UserID))
		_ = cache.DeletePrefix(ctx, adminFundingPrefix)
		// Best-effort audit on the credited account
		activity.Record(ctx, req.UserID, domain.ActivityPayment,
			fmt.Sprintf("Payment of %.0f approved via %s", req.Amount, req.Method), requestMeta(c))
		// Return success response
		c.JSON(http.StatusOK, gin.H{"message": "Funding approved"})
	}
}

// RejectFundingHandler settles a pending funding request without any credit
func RejectFundingHandler(funding *store.FundingStore, activity *service.ActivityLogger, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.Param("id") // External request id from the route
		ctx := c.Request.Context()
		// Look up the request for the audit entry
		req, err := funding.GetByPublicID(ctx, requestID)
		if err != nil {
			// If request not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Funding request not found"})
			return
		}
		// Pending-only guard lives in the conditional update
		if err := funding.SettleStatus(ctx, requestID, domain.FundingStatusRejected); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusConflict, gin.H{"error": "Funding request already settled"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Rejection failed"})
			return
		}
		// Invalidate funding listing caches
		_ = cache.DeletePrefix(ctx, adminFundingPrefix)
		// Best-effort audit on the claiming account
		activity.Record(ctx, req.UserID, domain.ActivityPayment,
			fmt.Sprintf("Payment of %.0f rejected", req.Amount), requestMeta(c))
		// Return success response
		c.JSON(http.StatusOK, gin.H{"message": "Funding rejected"})
	}
}

// OrderStatusRequest carries the target status for a fulfillment transition
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"` // Target status: fulfilled, failed, expired
}

// UpdateOrderStatusHandler advances a pending order to a terminal status on
// behalf of the external fulfillment process
func UpdateOrderStatusHandler(orders *store.OrderStore, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("id") // External order id from the route
		var req OrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate the target status
		switch req.Status {
		case domain.OrderStatusFulfilled, domain.OrderStatusFailed, domain.OrderStatusExpired:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
			return
		}
		ctx := c.Request.Context()
		// Look up the order to distinguish missing from already advanced
		order, err := orders.GetByPublicID(ctx, orderID)
		if err != nil {
			// If order not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		// Pending-only guard lives in the conditional update
		if err := orders.AdvanceStatus(ctx, orderID, req.Status); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusConflict, gin.H{"error": "Order already advanced"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Status update failed"})
			return
		}
		// Invalidate the account's order history caches
		_ = cache.DeletePrefix(ctx, ordersPrefix(order.UserID))
		// Return success response
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated"})
	}
}
