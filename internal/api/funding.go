package api

import (
	"net/http"                    // HTTP status codes
	"otp_market/internal/service" // Funding workflow
	"otp_market/internal/utils"   // Cache helpers

	"github.com/gin-gonic/gin" // Gin web framework
)

// FundingRequestBody represents a top-up claim
type FundingRequestBody struct {
	Amount    float64 `json:"amount" binding:"required,gt=0"` // Requested credit amount
	Method    string  `json:"method" binding:"required"`      // Payment method: upi, bank, crypto
	Reference string  `json:"reference"`                      // Optional transaction reference (UTR)
}

// adminFundingPrefix is the cache key prefix for the admin funding listing.
const adminFundingPrefix = "admin:funding"

// CreateFundingHandler queues a top-up claim for manual approval. The wallet
// is untouched here; only the admin approval credits it.
func CreateFundingHandler(funding *service.FundingService, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get account ID from context
		// Check if account ID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req FundingRequestBody // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		ctx := c.Request.Context() // Deadline-bounded request context
		// Run the funding workflow
		requestID, err := funding.RequestFunding(ctx, userID.(uint), req.Amount, req.Method, req.Reference, requestMeta(c))
		if err != nil {
			// Map workflow errors onto HTTP statuses
			c.JSON(workflowStatus(err), gin.H{"error": workflowMessage(err)})
			return
		}
		// New pending request invalidates cached admin listings
		_ = cache.DeletePrefix(ctx, adminFundingPrefix)
		// Return success response
		c.JSON(http.StatusCreated, gin.H{
			"request_id": requestID,                                             // External request id
			"message":    "Payment submitted. Admin will verify and add funds.", // Manual approval pending
		})
	}
}
