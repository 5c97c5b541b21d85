package api

import (
	"errors"                      // Error matching
	"net/http"                    // HTTP status codes
	"otp_market/internal/service" // Workflow errors
	"strconv"                     // String conversion

	"github.com/gin-gonic/gin" // Gin web framework
)

// requestMeta captures the audit metadata for the current request.
func requestMeta(c *gin.Context) service.RequestMeta {
	return service.RequestMeta{
		IP:        c.ClientIP(),          // Origin address
		UserAgent: c.Request.UserAgent(), // Client descriptor
	}
}

// pagination reads page/page_size query params with the usual defaults and
// caps, returning page, page size and row offset.
func pagination(c *gin.Context) (int, int, int) {
	page := 1      // Default page number
	pageSize := 20 // Default page size
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v // Set page if valid
		}
	}
	// Check and set page size within limits
	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v // Set page size
		}
	}
	return page, pageSize, (page - 1) * pageSize
}

// workflowStatus maps a workflow error to an HTTP status code.
func workflowStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidDuration),
		errors.Is(err, service.ErrInvalidMethod),
		errors.Is(err, service.ErrBelowMinimum),
		errors.Is(err, service.ErrInsufficientBalance):
		return http.StatusBadRequest // Validation or business-rule failure
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound // Bootstrap contract violated
	case service.IsRetryable(err):
		return http.StatusServiceUnavailable // Safe to retry the whole call
	default:
		return http.StatusInternalServerError
	}
}

// workflowMessage is the user-facing text for a workflow error. Only the
// tagged workflow errors surface verbatim; everything else is genericized.
func workflowMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidDuration),
		errors.Is(err, service.ErrInvalidMethod),
		errors.Is(err, service.ErrBelowMinimum),
		errors.Is(err, service.ErrInsufficientBalance),
		errors.Is(err, service.ErrNotFound):
		return err.Error()
	case service.IsRetryable(err):
		return "Temporary failure, please retry"
	default:
		return "Internal error"
	}
}
