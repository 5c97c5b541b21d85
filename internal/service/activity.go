package service

import (
	"context"

	"otp_market/internal/domain"

	"github.com/sirupsen/logrus" // Logging library
)

// RequestMeta carries per-request audit metadata captured at the HTTP edge.
type RequestMeta struct {
	IP        string // Origin address
	UserAgent string // Client descriptor
}

// ActivityLogger appends audit records on a best-effort basis. A failed
// append is downgraded to a warning and must never fail the operation that
// produced it.
type ActivityLogger struct {
	store ActivityStore // Activity record store
}

// NewActivityLogger creates an ActivityLogger over the given store.
func NewActivityLogger(store ActivityStore) *ActivityLogger {
	return &ActivityLogger{store: store}
}

// Record appends one audit entry. Errors are logged, not returned.
func (l *ActivityLogger) Record(ctx context.Context, userID uint, action, details string, meta RequestMeta) {
	rec := &domain.ActivityRecord{
		UserID:    userID,         // Acting account
		Action:    action,         // Action kind
		Details:   details,        // Human-readable description
		IP:        meta.IP,        // Origin address
		UserAgent: meta.UserAgent, // Client descriptor
	}
	if err := l.store.Append(ctx, rec); err != nil {
		// Audit is a side channel; the parent operation already committed
		logrus.WithFields(logrus.Fields{
			"user_id": userID,      // Acting account
			"action":  action,      // Action kind
			"error":   err.Error(), // Append failure
		}).Warn("Activity append failed")
	}
}
