package service

import (
	"context"
	"fmt"

	"otp_market/internal/domain"

	"github.com/google/uuid"     // Public request ids
	"github.com/sirupsen/logrus" // Logging library
)

// FundingService records top-up claims for manual approval. It queues the
// claim only; the wallet is credited by the admin approval action, never here.
type FundingService struct {
	funding   FundingStore    // Funding request store
	activity  *ActivityLogger // Best-effort audit trail
	minAmount float64         // Minimum accepted funding amount
}

// NewFundingService wires a FundingService with the configured minimum amount.
func NewFundingService(funding FundingStore, activity *ActivityLogger, minAmount float64) *FundingService {
	return &FundingService{
		funding:   funding,   // Funding request store
		activity:  activity,  // Audit trail
		minAmount: minAmount, // Minimum amount
	}
}

// RequestFunding creates a pending funding request. Amounts under the minimum
// and unknown payment methods are rejected before any write.
func (s *FundingService) RequestFunding(ctx context.Context, userID uint, amount float64, method, reference string, meta RequestMeta) (string, error) {
	if amount < s.minAmount {
		return "", ErrBelowMinimum // Nothing written
	}
	// Validate payment method against the accepted set
	switch method {
	case domain.FundingMethodUPI, domain.FundingMethodBank, domain.FundingMethodCrypto:
	default:
		return "", ErrInvalidMethod
	}
	req := &domain.FundingRequest{
		PublicID:  uuid.NewString(),            // External request id
		UserID:    userID,                      // Claiming account
		Amount:    amount,                      // Requested credit
		Method:    method,                      // Payment method
		Reference: reference,                   // Optional UTR for manual matching
		Status:    domain.FundingStatusPending, // Awaiting admin verification
	}
	if err := s.funding.Create(ctx, req); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,      // Claiming account
			"amount":  amount,      // Requested credit
			"method":  method,      // Payment method
			"error":   err.Error(), // Failure cause
		}).Error("Funding request failed")
		return "", transient(err)
	}
	// Log queued funding request
	logrus.WithFields(logrus.Fields{
		"user_id":    userID,       // Claiming account
		"request_id": req.PublicID, // External request id
		"amount":     amount,       // Requested credit
		"method":     method,       // Payment method
	}).Info("Funding request queued")
	// Best-effort audit, never fails the request
	s.activity.Record(ctx, userID, domain.ActivityPayment,
		fmt.Sprintf("Payment of %.0f initiated via %s", amount, method), meta)
	return req.PublicID, nil
}
