package service

import (
	"context"
	"errors"
	"fmt"
)

// Workflow errors. Handlers match on these with errors.Is and are the only
// layer that turns them into user-facing text.
var (
	// ErrInvalidDuration is returned when the requested rental duration is not a priced tier
	ErrInvalidDuration = errors.New("unknown rental duration")

	// ErrInvalidMethod is returned when the payment method is not one of the accepted set
	ErrInvalidMethod = errors.New("unknown payment method")

	// ErrBelowMinimum is returned when a funding amount is under the configured minimum
	ErrBelowMinimum = errors.New("amount below minimum funding threshold")

	// ErrInsufficientBalance is returned when the wallet cannot cover the order price
	ErrInsufficientBalance = errors.New("insufficient wallet balance")

	// ErrNotFound is returned when the account or wallet is missing, meaning
	// the signup bootstrap contract was violated
	ErrNotFound = errors.New("account or wallet not found")

	// ErrTransient marks store failures where no partial effect was committed,
	// so the whole workflow call is safe to retry
	ErrTransient = errors.New("store temporarily unavailable")
)

// IsRetryable reports whether the caller may retry the whole workflow call.
// Only transient store failures and deadline expiry qualify; validation and
// business-rule failures are final.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransient) || errors.Is(err, context.DeadlineExceeded)
}

// transient tags an unexpected store error as retryable, keeping the cause in
// the message.
func transient(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrTransient, err)
}
