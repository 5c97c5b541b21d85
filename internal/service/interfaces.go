package service

import (
	"context"

	"otp_market/internal/domain"
)

// Store interfaces consumed by the workflows. The gorm implementations live
// in internal/store; tests substitute in-memory fakes.

// AccountStore provides access to account records and their usage counters.
type AccountStore interface {
	// GetByID retrieves an account by its primary key.
	GetByID(ctx context.Context, id uint) (*domain.Account, error)

	// AddUsage atomically increments the spend and usage accumulators.
	// Returns gorm.ErrRecordNotFound when the account does not exist.
	AddUsage(ctx context.Context, id uint, spent float64, otps, numbers int) error
}

// WalletStore provides access to wallet records.
type WalletStore interface {
	// GetByUserID retrieves the wallet owned by the given account.
	GetByUserID(ctx context.Context, userID uint) (*domain.Wallet, error)

	// DebitIfSufficient decrements the balance by amount only when the
	// current balance covers it, reporting whether the debit happened.
	// The guard and the decrement are one atomic store operation, so two
	// concurrent debits can never both spend the same balance.
	DebitIfSufficient(ctx context.Context, userID uint, amount float64) (bool, error)

	// Credit increments the balance by amount.
	Credit(ctx context.Context, userID uint, amount float64) error
}

// OrderStore persists order records.
type OrderStore interface {
	Create(ctx context.Context, order *domain.Order) error
}

// FundingStore persists funding requests.
type FundingStore interface {
	Create(ctx context.Context, req *domain.FundingRequest) error
}

// ActivityStore appends audit records.
type ActivityStore interface {
	Append(ctx context.Context, rec *domain.ActivityRecord) error
}

// TxManager executes a function within one store transaction. If the function
// returns an error every write made inside it is rolled back.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
