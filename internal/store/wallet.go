package store

import (
	"context"

	"otp_market/internal/domain"

	"gorm.io/gorm" // GORM ORM library
)

// WalletStore is the gorm-backed wallet repository.
type WalletStore struct {
	db *gorm.DB // Database handle
}

// NewWalletStore creates a WalletStore over the given handle.
func NewWalletStore(db *gorm.DB) *WalletStore {
	return &WalletStore{db: db}
}

// GetByUserID retrieves the wallet owned by the given account.
func (s *WalletStore) GetByUserID(ctx context.Context, userID uint) (*domain.Wallet, error) {
	var wallet domain.Wallet
	if err := handle(ctx, s.db).Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

// Create persists a new wallet.
func (s *WalletStore) Create(ctx context.Context, wallet *domain.Wallet) error {
	return handle(ctx, s.db).Create(wallet).Error
}

// DebitIfSufficient decrements the balance only when it covers the amount.
// The guard runs inside the UPDATE itself, so two concurrent debits can never
// both spend the same balance; the loser affects zero rows.
func (s *WalletStore) DebitIfSufficient(ctx context.Context, userID uint, amount float64) (bool, error) {
	res := handle(ctx, s.db).Model(&domain.Wallet{}).
		Where("user_id = ? AND balance >= ?", userID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Credit increments the balance by amount.
func (s *WalletStore) Credit(ctx context.Context, userID uint, amount float64) error {
	res := handle(ctx, s.db).Model(&domain.Wallet{}).
		Where("user_id = ?", userID).
		Update("balance", gorm.Expr("balance + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound // Wallet missing
	}
	return nil
}
