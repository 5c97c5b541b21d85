package store

import (
	"context"
	"time"

	"otp_market/internal/domain"

	"gorm.io/gorm" // GORM ORM library
)

// AccountStore is the gorm-backed account repository.
type AccountStore struct {
	db *gorm.DB // Database handle
}

// NewAccountStore creates an AccountStore over the given handle.
func NewAccountStore(db *gorm.DB) *AccountStore {
	return &AccountStore{db: db}
}

// GetByID retrieves an account by primary key.
func (s *AccountStore) GetByID(ctx context.Context, id uint) (*domain.Account, error) {
	var acc domain.Account
	if err := handle(ctx, s.db).First(&acc, id).Error; err != nil {
		return nil, err
	}
	return &acc, nil
}

// GetByEmail retrieves an account by its unique email.
func (s *AccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var acc domain.Account
	if err := handle(ctx, s.db).Where("email = ?", email).First(&acc).Error; err != nil {
		return nil, err
	}
	return &acc, nil
}

// Create persists a new account.
func (s *AccountStore) Create(ctx context.Context, acc *domain.Account) error {
	return handle(ctx, s.db).Create(acc).Error
}

// AddUsage atomically increments the spend and usage accumulators.
func (s *AccountStore) AddUsage(ctx context.Context, id uint, spent float64, otps, numbers int) error {
	res := handle(ctx, s.db).Model(&domain.Account{}).Where("id = ?", id).Updates(map[string]any{
		"total_spent":  gorm.Expr("total_spent + ?", spent),    // Lifetime spend
		"total_otps":   gorm.Expr("total_otps + ?", otps),     // OTP counter
		"numbers_used": gorm.Expr("numbers_used + ?", numbers), // Numbers counter
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound // Account missing
	}
	return nil
}

// TouchLogin refreshes the last-login timestamp and origin address.
func (s *AccountStore) TouchLogin(ctx context.Context, id uint, ip string) error {
	return handle(ctx, s.db).Model(&domain.Account{}).Where("id = ?", id).Updates(map[string]any{
		"last_login":    time.Now().UnixMilli(), // Last login timestamp
		"last_login_ip": ip,                     // Origin address
	}).Error
}

// List returns a page of accounts with wallets preloaded, plus the total count.
func (s *AccountStore) List(ctx context.Context, offset, limit int) ([]domain.Account, int64, error) {
	db := handle(ctx, s.db)
	var total int64
	if err := db.Model(&domain.Account{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var accounts []domain.Account
	if err := db.Preload("Wallet").Offset(offset).Limit(limit).Find(&accounts).Error; err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}
