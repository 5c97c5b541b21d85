package store

import (
	"context"

	"otp_market/internal/domain"

	"gorm.io/gorm" // GORM ORM library
)

// OrderStore is the gorm-backed order repository.
type OrderStore struct {
	db *gorm.DB // Database handle
}

// NewOrderStore creates an OrderStore over the given handle.
func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

// Create persists a new order.
func (s *OrderStore) Create(ctx context.Context, order *domain.Order) error {
	return handle(ctx, s.db).Create(order).Error
}

// ListByUser returns a page of the account's orders, newest first, plus the
// total count.
func (s *OrderStore) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]domain.Order, int64, error) {
	db := handle(ctx, s.db)
	var total int64
	if err := db.Model(&domain.Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var orders []domain.Order
	if err := db.Where("user_id = ?", userID).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// GetByPublicID retrieves an order by its external id.
func (s *OrderStore) GetByPublicID(ctx context.Context, publicID string) (*domain.Order, error) {
	var order domain.Order
	if err := handle(ctx, s.db).Where("public_id = ?", publicID).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// AdvanceStatus moves a pending order to the given terminal status. Orders
// only ever leave pending once; a second transition affects zero rows.
func (s *OrderStore) AdvanceStatus(ctx context.Context, publicID, status string) error {
	res := handle(ctx, s.db).Model(&domain.Order{}).
		Where("public_id = ? AND status = ?", publicID, domain.OrderStatusPending).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound // Missing or already advanced
	}
	return nil
}
