package store

import (
	"context"

	"otp_market/internal/domain"

	"gorm.io/gorm" // GORM ORM library
)

// FundingStore is the gorm-backed funding request repository.
type FundingStore struct {
	db *gorm.DB // Database handle
}

// NewFundingStore creates a FundingStore over the given handle.
func NewFundingStore(db *gorm.DB) *FundingStore {
	return &FundingStore{db: db}
}

// Create persists a new funding request.
func (s *FundingStore) Create(ctx context.Context, req *domain.FundingRequest) error {
	return handle(ctx, s.db).Create(req).Error
}

// GetByPublicID retrieves a funding request by its external id.
func (s *FundingStore) GetByPublicID(ctx context.Context, publicID string) (*domain.FundingRequest, error) {
	var req domain.FundingRequest
	if err := handle(ctx, s.db).Where("public_id = ?", publicID).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// List returns a page of funding requests, newest first, optionally filtered
// by status, plus the total count.
func (s *FundingStore) List(ctx context.Context, status string, offset, limit int) ([]domain.FundingRequest, int64, error) {
	db := handle(ctx, s.db)
	query := db.Model(&domain.FundingRequest{})
	if status != "" {
		query = query.Where("status = ?", status) // Filter by status
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var reqs []domain.FundingRequest
	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&reqs).Error; err != nil {
		return nil, 0, err
	}
	return reqs, total, nil
}

// SettleStatus moves a pending funding request to approved or rejected.
// A request is settled at most once; a second transition affects zero rows.
func (s *FundingStore) SettleStatus(ctx context.Context, publicID, status string) error {
	res := handle(ctx, s.db).Model(&domain.FundingRequest{}).
		Where("public_id = ? AND status = ?", publicID, domain.FundingStatusPending).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound // Missing or already settled
	}
	return nil
}
