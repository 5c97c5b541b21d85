package store

import (
	"context"

	"otp_market/internal/domain"

	"gorm.io/gorm" // GORM ORM library
)

// ActivityStore is the gorm-backed activity log. Append-only; there are no
// update or delete operations on purpose.
type ActivityStore struct {
	db *gorm.DB // Database handle
}

// NewActivityStore creates an ActivityStore over the given handle.
func NewActivityStore(db *gorm.DB) *ActivityStore {
	return &ActivityStore{db: db}
}

// Append persists one audit record.
func (s *ActivityStore) Append(ctx context.Context, rec *domain.ActivityRecord) error {
	return handle(ctx, s.db).Create(rec).Error
}

// ListRecent returns the account's most recent audit records, newest first.
func (s *ActivityStore) ListRecent(ctx context.Context, userID uint, limit int) ([]domain.ActivityRecord, error) {
	var recs []domain.ActivityRecord
	if err := handle(ctx, s.db).Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}
