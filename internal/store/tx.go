package store

import (
	"context"

	"gorm.io/gorm" // GORM ORM library
)

// txKey is the context key carrying an open transaction handle.
type txKey struct{}

// TxManager runs functions inside one gorm transaction, passing the handle
// through the context so the stores in this package pick it up. If the
// function errors the transaction is rolled back, otherwise committed.
type TxManager struct {
	db *gorm.DB // Base database handle
}

// NewTxManager creates a TxManager over the given handle.
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// WithTransaction executes fn within a database transaction.
func (m *TxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// handle returns the transaction bound to ctx, falling back to the base
// handle when no transaction is open.
func handle(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
