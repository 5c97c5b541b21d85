package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"otp_market/internal/domain"

	"github.com/google/uuid"     // Public order ids
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // For gorm.ErrRecordNotFound
)

// OrderService places number-rental orders against the wallet.
type OrderService struct {
	accounts      AccountStore    // Account store
	wallets       WalletStore     // Wallet store
	orders        OrderStore      // Order store
	activity      *ActivityLogger // Best-effort audit trail
	tx            TxManager       // Transaction scope for debit + order + counters
	legacyPricing bool            // Permissive base-tier fallback for unknown durations
}

// NewOrderService wires an OrderService. Store handles are passed explicitly;
// there is no package-level client state.
func NewOrderService(accounts AccountStore, wallets WalletStore, orders OrderStore, activity *ActivityLogger, tx TxManager, legacyPricing bool) *OrderService {
	return &OrderService{
		accounts:      accounts,      // Account store
		wallets:       wallets,       // Wallet store
		orders:        orders,        // Order store
		activity:      activity,      // Audit trail
		tx:            tx,            // Transaction manager
		legacyPricing: legacyPricing, // Pricing mode
	}
}

// PlaceOrder validates and prices the rental, debits the wallet, creates the
// order, and bumps the account usage counters. The debit, the order row, and
// the counter bumps commit or roll back together; on any error the stores are
// untouched. The audit append runs after commit and cannot fail the order.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint, svcName, country string, duration int, meta RequestMeta) (string, error) {
	price, err := PriceFor(duration, s.legacyPricing) // Resolve the duration tier
	if err != nil {
		return "", err // Unknown duration, nothing written
	}
	wallet, err := s.wallets.GetByUserID(ctx, userID) // Read current balance
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound // Bootstrap contract violated
	}
	if err != nil {
		return "", transient(err)
	}
	// Fast pre-check; the authoritative guard is the conditional debit below
	if wallet.Balance < price {
		return "", ErrInsufficientBalance
	}
	order := &domain.Order{
		PublicID:  uuid.NewString(),          // External order id
		UserID:    userID,                    // Owning account
		Service:   svcName,                   // Rented service
		Country:   country,                   // Number country
		Duration:  duration,                  // Rental minutes
		Price:     price,                     // Derived, never user-supplied
		Status:    domain.OrderStatusPending, // Advanced externally by fulfillment
		ExpiresAt: time.Now().Add(time.Duration(duration) * time.Minute).UnixMilli(),
	}
	// Debit, order row, and counters are one atomic scope
	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		debited, err := s.wallets.DebitIfSufficient(txCtx, userID, price)
		if err != nil {
			return transient(err)
		}
		if !debited {
			// A concurrent order spent the balance between the read and here
			return ErrInsufficientBalance
		}
		if err := s.orders.Create(txCtx, order); err != nil {
			return transient(err)
		}
		if err := s.accounts.AddUsage(txCtx, userID, price, 1, 1); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return transient(err)
		}
		return nil
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,      // Ordering account
			"service":  svcName,     // Rented service
			"duration": duration,    // Rental minutes
			"price":    price,       // Derived price
			"error":    err.Error(), // Failure cause
		}).Error("Order placement failed")
		return "", err
	}
	// Log successful order
	logrus.WithFields(logrus.Fields{
		"user_id":  userID,         // Ordering account
		"order_id": order.PublicID, // External order id
		"service":  svcName,        // Rented service
		"country":  country,        // Number country
		"duration": duration,       // Rental minutes
		"price":    price,          // Derived price
	}).Info("Order placed")
	// Best-effort audit, never fails the order
	s.activity.Record(ctx, userID, domain.ActivityOrder,
		fmt.Sprintf("New order placed for %s (%s) - %.0f", svcName, country, price), meta)
	return order.PublicID, nil
}
