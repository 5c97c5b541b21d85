package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"otp_market/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// In-memory fakes for the store interfaces. The wallet fake keeps the
// conditional-debit semantics of the real store: the balance guard and the
// decrement happen under one lock.

type fakeWallets struct {
	mu       sync.Mutex
	wallet   *domain.Wallet
	getCalls int
	debitErr error
}

func (f *fakeWallets) GetByUserID(ctx context.Context, userID uint) (*domain.Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.wallet == nil || f.wallet.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	w := *f.wallet
	return &w, nil
}

func (f *fakeWallets) DebitIfSufficient(ctx context.Context, userID uint, amount float64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.debitErr != nil {
		return false, f.debitErr
	}
	if f.wallet == nil || f.wallet.UserID != userID || f.wallet.Balance < amount {
		return false, nil
	}
	f.wallet.Balance -= amount
	return true, nil
}

func (f *fakeWallets) Credit(ctx context.Context, userID uint, amount float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.wallet == nil || f.wallet.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	f.wallet.Balance += amount
	return nil
}

func (f *fakeWallets) balance() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.wallet.Balance
}

type fakeAccounts struct {
	mu      sync.Mutex
	account *domain.Account
}

func (f *fakeAccounts) GetByID(ctx context.Context, id uint) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.account == nil || f.account.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	a := *f.account
	return &a, nil
}

func (f *fakeAccounts) AddUsage(ctx context.Context, id uint, spent float64, otps, numbers int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.account == nil || f.account.ID != id {
		return gorm.ErrRecordNotFound
	}
	f.account.TotalSpent += spent
	f.account.TotalOTPs += otps
	f.account.NumbersUsed += numbers
	return nil
}

type fakeOrders struct {
	mu        sync.Mutex
	created   []*domain.Order
	createErr error
}

func (f *fakeOrders) Create(ctx context.Context, order *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, order)
	return nil
}

type fakeActivity struct {
	mu        sync.Mutex
	records   []*domain.ActivityRecord
	appendErr error
}

func (f *fakeActivity) Append(ctx context.Context, rec *domain.ActivityRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.records = append(f.records, rec)
	return nil
}

// fakeTx runs the function directly; the wallet fake's conditional debit is
// what the consistency assertions lean on.
type fakeTx struct{}

func (fakeTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newOrderFixture(balance float64) (*OrderService, *fakeAccounts, *fakeWallets, *fakeOrders, *fakeActivity) {
	accounts := &fakeAccounts{account: &domain.Account{ID: 1, Email: "u@example.com"}}
	wallets := &fakeWallets{wallet: &domain.Wallet{ID: 1, UserID: 1, Balance: balance}}
	orders := &fakeOrders{}
	activity := &fakeActivity{}
	svc := NewOrderService(accounts, wallets, orders, NewActivityLogger(activity), fakeTx{}, false)
	return svc, accounts, wallets, orders, activity
}

func TestPlaceOrder_Success(t *testing.T) {
	svc, accounts, wallets, orders, activity := newOrderFixture(20)

	orderID, err := svc.PlaceOrder(context.Background(), 1, "telegram", "IN", 10, RequestMeta{IP: "10.0.0.1", UserAgent: "test"})
	require.NoError(t, err)
	require.NotEmpty(t, orderID)

	// Balance debited by exactly the tier price
	assert.Equal(t, float64(12), wallets.balance())

	// Exactly one order with the derived price, pending, expiry in the future
	require.Len(t, orders.created, 1)
	order := orders.created[0]
	assert.Equal(t, orderID, order.PublicID)
	assert.Equal(t, float64(8), order.Price)
	assert.Equal(t, 10, order.Duration)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Greater(t, order.ExpiresAt, time.Now().UnixMilli())

	// Accumulators bumped once
	assert.Equal(t, float64(8), accounts.account.TotalSpent)
	assert.Equal(t, 1, accounts.account.TotalOTPs)
	assert.Equal(t, 1, accounts.account.NumbersUsed)

	// One audit record with the request metadata
	require.Len(t, activity.records, 1)
	assert.Equal(t, domain.ActivityOrder, activity.records[0].Action)
	assert.Equal(t, "10.0.0.1", activity.records[0].IP)
}

func TestPlaceOrder_InsufficientBalance(t *testing.T) {
	svc, accounts, wallets, orders, activity := newOrderFixture(5)

	_, err := svc.PlaceOrder(context.Background(), 1, "telegram", "IN", 30, RequestMeta{})
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	// State is untouched: balance, orders, accumulators, audit trail
	assert.Equal(t, float64(5), wallets.balance())
	assert.Empty(t, orders.created)
	assert.Zero(t, accounts.account.TotalSpent)
	assert.Zero(t, accounts.account.TotalOTPs)
	assert.Empty(t, activity.records)
}

func TestPlaceOrder_UnknownDurationRejected(t *testing.T) {
	svc, _, wallets, orders, _ := newOrderFixture(100)

	_, err := svc.PlaceOrder(context.Background(), 1, "telegram", "IN", 999, RequestMeta{})
	assert.ErrorIs(t, err, ErrInvalidDuration)

	// Rejected before any store access
	assert.Zero(t, wallets.getCalls)
	assert.Empty(t, orders.created)
}

func TestPlaceOrder_LegacyPricingFallsBackToBaseTier(t *testing.T) {
	accounts := &fakeAccounts{account: &domain.Account{ID: 1}}
	wallets := &fakeWallets{wallet: &domain.Wallet{ID: 1, UserID: 1, Balance: 20}}
	orders := &fakeOrders{}
	svc := NewOrderService(accounts, wallets, orders, NewActivityLogger(&fakeActivity{}), fakeTx{}, true)

	_, err := svc.PlaceOrder(context.Background(), 1, "telegram", "IN", 999, RequestMeta{})
	require.NoError(t, err)

	// Unknown duration sold at the cheapest tier
	assert.Equal(t, float64(15), wallets.balance())
	require.Len(t, orders.created, 1)
	assert.Equal(t, float64(5), orders.created[0].Price)
}

func TestPlaceOrder_WalletMissing(t *testing.T) {
	svc, _, _, orders, _ := newOrderFixture(20)

	_, err := svc.PlaceOrder(context.Background(), 42, "telegram", "IN", 10, RequestMeta{})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, orders.created)
}

func TestPlaceOrder_StoreFailureIsRetryable(t *testing.T) {
	svc, _, wallets, _, _ := newOrderFixture(20)
	wallets.debitErr = errors.New("connection reset")

	_, err := svc.PlaceOrder(context.Background(), 1, "telegram", "IN", 10, RequestMeta{})
	require.Error(t, err)
	assert.True(t, IsRetryable(err))
	assert.NotErrorIs(t, err, ErrInsufficientBalance)
}

func TestPlaceOrder_AuditFailureDoesNotFailOrder(t *testing.T) {
	svc, _, wallets, orders, activity := newOrderFixture(20)
	activity.appendErr = errors.New("log store down")

	orderID, err := svc.PlaceOrder(context.Background(), 1, "telegram", "IN", 10, RequestMeta{})
	require.NoError(t, err)
	assert.NotEmpty(t, orderID)
	assert.Equal(t, float64(12), wallets.balance())
	require.Len(t, orders.created, 1)
}

func TestPlaceOrder_ConcurrentOrdersNeverOverspend(t *testing.T) {
	// Two orders racing on a balance that covers each individually but not
	// both: exactly one wins, the loser observes the updated balance.
	svc, accounts, wallets, orders, _ := newOrderFixture(20)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.PlaceOrder(context.Background(), 1, "telegram", "IN", 30, RequestMeta{})
		}(i)
	}
	wg.Wait()

	var successes, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrInsufficientBalance):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, insufficient)

	// Balance never driven negative; effects applied exactly once
	assert.Equal(t, float64(5), wallets.balance())
	assert.Len(t, orders.created, 1)
	assert.Equal(t, float64(15), accounts.account.TotalSpent)
	assert.Equal(t, 1, accounts.account.TotalOTPs)
}
