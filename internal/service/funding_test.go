package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"otp_market/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFunding struct {
	mu        sync.Mutex
	created   []*domain.FundingRequest
	createErr error
}

func (f *fakeFunding) Create(ctx context.Context, req *domain.FundingRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, req)
	return nil
}

func newFundingFixture() (*FundingService, *fakeFunding, *fakeActivity) {
	funding := &fakeFunding{}
	activity := &fakeActivity{}
	svc := NewFundingService(funding, NewActivityLogger(activity), 100)
	return svc, funding, activity
}

func TestRequestFunding_Success(t *testing.T) {
	svc, funding, activity := newFundingFixture()

	requestID, err := svc.RequestFunding(context.Background(), 1, 500, domain.FundingMethodUPI, "UTR123456", RequestMeta{IP: "10.0.0.1"})
	require.NoError(t, err)
	require.NotEmpty(t, requestID)

	require.Len(t, funding.created, 1)
	req := funding.created[0]
	assert.Equal(t, requestID, req.PublicID)
	assert.Equal(t, uint(1), req.UserID)
	assert.Equal(t, float64(500), req.Amount)
	assert.Equal(t, domain.FundingMethodUPI, req.Method)
	assert.Equal(t, "UTR123456", req.Reference)
	assert.Equal(t, domain.FundingStatusPending, req.Status)

	// One audit record for the queued claim
	require.Len(t, activity.records, 1)
	assert.Equal(t, domain.ActivityPayment, activity.records[0].Action)
}

func TestRequestFunding_BelowMinimum(t *testing.T) {
	svc, funding, activity := newFundingFixture()

	_, err := svc.RequestFunding(context.Background(), 1, 99, domain.FundingMethodBank, "", RequestMeta{})
	assert.ErrorIs(t, err, ErrBelowMinimum)

	// Nothing written
	assert.Empty(t, funding.created)
	assert.Empty(t, activity.records)
}

func TestRequestFunding_UnknownMethod(t *testing.T) {
	svc, funding, _ := newFundingFixture()

	_, err := svc.RequestFunding(context.Background(), 1, 500, "cheque", "", RequestMeta{})
	assert.ErrorIs(t, err, ErrInvalidMethod)
	assert.Empty(t, funding.created)
}

func TestRequestFunding_StoreFailureIsRetryable(t *testing.T) {
	svc, funding, _ := newFundingFixture()
	funding.createErr = errors.New("connection reset")

	_, err := svc.RequestFunding(context.Background(), 1, 500, domain.FundingMethodCrypto, "", RequestMeta{})
	require.Error(t, err)
	assert.True(t, IsRetryable(err))
}
