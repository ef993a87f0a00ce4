package checkout

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seyman123/dreamshops-client/internal/domain"
	"github.com/seyman123/dreamshops-client/internal/notify"
	"github.com/seyman123/dreamshops-client/internal/remote"
)

type mockOrders struct {
	order *domain.Order
	err   error
	calls int
	last  remote.PlaceOrderRequest
}

func (m *mockOrders) PlaceOrder(_ context.Context, req remote.PlaceOrderRequest) (*domain.Order, error) {
	m.calls++
	m.last = req
	if m.err != nil {
		return nil, m.err
	}
	return m.order, nil
}

type mockClearer struct {
	calls int
	err   error
}

func (m *mockClearer) Clear(context.Context) error {
	m.calls++
	return m.err
}

type mockCouponRemover struct {
	calls int
}

func (m *mockCouponRemover) Remove() { m.calls++ }

func lines() []domain.CartLine {
	return []domain.CartLine{
		{ItemID: 1, Quantity: 2, UnitPrice: 25, Product: &domain.ProductSnapshot{ID: 100}},
	}
}

func TestCheckout_Success(t *testing.T) {
	orders := &mockOrders{order: &domain.Order{ID: 9, UserID: 1, Status: "PENDING"}}
	clearer := &mockClearer{}
	coupons := &mockCouponRemover{}
	svc := NewService(orders, clearer, coupons, notify.NewRecorder())

	applied := &domain.AppliedCoupon{Code: "SAVE10", DiscountAmount: 50}
	order, err := svc.Checkout(context.Background(), lines(), applied, domain.User{ID: 1})

	require.NoError(t, err)
	assert.Equal(t, int64(9), order.ID)
	assert.Equal(t, int64(1), orders.last.UserID)
	assert.Equal(t, "SAVE10", orders.last.CouponCode)
	assert.NotEmpty(t, orders.last.IdempotencyKey)
	assert.Equal(t, 1, clearer.calls)
	assert.Equal(t, 1, coupons.calls)
}

func TestCheckout_EmptyCartNeverCallsServer(t *testing.T) {
	orders := &mockOrders{}
	recorder := notify.NewRecorder()
	svc := NewService(orders, &mockClearer{}, &mockCouponRemover{}, recorder)

	_, err := svc.Checkout(context.Background(), nil, nil, domain.User{ID: 1})

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, orders.calls)
	assert.NotEmpty(t, recorder.Errors())
}

func TestCheckout_WithoutCouponOmitsCode(t *testing.T) {
	orders := &mockOrders{order: &domain.Order{ID: 9}}
	svc := NewService(orders, &mockClearer{}, &mockCouponRemover{}, notify.NewRecorder())

	_, err := svc.Checkout(context.Background(), lines(), nil, domain.User{ID: 1})

	require.NoError(t, err)
	assert.Empty(t, orders.last.CouponCode)
}

func TestCheckout_FailureLeavesCartAndCoupon(t *testing.T) {
	orders := &mockOrders{err: &remote.APIError{Status: http.StatusNotFound}}
	clearer := &mockClearer{}
	coupons := &mockCouponRemover{}
	recorder := notify.NewRecorder()
	svc := NewService(orders, clearer, coupons, recorder)

	_, err := svc.Checkout(context.Background(), lines(), nil, domain.User{ID: 1})

	require.Error(t, err)
	assert.Zero(t, clearer.calls)
	assert.Zero(t, coupons.calls)
	require.Len(t, recorder.Errors(), 1)
	assert.Contains(t, recorder.Errors()[0], "out of stock")
}

func TestCheckout_StatusSpecificMessages(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"bad order data", &remote.APIError{Status: http.StatusBadRequest}, "rejected"},
		{"out of stock", &remote.APIError{Status: http.StatusNotFound}, "out of stock"},
		{"server error", &remote.APIError{Status: http.StatusInternalServerError}, "try again"},
		{"network failure", errors.New("connection refused"), "try again"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder := notify.NewRecorder()
			svc := NewService(&mockOrders{err: tc.err}, &mockClearer{}, &mockCouponRemover{}, recorder)

			_, err := svc.Checkout(context.Background(), lines(), nil, domain.User{ID: 1})

			require.Error(t, err)
			require.Len(t, recorder.Errors(), 1)
			assert.Contains(t, recorder.Errors()[0], tc.wantMsg)
		})
	}
}

func TestCheckout_SucceedsEvenIfLocalClearFails(t *testing.T) {
	orders := &mockOrders{order: &domain.Order{ID: 9}}
	clearer := &mockClearer{err: errors.New("boom")}
	svc := NewService(orders, clearer, &mockCouponRemover{}, notify.NewRecorder())

	order, err := svc.Checkout(context.Background(), lines(), nil, domain.User{ID: 1})

	require.NoError(t, err)
	assert.NotNil(t, order)
}

func TestCheckout_FreshIdempotencyKeyPerCall(t *testing.T) {
	orders := &mockOrders{order: &domain.Order{ID: 9}}
	svc := NewService(orders, &mockClearer{}, &mockCouponRemover{}, notify.NewRecorder())
	ctx := context.Background()

	_, err := svc.Checkout(ctx, lines(), nil, domain.User{ID: 1})
	require.NoError(t, err)
	first := orders.last.IdempotencyKey

	_, err = svc.Checkout(ctx, lines(), nil, domain.User{ID: 1})
	require.NoError(t, err)

	assert.NotEqual(t, first, orders.last.IdempotencyKey)
}
