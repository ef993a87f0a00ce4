// Package checkout turns the current cart session into an order: submit
// the order (with the applied coupon code, if any), then clear the cart
// and coupon state so the caller can navigate to the order list.
package checkout

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/seyman123/dreamshops-client/internal/domain"
	"github.com/seyman123/dreamshops-client/internal/notify"
	"github.com/seyman123/dreamshops-client/internal/remote"
)

var ErrEmptyCart = errors.New("checkout: cart is empty, nothing to checkout")

// RemoteOrders is the slice of the remote client the orchestrator needs.
type RemoteOrders interface {
	PlaceOrder(ctx context.Context, req remote.PlaceOrderRequest) (*domain.Order, error)
}

// CartClearer empties the cart session after a successful order.
type CartClearer interface {
	Clear(ctx context.Context) error
}

// CouponRemover drops the applied coupon after a successful order.
type CouponRemover interface {
	Remove()
}

type Service struct {
	orders   RemoteOrders
	cart     CartClearer
	coupons  CouponRemover
	notifier notify.Notifier
}

func NewService(orders RemoteOrders, cart CartClearer, coupons CouponRemover, notifier notify.Notifier) *Service {
	return &Service{orders: orders, cart: cart, coupons: coupons, notifier: notifier}
}

// Checkout submits the order. An empty cart is rejected before any
// network call. Failures map per status (400 bad order data, 404 items
// out of stock, otherwise a generic retry message) and are never retried
// automatically.
func (s *Service) Checkout(ctx context.Context, lines []domain.CartLine, applied *domain.AppliedCoupon, user domain.User) (*domain.Order, error) {
	if len(lines) == 0 {
		s.notifier.Error("Your cart is empty.")
		return nil, ErrEmptyCart
	}

	req := remote.PlaceOrderRequest{
		UserID:         user.ID,
		IdempotencyKey: uuid.NewString(),
	}
	if applied != nil {
		req.CouponCode = applied.Code
	}

	order, err := s.orders.PlaceOrder(ctx, req)
	if err != nil {
		s.notifier.Error(failureMessage(err))
		return nil, err
	}

	if err := s.cart.Clear(ctx); err != nil {
		// The order went through; a failed local clear is logged but
		// must not fail the checkout.
		slog.Warn("cart clear after checkout failed", "error", err)
	}
	s.coupons.Remove()

	s.notifier.Success("Your order has been placed.")
	return order, nil
}

func failureMessage(err error) string {
	switch remote.StatusOf(err) {
	case http.StatusBadRequest:
		return "Your order could not be placed: the order data was rejected."
	case http.StatusNotFound:
		return "Some items in your cart are out of stock."
	default:
		return "Your order could not be placed. Please try again."
	}
}
