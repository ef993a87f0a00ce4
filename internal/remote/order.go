package remote

import (
	"context"
	"fmt"

	"github.com/seyman123/dreamshops-client/internal/domain"
)

// PlaceOrderRequest submits the user's current cart as an order. The
// coupon code is optional; the idempotency key lets the server collapse
// duplicate submissions.
type PlaceOrderRequest struct {
	UserID         int64  `json:"userId"`
	CouponCode     string `json:"couponCode,omitempty"`
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
}

func (c *Client) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*domain.Order, error) {
	var order domain.Order
	if err := c.post(ctx, "/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns the user's order history, newest first.
func (c *Client) ListOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.get(ctx, fmt.Sprintf("/orders/user/%d", userID), nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
