package remote

import (
	"context"
	"fmt"

	"github.com/seyman123/dreamshops-client/internal/domain"
)

// Back-office endpoints. The API enforces the admin role server-side;
// the client just forwards the same bearer token.

func (c *Client) CreateProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	var created domain.Product
	if err := c.post(ctx, "/admin/products", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	var updated domain.Product
	if err := c.put(ctx, fmt.Sprintf("/admin/products/%d", p.ID), nil, p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/admin/products/%d", id))
}

func (c *Client) CreateCoupon(ctx context.Context, coupon domain.Coupon) (*domain.Coupon, error) {
	var created domain.Coupon
	if err := c.post(ctx, "/admin/coupons", coupon, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) DeleteCoupon(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/admin/coupons/%d", id))
}
