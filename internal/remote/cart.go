package remote

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/seyman123/dreamshops-client/internal/domain"
)

// FetchCart returns the authoritative cart for the user.
func (c *Client) FetchCart(ctx context.Context, userID int64) (*domain.Cart, error) {
	var raw rawCart
	if err := c.get(ctx, fmt.Sprintf("/carts/user/%d", userID), nil, &raw); err != nil {
		return nil, err
	}
	return normalizeCart(raw), nil
}

// UpdateItemQuantity sets the quantity of a line, keyed by cart id and
// product id as the API requires.
func (c *Client) UpdateItemQuantity(ctx context.Context, cartID, productID int64, quantity int) error {
	query := url.Values{"quantity": {strconv.Itoa(quantity)}}
	return c.put(ctx, fmt.Sprintf("/carts/%d/items/%d", cartID, productID), query, nil, nil)
}

// RemoveItem deletes a line, keyed by cart id and product id.
func (c *Client) RemoveItem(ctx context.Context, cartID, productID int64) error {
	return c.delete(ctx, fmt.Sprintf("/carts/%d/items/%d", cartID, productID))
}

// ClearCart empties a cart by its id.
func (c *Client) ClearCart(ctx context.Context, cartID int64) error {
	return c.delete(ctx, fmt.Sprintf("/carts/%d/clear", cartID))
}

// ClearUserCart empties whatever cart the user currently has. Fallback
// for when no cart id could be resolved.
func (c *Client) ClearUserCart(ctx context.Context, userID int64) error {
	return c.delete(ctx, fmt.Sprintf("/carts/user/%d/clear", userID))
}

// CartItemCount returns the badge count for the user's cart.
func (c *Client) CartItemCount(ctx context.Context, userID int64) (int, error) {
	var payload struct {
		Count     int `json:"count"`
		ItemCount int `json:"itemCount"`
	}
	if err := c.get(ctx, fmt.Sprintf("/carts/user/%d/count", userID), nil, &payload); err != nil {
		return 0, err
	}
	if payload.Count > 0 {
		return payload.Count, nil
	}
	return payload.ItemCount, nil
}
