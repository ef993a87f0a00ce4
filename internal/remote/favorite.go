package remote

import (
	"context"
	"fmt"

	"github.com/seyman123/dreamshops-client/internal/domain"
)

func (c *Client) ListFavorites(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	var favorites []domain.Favorite
	if err := c.get(ctx, fmt.Sprintf("/favorites/user/%d", userID), nil, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

func (c *Client) AddFavorite(ctx context.Context, userID, productID int64) error {
	req := struct {
		UserID    int64 `json:"userId"`
		ProductID int64 `json:"productId"`
	}{UserID: userID, ProductID: productID}
	return c.post(ctx, "/favorites", req, nil)
}

func (c *Client) RemoveFavorite(ctx context.Context, userID, productID int64) error {
	return c.delete(ctx, fmt.Sprintf("/favorites/user/%d/product/%d", userID, productID))
}
