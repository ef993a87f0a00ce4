package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/seyman123/dreamshops-client/internal/domain"
)

// ProductQuery selects one of the four listing endpoints depending on
// which of {Term, Category} are set, always requesting server-side
// pagination with an explicit "field,direction" sort.
type ProductQuery struct {
	Term     string
	Category string
	Page     int
	Size     int
	Sort     string
}

// ProductPage is a normalized product listing. Page is nil when the
// server returned an unpaginated array, in which case Products holds the
// full result set.
type ProductPage struct {
	Products []domain.Product
	Page     *domain.PageInfo
}

// ListProducts fetches one page of products for the query.
func (c *Client) ListProducts(ctx context.Context, q ProductQuery) (*ProductPage, error) {
	values := url.Values{
		"page": {strconv.Itoa(q.Page)},
		"size": {strconv.Itoa(q.Size)},
	}
	if q.Sort != "" {
		values.Set("sort", q.Sort)
	}

	var path string
	switch {
	case q.Term != "" && q.Category != "":
		path = "/products/search/category"
		values.Set("q", q.Term)
		values.Set("category", q.Category)
	case q.Term != "":
		path = "/products/search"
		values.Set("q", q.Term)
	case q.Category != "":
		path = "/products/category/" + url.PathEscape(q.Category)
	default:
		path = "/products"
	}

	var raw json.RawMessage
	if err := c.get(ctx, path, values, &raw); err != nil {
		return nil, err
	}
	page, err := normalizeProductList(raw)
	if err != nil {
		return nil, fmt.Errorf("remote: decode product list: %w", err)
	}
	return page, nil
}

// GetProduct fetches a single catalog entry.
func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var raw rawProduct
	if err := c.get(ctx, fmt.Sprintf("/products/%d", id), nil, &raw); err != nil {
		return nil, err
	}
	p := normalizeProduct(raw)
	return &p, nil
}
