package remote

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/seyman123/dreamshops-client/internal/domain"
)

// The API is inconsistent about response shapes: most endpoints wrap the
// payload in a {message, data} envelope, carts name their line collection
// either "items" or "cartItems", and identifiers arrive as numbers or as
// quoted strings depending on the endpoint. All of that ambiguity is
// absorbed here so the rest of the code only ever sees canonical domain
// types.

// unwrapEnvelope returns the "data" member when the body is an
// {message, data} envelope, the body unchanged otherwise.
func unwrapEnvelope(raw []byte) []byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return raw
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil || len(env.Data) == 0 {
		return raw
	}
	return env.Data
}

// flexID decodes a JSON number or a quoted numeric string into an int64.
// Anything else decodes to 0, which callers treat as missing.
type flexID int64

func (f *flexID) UnmarshalJSON(data []byte) error {
	s := string(bytes.TrimSpace(data))
	if s == "null" {
		*f = 0
		return nil
	}
	s = unquote(s)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexID(n)
	return nil
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

type rawProduct struct {
	ID                 flexID   `json:"id"`
	Name               string   `json:"name"`
	Brand              string   `json:"brand"`
	Category           string   `json:"category"`
	Price              *float64 `json:"price"`
	EffectivePrice     *float64 `json:"effectivePrice"`
	DiscountPercentage float64  `json:"discountPercentage"`
	FlashSale          bool     `json:"flashSale"`
	Images             []string `json:"images"`
}

type rawCartLine struct {
	ID         flexID      `json:"id"`
	ItemID     flexID      `json:"itemId"`
	Product    *rawProduct `json:"product"`
	Quantity   int         `json:"quantity"`
	UnitPrice  float64     `json:"unitPrice"`
	TotalPrice float64     `json:"totalPrice"`
}

type rawCart struct {
	ID          flexID        `json:"id"`
	CartID      flexID        `json:"cartId"`
	UserID      flexID        `json:"userId"`
	Items       []rawCartLine `json:"items"`
	CartItems   []rawCartLine `json:"cartItems"`
	TotalAmount float64       `json:"totalAmount"`
}

func normalizeCart(raw rawCart) *domain.Cart {
	id := int64(raw.ID)
	if id == 0 {
		id = int64(raw.CartID)
	}
	lines := raw.Items
	if len(lines) == 0 {
		lines = raw.CartItems
	}
	cart := &domain.Cart{
		ID:          id,
		UserID:      int64(raw.UserID),
		TotalAmount: raw.TotalAmount,
		Items:       make([]domain.CartLine, 0, len(lines)),
	}
	for _, l := range lines {
		cart.Items = append(cart.Items, normalizeCartLine(l))
	}
	return cart
}

func normalizeCartLine(raw rawCartLine) domain.CartLine {
	itemID := int64(raw.ItemID)
	if itemID == 0 {
		itemID = int64(raw.ID)
	}
	line := domain.CartLine{
		ItemID:     itemID,
		Quantity:   raw.Quantity,
		UnitPrice:  raw.UnitPrice,
		TotalPrice: raw.TotalPrice,
	}
	if raw.Product != nil {
		line.Product = &domain.ProductSnapshot{
			ID:                 int64(raw.Product.ID),
			Name:               raw.Product.Name,
			Brand:              raw.Product.Brand,
			Category:           raw.Product.Category,
			Price:              raw.Product.Price,
			EffectivePrice:     raw.Product.EffectivePrice,
			DiscountPercentage: raw.Product.DiscountPercentage,
			FlashSale:          raw.Product.FlashSale,
			Images:             raw.Product.Images,
		}
	}
	if line.TotalPrice == 0 && line.Quantity > 0 {
		line.TotalPrice = line.UnitValue() * float64(line.Quantity)
	}
	return line
}

func normalizeProduct(raw rawProduct) domain.Product {
	p := domain.Product{
		ID:                 int64(raw.ID),
		Name:               raw.Name,
		Brand:              raw.Brand,
		Category:           raw.Category,
		EffectivePrice:     raw.EffectivePrice,
		DiscountPercentage: raw.DiscountPercentage,
		FlashSale:          raw.FlashSale,
		Images:             raw.Images,
	}
	if raw.Price != nil {
		p.Price = *raw.Price
	}
	return p
}

// normalizeProductList accepts either a paginated object ({products,
// page metadata}) or a bare product array. Paginated responses carry a
// non-nil PageInfo; bare arrays leave it nil so the caller knows to
// paginate client-side.
func normalizeProductList(raw []byte) (*ProductPage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []rawProduct
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		page := &ProductPage{Products: make([]domain.Product, 0, len(items))}
		for _, it := range items {
			page.Products = append(page.Products, normalizeProduct(it))
		}
		return page, nil
	}

	var payload struct {
		Products      []rawProduct `json:"products"`
		Content       []rawProduct `json:"content"`
		Number        *int         `json:"number"`
		CurrentPage   *int         `json:"currentPage"`
		TotalPages    int          `json:"totalPages"`
		TotalElements int64        `json:"totalElements"`
		Size          int          `json:"size"`
	}
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return nil, err
	}
	items := payload.Products
	if len(items) == 0 && payload.Content != nil {
		items = payload.Content
	}
	page := &ProductPage{Products: make([]domain.Product, 0, len(items))}
	for _, it := range items {
		page.Products = append(page.Products, normalizeProduct(it))
	}

	// Page metadata is what distinguishes a server-paginated response
	// from a bare listing that happens to be wrapped in an object.
	number := payload.Number
	if number == nil {
		number = payload.CurrentPage
	}
	if number != nil || payload.TotalPages > 0 {
		n := 0
		if number != nil {
			n = *number
		}
		page.Page = &domain.PageInfo{
			Number:        n,
			TotalPages:    payload.TotalPages,
			TotalElements: payload.TotalElements,
			Size:          payload.Size,
		}
	}
	return page, nil
}
