package domain

// ProductSnapshot is the denormalized copy of product data embedded in a
// cart line at fetch time. It may go stale relative to the catalog.
type ProductSnapshot struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	Brand              string   `json:"brand,omitempty"`
	Category           string   `json:"category,omitempty"`
	Price              *float64 `json:"price,omitempty"`
	EffectivePrice     *float64 `json:"effectivePrice,omitempty"`
	DiscountPercentage float64  `json:"discountPercentage,omitempty"`
	FlashSale          bool     `json:"flashSale,omitempty"`
	Images             []string `json:"images,omitempty"`
}

// CartLine is one product-quantity pairing within a cart. ItemID is
// assigned by the server and immutable once created.
type CartLine struct {
	ItemID     int64            `json:"itemId"`
	Product    *ProductSnapshot `json:"product,omitempty"`
	Quantity   int              `json:"quantity"`
	UnitPrice  float64          `json:"unitPrice"`
	TotalPrice float64          `json:"totalPrice"`
}

// UnitValue is the price charged per unit of this line, preferring the
// discounted effective price, then the snapshot list price, then the
// line's own unit price.
func (l CartLine) UnitValue() float64 {
	if l.Product != nil {
		if l.Product.EffectivePrice != nil {
			return *l.Product.EffectivePrice
		}
		if l.Product.Price != nil {
			return *l.Product.Price
		}
	}
	return l.UnitPrice
}

// Cart is the authoritative cart as returned by the server.
type Cart struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"userId"`
	Items       []CartLine `json:"items"`
	TotalAmount float64    `json:"totalAmount"`
}

// CartSnapshot is the derived view the UI renders: never mutated in
// place, recomputed whenever lines or coupon state change.
type CartSnapshot struct {
	Lines          []CartLine `json:"lines"`
	Subtotal       float64    `json:"subtotal"`
	CouponDiscount float64    `json:"couponDiscount"`
	Total          float64    `json:"total"`
}
