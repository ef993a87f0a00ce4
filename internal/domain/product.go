package domain

// Product is a catalog entry as served by the products API.
type Product struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	Brand              string   `json:"brand"`
	Description        string   `json:"description,omitempty"`
	Category           string   `json:"category,omitempty"`
	Price              float64  `json:"price"`
	EffectivePrice     *float64 `json:"effectivePrice,omitempty"`
	DiscountPercentage float64  `json:"discountPercentage,omitempty"`
	FlashSale          bool     `json:"flashSale,omitempty"`
	Inventory          int      `json:"inventory,omitempty"`
	Images             []string `json:"images,omitempty"`
}

// CurrentPrice is the price actually charged: the discounted effective
// price when one is set, the list price otherwise.
func (p Product) CurrentPrice() float64 {
	if p.EffectivePrice != nil {
		return *p.EffectivePrice
	}
	return p.Price
}

// PageInfo is server-side pagination metadata. Pages are 0-based.
type PageInfo struct {
	Number        int   `json:"number"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
	Size          int   `json:"size"`
}
