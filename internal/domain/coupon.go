package domain

// AppliedCoupon is a server-validated discount code associated with the
// active cart session. At most one exists per session, and only while the
// most recent validation against the subtotal succeeded. DiscountAmount
// is authoritative from the server and never computed client-side.
type AppliedCoupon struct {
	Code           string  `json:"code"`
	DiscountAmount float64 `json:"discountAmount"`
}

// Coupon is the back-office view of a discount code.
type Coupon struct {
	ID              int64   `json:"id"`
	Code            string  `json:"code"`
	DiscountAmount  float64 `json:"discountAmount,omitempty"`
	DiscountPercent float64 `json:"discountPercent,omitempty"`
	MinOrderAmount  float64 `json:"minOrderAmount,omitempty"`
	ExpiresAt       string  `json:"expiresAt,omitempty"`
}
