package remote

import "context"

// CouponValidation is the server's verdict on a coupon for a given order
// amount. DiscountAmount is authoritative; the client never computes it.
type CouponValidation struct {
	Valid          bool    `json:"valid"`
	DiscountAmount float64 `json:"discountAmount"`
}

// ValidateCoupon asks the server whether code applies to an order of the
// given amount. Business-rule rejections surface as *APIError (404
// unknown, 400 conditions not met, 410 expired).
func (c *Client) ValidateCoupon(ctx context.Context, code string, orderAmount float64) (*CouponValidation, error) {
	req := struct {
		Code        string  `json:"code"`
		OrderAmount float64 `json:"orderAmount"`
	}{Code: code, OrderAmount: orderAmount}

	var out CouponValidation
	if err := c.post(ctx, "/coupons/validate", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
