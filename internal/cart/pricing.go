package cart

import "github.com/seyman123/dreamshops-client/internal/domain"

// Subtotal is the pure reduction over cart lines. The per-unit price
// prefers effectivePrice, then the snapshot price, then the line's own
// unit price (see domain.CartLine.UnitValue).
func Subtotal(lines []domain.CartLine) float64 {
	var sum float64
	for _, line := range lines {
		sum += line.UnitValue() * float64(line.Quantity)
	}
	return sum
}

// Total applies the coupon discount to the subtotal, clamped at zero so
// an oversized discount never produces a negative total.
func Total(subtotal, couponDiscount float64) float64 {
	total := subtotal - couponDiscount
	if total < 0 {
		return 0
	}
	return total
}
