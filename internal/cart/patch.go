package cart

import "github.com/seyman123/dreamshops-client/internal/domain"

// Pure state transitions applied to the local line collection after the
// server has confirmed a mutation. They never mutate their input.

// ApplyQuantity returns lines with the line matching itemID patched to
// the new quantity and a recomputed total price. Unknown itemIDs leave
// the result identical to the input.
func ApplyQuantity(lines []domain.CartLine, itemID int64, quantity int) []domain.CartLine {
	out := make([]domain.CartLine, len(lines))
	copy(out, lines)
	for i := range out {
		if out[i].ItemID == itemID {
			out[i].Quantity = quantity
			out[i].TotalPrice = out[i].UnitValue() * float64(quantity)
			break
		}
	}
	return out
}

// RemoveLine returns lines without the line matching itemID.
func RemoveLine(lines []domain.CartLine, itemID int64) []domain.CartLine {
	out := make([]domain.CartLine, 0, len(lines))
	for _, line := range lines {
		if line.ItemID != itemID {
			out = append(out, line)
		}
	}
	return out
}
