package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/seyman123/dreamshops-client/internal/domain"
)

// SortKey is a UI sort selection.
type SortKey string

const (
	SortName      SortKey = "name"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortBrand     SortKey = "brand"
	SortDiscount  SortKey = "discount"
	SortFlashSale SortKey = "flash-sale"
)

// RequestParam maps the UI sort key to the API's "field,direction" sort
// parameter.
func (k SortKey) RequestParam() string {
	switch k {
	case SortPriceAsc:
		return "price,asc"
	case SortPriceDesc:
		return "price,desc"
	case SortBrand:
		return "brand,asc"
	case SortDiscount:
		return "discountPercentage,desc"
	case SortFlashSale:
		return "flashSale,desc"
	default:
		return "name,asc"
	}
}

// SortProducts orders products by the given key, in place, using a
// stable sort so repeated application is idempotent. Only the client
// fallback path uses this; server-paginated responses arrive pre-sorted.
//
// Name and brand comparisons are Turkish-collated and case-insensitive;
// name is additionally numeric-aware so "Ürün 2" sorts before "Ürün 10".
func SortProducts(products []domain.Product, key SortKey) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CurrentPrice() < products[j].CurrentPrice()
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CurrentPrice() > products[j].CurrentPrice()
		})
	case SortBrand:
		c := collate.New(language.Turkish, collate.IgnoreCase)
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Brand, products[j].Brand) < 0
		})
	case SortDiscount:
		sort.SliceStable(products, func(i, j int) bool {
			return lessByDiscount(products[i], products[j])
		})
	case SortFlashSale:
		sort.SliceStable(products, func(i, j int) bool {
			if products[i].FlashSale != products[j].FlashSale {
				return products[i].FlashSale
			}
			return products[i].DiscountPercentage > products[j].DiscountPercentage
		})
	default: // SortName
		c := collate.New(language.Turkish, collate.IgnoreCase, collate.Numeric)
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Name, products[j].Name) < 0
		})
	}
}

// Discounted products come strictly before undiscounted ones; within the
// discounted group, higher percentages first.
func lessByDiscount(a, b domain.Product) bool {
	aDiscounted := a.DiscountPercentage > 0
	bDiscounted := b.DiscountPercentage > 0
	if aDiscounted != bDiscounted {
		return aDiscounted
	}
	return a.DiscountPercentage > b.DiscountPercentage
}
