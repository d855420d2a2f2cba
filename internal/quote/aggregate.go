package quote

import (
	"math"

	"github.com/mnzmnz10/yeter-sub001/internal/catalog"
	"github.com/mnzmnz10/yeter-sub001/internal/selection"
)

// LinePrice picks the base price a line contributes under the given mode.
// Discounted mode falls back to the list price per line when the item has no
// discounted price. Nil means the line cannot be priced and contributes
// nothing to money totals.
func LinePrice(item catalog.Item, mode PriceMode) *float64 {
	if mode == PriceModeDiscounted && item.DiscountedPriceBase != nil {
		return item.DiscountedPriceBase
	}
	return item.ListPriceBase
}

// Aggregate computes the totals breakdown for a selection. It is pure:
// identical inputs always produce identical totals, and it holds no state.
// Money outputs are coerced to 0 when an intermediate is NaN or infinite, so
// a malformed input degrades a figure to zero instead of rendering as NaN.
// Lines without a priceable amount still count toward quantity and product
// count.
func Aggregate(entries []selection.Entry, discountPercent, laborCost float64, mode PriceMode) Totals {
	var t Totals
	for _, e := range entries {
		t.TotalQuantity += e.Quantity
		t.ProductCount++
		price := LinePrice(e.Item, mode)
		if price == nil {
			continue
		}
		t.TotalListPrice += sanitize(*price * float64(e.Quantity))
	}
	t.TotalListPrice = sanitize(t.TotalListPrice)
	t.DiscountAmount = sanitize(t.TotalListPrice * sanitize(discountPercent) / 100)
	t.LaborCost = sanitize(laborCost)
	t.TotalNetPrice = sanitize(t.TotalListPrice - t.DiscountAmount + t.LaborCost)
	return t
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
