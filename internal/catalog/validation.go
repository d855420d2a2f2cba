package catalog

import (
	"fmt"
	"math"
	"strings"

	"github.com/mnzmnz10/yeter-sub001/internal/fx"
)

func validateImport(items []Item) error {
	for i, it := range items {
		if strings.TrimSpace(it.Name) == "" {
			return fmt.Errorf("catalog: row %d: name is required", i+1)
		}
		if !fx.IsKnownCurrency(it.Currency) {
			return fmt.Errorf("catalog: row %d: unsupported currency %q", i+1, it.Currency)
		}
		if it.ListPrice < 0 || math.IsNaN(it.ListPrice) || math.IsInf(it.ListPrice, 0) {
			return fmt.Errorf("catalog: row %d: invalid list price", i+1)
		}
		if it.DiscountedPrice != nil {
			d := *it.DiscountedPrice
			if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
				return fmt.Errorf("catalog: row %d: invalid discounted price", i+1)
			}
		}
	}
	return nil
}
