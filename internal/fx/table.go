package fx

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// KnownCurrencies lists the currency codes supplier lists may carry.
var KnownCurrencies = []string{"TRY", "USD", "EUR", "GBP"}

// IsKnownCurrency reports whether code belongs to the supported set.
func IsKnownCurrency(code string) bool {
	code = Normalize3(code)
	for _, c := range KnownCurrencies {
		if c == code {
			return true
		}
	}
	return false
}

// Normalize3 canonicalises a currency code for lookups.
func Normalize3(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Table is an immutable rate table: units of base currency per unit of each
// listed currency. The base currency is always present and maps to exactly 1.
type Table struct {
	base      string
	rates     map[string]float64
	fetchedAt time.Time
}

// NewTable builds a validated table. Rates must be positive and finite; the
// base entry is forced to 1 regardless of the input.
func NewTable(base string, rates map[string]float64, fetchedAt time.Time) (Table, error) {
	base = Normalize3(base)
	if base == "" {
		return Table{}, fmt.Errorf("fx: base currency required")
	}
	clean := make(map[string]float64, len(rates)+1)
	for code, rate := range rates {
		code = Normalize3(code)
		if code == "" {
			return Table{}, fmt.Errorf("fx: empty currency code in rate table")
		}
		if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
			return Table{}, fmt.Errorf("fx: invalid rate %v for %s", rate, code)
		}
		clean[code] = rate
	}
	clean[base] = 1
	return Table{base: base, rates: clean, fetchedAt: fetchedAt}, nil
}

// Base returns the base currency code.
func (t Table) Base() string { return t.base }

// FetchedAt returns when the table was obtained from the provider.
func (t Table) FetchedAt() time.Time { return t.fetchedAt }

// Rate returns the base-currency rate for code, and whether it is present.
func (t Table) Rate(code string) (float64, bool) {
	rate, ok := t.rates[Normalize3(code)]
	return rate, ok
}

// Currencies returns the listed codes in sorted order.
func (t Table) Currencies() []string {
	out := make([]string, 0, len(t.rates))
	for code := range t.rates {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Rates returns a copy of the underlying mapping.
func (t Table) Rates() map[string]float64 {
	out := make(map[string]float64, len(t.rates))
	for code, rate := range t.rates {
		out[code] = rate
	}
	return out
}
