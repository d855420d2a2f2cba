// Package fx owns currency normalization for the catalog: the shared rate
// table, conversion into the base currency, and the refresh path that keeps
// the table current.
package fx

import (
	"errors"
	"fmt"
)

// ErrUnknownCurrency signals that the table carries no rate for a non-base
// currency. Callers must treat the price as unavailable; substituting a
// default rate here would corrupt quote totals.
var ErrUnknownCurrency = errors.New("fx: unknown currency")

// Normalize converts amount from the given currency into the base currency
// of the table. Amounts already in the base currency pass through unchanged,
// so no floating error is introduced for them. The result keeps full
// precision; rounding happens only at display time.
func Normalize(amount float64, currency string, t Table) (float64, error) {
	code := Normalize3(currency)
	if code == t.base {
		return amount, nil
	}
	rate, ok := t.Rate(code)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCurrency, code)
	}
	return amount * rate, nil
}
