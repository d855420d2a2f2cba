package catalog

import (
	"time"

	"github.com/mnzmnz10/yeter-sub001/internal/fx"
)

// Item is one supplier catalog row. ListPriceBase and DiscountedPriceBase are
// derived from the rate table current at fetch time, never stored; nil means
// the price could not be normalized and the item must be shown as price
// unavailable.
type Item struct {
	ID              int64    `json:"id"`
	CompanyID       int64    `json:"company_id"`
	CategoryID      *int64   `json:"category_id"`
	Name            string   `json:"name"`
	ListPrice       float64  `json:"list_price"`
	DiscountedPrice *float64 `json:"discounted_price"`
	Currency        string   `json:"currency"`

	ListPriceBase       *float64 `json:"list_price_base"`
	DiscountedPriceBase *float64 `json:"discounted_price_base"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Reprice recomputes the derived base-currency fields against the given
// table. An unknown currency clears both fields so the item fails closed
// instead of carrying a stale or defaulted price.
func (i *Item) Reprice(t fx.Table) {
	i.ListPriceBase = nil
	i.DiscountedPriceBase = nil

	listBase, err := fx.Normalize(i.ListPrice, i.Currency, t)
	if err != nil {
		return
	}
	i.ListPriceBase = &listBase

	if i.DiscountedPrice != nil {
		discBase, err := fx.Normalize(*i.DiscountedPrice, i.Currency, t)
		if err != nil {
			return
		}
		i.DiscountedPriceBase = &discBase
	}
}

// PriceAvailable reports whether the item currently carries a normalized
// list price.
func (i Item) PriceAvailable() bool {
	return i.ListPriceBase != nil
}

// Query is the filter and pagination shape catalog reads answer.
type Query struct {
	Search     string
	CategoryID *int64
	CompanyID  *int64
	Page       int
	PageSize   int
}

// Result is one page of catalog reads. TotalCount is the filtered result
// size, independent of page size, so callers can tell whether more pages
// exist.
type Result struct {
	Items      []Item `json:"items"`
	TotalCount int    `json:"total_count"`
}
