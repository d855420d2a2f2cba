// Package quote turns a selection into totals and persisted quotations:
// aggregation, the create-vs-update reconciliation, and storage.
package quote

import (
	"time"

	"github.com/mnzmnz10/yeter-sub001/internal/catalog"
)

// PriceMode selects which base price feeds totals.
type PriceMode string

const (
	PriceModeList       PriceMode = "list"
	PriceModeDiscounted PriceMode = "discounted"
)

// Valid reports whether the mode is one of the defined values.
func (m PriceMode) Valid() bool {
	return m == PriceModeList || m == PriceModeDiscounted
}

// Draft is the operator's in-progress quote header. Line items live in the
// selection store; DiscountInput and LaborInput keep the raw operator text
// so a typo stays visible while computation runs on the coerced values.
type Draft struct {
	Name            string    `json:"name"`
	DiscountPercent float64   `json:"discount_percent"`
	LaborCost       float64   `json:"labor_cost"`
	PriceMode       PriceMode `json:"price_mode"`
	Notes           *string   `json:"notes"`
	DiscountInput   string    `json:"discount_input"`
	LaborInput      string    `json:"labor_input"`
}

// NewDraft returns the empty draft a session starts with.
func NewDraft() Draft {
	return Draft{PriceMode: PriceModeList}
}

// Totals is the aggregated money breakdown of a selection.
type Totals struct {
	TotalListPrice float64 `json:"total_list_price"`
	DiscountAmount float64 `json:"discount_amount"`
	LaborCost      float64 `json:"labor_cost"`
	TotalNetPrice  float64 `json:"total_net_price"`
	TotalQuantity  int     `json:"total_quantity"`
	ProductCount   int     `json:"product_count"`
}

// Quote is a persisted quotation: header, denormalized lines and the totals
// computed at save time. Records are never edited in place; editing derives
// a draft and saves a fresh payload.
type Quote struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	DiscountPercent float64   `json:"discount_percent"`
	LaborCost       float64   `json:"labor_cost"`
	PriceMode       PriceMode `json:"price_mode"`
	Notes           *string   `json:"notes"`
	Totals          Totals    `json:"totals"`
	Lines           []Line    `json:"lines"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Line is one quoted item. The catalog fields are denormalized at save time
// so the quote stays readable and re-editable even if the catalog row
// changes or disappears; UnitPriceBase and LineTotalBase record what the
// line contributed when it was saved.
type Line struct {
	ID              int64    `json:"id"`
	QuoteID         int64    `json:"quote_id"`
	ItemID          int64    `json:"item_id"`
	Quantity        int      `json:"quantity"`
	Name            string   `json:"name"`
	CompanyID       int64    `json:"company_id"`
	CategoryID      *int64   `json:"category_id"`
	ListPrice       float64  `json:"list_price"`
	DiscountedPrice *float64 `json:"discounted_price"`
	Currency        string   `json:"currency"`
	UnitPriceBase   *float64 `json:"unit_price_base"`
	LineTotalBase   float64  `json:"line_total_base"`
	LineOrder       int      `json:"line_order"`
}

// Snapshot rebuilds the catalog item carried by the line. Base prices are
// left unset; the caller reprices against the current rate table.
func (l Line) Snapshot() catalog.Item {
	return catalog.Item{
		ID:              l.ItemID,
		CompanyID:       l.CompanyID,
		CategoryID:      l.CategoryID,
		Name:            l.Name,
		ListPrice:       l.ListPrice,
		DiscountedPrice: l.DiscountedPrice,
		Currency:        l.Currency,
	}
}

// DefaultName is the date-stamped name given to quotes saved without one.
func DefaultName(now time.Time) string {
	return "Teklif " + now.Format("02.01.2006 15:04")
}
