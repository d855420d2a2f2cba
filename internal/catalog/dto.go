package catalog

// ImportRow is one already-parsed supplier price-list row. Upload parsing
// (Excel and friends) happens upstream; the API receives rows.
type ImportRow struct {
	Name            string   `json:"name" validate:"required"`
	CategoryID      *int64   `json:"category_id"`
	ListPrice       float64  `json:"list_price" validate:"gte=0"`
	DiscountedPrice *float64 `json:"discounted_price" validate:"omitempty,gte=0"`
	Currency        string   `json:"currency" validate:"required,oneof=TRY USD EUR GBP try usd eur gbp"`
}

// ImportRequest replaces a supplier's whole price list.
type ImportRequest struct {
	Items []ImportRow `json:"items" validate:"required,min=1,dive"`
}

// ImportResponse reports how many rows were installed.
type ImportResponse struct {
	Imported int `json:"imported"`
}

func (r ImportRow) toItem() Item {
	return Item{
		Name:            r.Name,
		CategoryID:      r.CategoryID,
		ListPrice:       r.ListPrice,
		DiscountedPrice: r.DiscountedPrice,
		Currency:        r.Currency,
	}
}
