package workspace

import "github.com/mnzmnz10/yeter-sub001/internal/quote"

// FilterRequest carries catalog filter edits.
type FilterRequest struct {
	Search     string `json:"search"`
	CategoryID *int64 `json:"category_id"`
	CompanyID  *int64 `json:"company_id"`
}

// QuantityRequest sets one item's selected quantity; zero removes it.
type QuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// CategorySelectRequest toggles a category group. A null category id
// addresses the uncategorized group.
type CategorySelectRequest struct {
	CategoryID *int64 `json:"category_id"`
	Selected   bool   `json:"selected"`
}

// SaveResponse reports the persisted quote and the session state left
// behind by the save.
type SaveResponse struct {
	Quote   quote.Quote `json:"quote"`
	Updated bool        `json:"updated"`
	State   State       `json:"state"`
}
