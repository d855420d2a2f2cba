package categories

import "time"

// Category groups catalog items in the selection screen. SortOrder fixes
// the group ordering there; ties fall back to the name.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
