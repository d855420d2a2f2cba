package categories

// CategoryRequest carries create and update payloads.
type CategoryRequest struct {
	Name      string `json:"name" validate:"required,max=120"`
	SortOrder int    `json:"sort_order" validate:"gte=0"`
}

// ListResponse is the paged category listing.
type ListResponse struct {
	Categories []Category `json:"categories"`
	TotalCount int        `json:"total_count"`
}

func (r CategoryRequest) toCategory() Category {
	return Category{
		Name:      r.Name,
		SortOrder: r.SortOrder,
	}
}
