package companies

// CompanyRequest carries create and update payloads.
type CompanyRequest struct {
	Name  string `json:"name" validate:"required,max=160"`
	Phone string `json:"phone" validate:"max=40"`
	Notes string `json:"notes" validate:"max=2000"`
}

// ListResponse is the paged company listing.
type ListResponse struct {
	Companies  []Company `json:"companies"`
	TotalCount int       `json:"total_count"`
}

func (r CompanyRequest) toCompany() Company {
	return Company{
		Name:  r.Name,
		Phone: r.Phone,
		Notes: r.Notes,
	}
}
