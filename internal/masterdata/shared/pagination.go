package shared

// ListFilters carries the standard list query knobs shared by the
// masterdata modules.
type ListFilters struct {
	Page    int
	Limit   int
	Search  string
	SortBy  string
	SortDir string
}

// Clamp normalises paging to sane defaults.
func (f *ListFilters) Clamp() {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
}
