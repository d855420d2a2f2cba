package catalog

import (
	"context"
	"errors"
	"sync"

	"github.com/mnzmnz10/yeter-sub001/internal/fx"
)

// ErrSuperseded reports that a query result arrived after a newer query had
// been issued and was discarded. It is an ordering decision, not a failure;
// callers treat it as a no-op.
var ErrSuperseded = errors.New("catalog: response superseded")

// Source answers view queries. *Service satisfies it; tests substitute fakes.
type Source interface {
	Query(ctx context.Context, q Query) (Result, error)
}

// Filter is the operator-controlled part of the view query.
type Filter struct {
	Search     string `json:"search"`
	CategoryID *int64 `json:"category_id"`
	CompanyID  *int64 `json:"company_id"`
}

// View accumulates paginated catalog results for one operator session.
// Changing the filter resets and replaces the loaded list; LoadMore appends
// the next page of the same filter. Results are applied under a generation
// token: only the most recently issued query may install its result, so a
// slow response can never overwrite a newer one or append rows belonging to
// an abandoned filter. In-flight calls are never aborted, just discarded on
// arrival.
type View struct {
	source   Source
	pageSize int

	mu     sync.Mutex
	gen    uint64
	filter Filter
	page   int
	items  []Item
	total  int
}

func NewView(source Source, pageSize int) *View {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &View{source: source, pageSize: pageSize}
}

// Apply installs a new filter and loads its first page, replacing the
// current list.
func (v *View) Apply(ctx context.Context, f Filter) error {
	v.mu.Lock()
	v.filter = f
	v.gen++
	gen := v.gen
	v.mu.Unlock()
	return v.finish(ctx, gen, f, 1, true)
}

// Reload re-runs the first page of the current filter, replacing the list.
func (v *View) Reload(ctx context.Context) error {
	v.mu.Lock()
	f := v.filter
	v.gen++
	gen := v.gen
	v.mu.Unlock()
	return v.finish(ctx, gen, f, 1, true)
}

// LoadMore appends the next page of the current filter. Before the first
// load, or when every row is already loaded, it behaves like Reload.
func (v *View) LoadMore(ctx context.Context) error {
	v.mu.Lock()
	f := v.filter
	next := v.page + 1
	replace := false
	if v.page == 0 {
		next = 1
		replace = true
	} else if len(v.items) >= v.total {
		v.mu.Unlock()
		return nil
	}
	v.gen++
	gen := v.gen
	v.mu.Unlock()
	return v.finish(ctx, gen, f, next, replace)
}

func (v *View) finish(ctx context.Context, gen uint64, f Filter, page int, replace bool) error {
	res, err := v.source.Query(ctx, Query{
		Search:     f.Search,
		CategoryID: f.CategoryID,
		CompanyID:  f.CompanyID,
		Page:       page,
		PageSize:   v.pageSize,
	})

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		return ErrSuperseded
	}
	if err != nil {
		// Loaded rows stay as they were; the operator keeps a usable list.
		return err
	}
	if replace {
		v.items = res.Items
	} else {
		v.items = append(v.items, res.Items...)
	}
	v.page = page
	v.total = res.TotalCount
	return nil
}

// Items returns a copy of the loaded rows in display order.
func (v *View) Items() []Item {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]Item, len(v.items))
	copy(out, v.items)
	return out
}

// Snapshot returns the loaded row with the given id, if it is currently in
// the window.
func (v *View) Snapshot(id int64) (Item, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, it := range v.items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// TotalCount returns the filtered result size reported by the last applied
// query.
func (v *View) TotalCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.total
}

// Loaded returns how many rows are currently in the window.
func (v *View) Loaded() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.items)
}

// HasMore reports whether further pages exist for the current filter.
func (v *View) HasMore() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.items) < v.total
}

// Filter returns the current filter.
func (v *View) Filter() Filter {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter
}

// Reprice recomputes derived base prices on every loaded row against the
// given table.
func (v *View) Reprice(t fx.Table) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i := range v.items {
		v.items[i].Reprice(t)
	}
}
