// Package workspace holds one operator's editing session: the catalog view
// being browsed, the selection, the draft header, and the persisted quote
// the draft is bound to. Every UI event goes through here.
package workspace

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/mnzmnz10/yeter-sub001/internal/catalog"
	"github.com/mnzmnz10/yeter-sub001/internal/fx"
	"github.com/mnzmnz10/yeter-sub001/internal/quote"
	"github.com/mnzmnz10/yeter-sub001/internal/selection"
)

// ErrInvalidPriceMode rejects a price mode that is neither list nor
// discounted.
var ErrInvalidPriceMode = errors.New("workspace: invalid price mode")

// QuoteStore is the persistence collaborator a workspace saves through.
// *quote.Service satisfies it.
type QuoteStore interface {
	Save(ctx context.Context, decision quote.Decision, draft quote.Draft, entries []selection.Entry) (*quote.Quote, error)
	Get(ctx context.Context, id int64) (*quote.Quote, error)
}

// Config carries the session policy knobs.
type Config struct {
	PageSize int
	Debounce time.Duration
}

// Workspace mediates one operator session. Selection and draft mutations
// are synchronous; catalog loads and saves suspend at the network boundary
// and are reconciled on arrival. Derived prices are brought up to date with
// the shared rate table before anything is read or saved, keyed by the
// table version, so a refresh landing mid-session shows up on the next
// touch without ever rewriting an already-submitted payload.
type Workspace struct {
	logger *slog.Logger

	mu sync.Mutex

	view       *catalog.View
	sel        *selection.Store
	reconciler *quote.Reconciler
	draft      quote.Draft

	rates       *fx.Store
	rateVersion uint64

	quotes    QuoteStore
	debounce  *catalog.Debouncer
	debounced bool
}

func New(logger *slog.Logger, source catalog.Source, rates *fx.Store, quotes QuoteStore, cfg Config) *Workspace {
	_, version := rates.Current()
	return &Workspace{
		logger:      logger,
		view:        catalog.NewView(source, cfg.PageSize),
		sel:         selection.NewStore(),
		reconciler:  quote.NewReconciler(),
		draft:       quote.NewDraft(),
		rates:       rates,
		rateVersion: version,
		quotes:      quotes,
		debounce:    catalog.NewDebouncer(cfg.Debounce),
		debounced:   cfg.Debounce > 0,
	}
}

// refreshPrices reprices loaded rows and selection snapshots when the rate
// table moved since they were last priced. Callers hold w.mu.
func (w *Workspace) refreshPrices() {
	table, version := w.rates.Current()
	if version == w.rateVersion {
		return
	}
	w.view.Reprice(table)
	w.sel.Reprice(table)
	w.rateVersion = version
}

// SetFilter installs a new catalog filter. With a debounce interval the
// reload fires once the input settles and the call returns immediately;
// with none it completes synchronously. A failed debounced reload keeps
// the previous rows on screen and is only logged.
func (w *Workspace) SetFilter(ctx context.Context, f catalog.Filter) error {
	if !w.debounced {
		return ignoreSuperseded(w.view.Apply(ctx, f))
	}
	w.debounce.Trigger(func() {
		if err := ignoreSuperseded(w.view.Apply(context.Background(), f)); err != nil {
			w.logger.Error("failed to apply catalog filter", slog.Any("error", err))
		}
	})
	return nil
}

// Reload re-runs the current filter from the first page.
func (w *Workspace) Reload(ctx context.Context) error {
	return ignoreSuperseded(w.view.Reload(ctx))
}

// LoadMore appends the next catalog page.
func (w *Workspace) LoadMore(ctx context.Context) error {
	return ignoreSuperseded(w.view.LoadMore(ctx))
}

// A superseded response is an ordering decision, not a failure the
// operator should see.
func ignoreSuperseded(err error) error {
	if errors.Is(err, catalog.ErrSuperseded) {
		return nil
	}
	return err
}

// SetQuantity sets the selected quantity for an item; zero removes it. A
// first-time selection resolves its snapshot from the loaded window and is
// rejected when the item is not there.
func (w *Workspace) SetQuantity(id int64, qty int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.refreshPrices()
	if snap, ok := w.view.Snapshot(id); ok {
		return w.sel.Set(id, qty, &snap)
	}
	return w.sel.Set(id, qty, nil)
}

// SelectAllVisible selects every loaded row with quantity 1. Selections on
// rows outside the window keep their quantities.
func (w *Workspace) SelectAllVisible() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.refreshPrices()
	w.sel.SelectVisible(w.view.Items())
}

// SetCategorySelected toggles the loaded rows of one category group as a
// block. Selecting gives unselected rows quantity 1 and keeps existing
// quantities; deselecting removes the whole group.
func (w *Workspace) SetCategorySelected(categoryID *int64, selected bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.refreshPrices()
	group := w.categoryGroupLocked(categoryID)
	if selected {
		w.sel.SelectGroup(group)
		return
	}
	ids := make([]int64, 0, len(group))
	for _, it := range group {
		ids = append(ids, it.ID)
	}
	w.sel.DeselectGroup(ids)
}

// CategorySelected reports the group checkbox state: true only when every
// loaded row of the category is selected.
func (w *Workspace) CategorySelected(categoryID *int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	group := w.categoryGroupLocked(categoryID)
	if len(group) == 0 {
		return false
	}
	ids := make([]int64, 0, len(group))
	for _, it := range group {
		ids = append(ids, it.ID)
	}
	return w.sel.GroupSelected(ids)
}

func (w *Workspace) categoryGroupLocked(categoryID *int64) []catalog.Item {
	var group []catalog.Item
	for _, it := range w.view.Items() {
		if sameCategory(it.CategoryID, categoryID) {
			group = append(group, it)
		}
	}
	return group
}

func sameCategory(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// ClearSelection empties the selection, resets the draft and forgets the
// bound quote; the session starts over.
func (w *Workspace) ClearSelection() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sel.Clear()
	w.draft = quote.NewDraft()
	w.reconciler.Unbind()
}

// DraftUpdate carries the optional draft header edits of one request.
// Discount and labor arrive as the operator typed them.
type DraftUpdate struct {
	Name      *string `json:"name"`
	Discount  *string `json:"discount"`
	Labor     *string `json:"labor"`
	PriceMode *string `json:"price_mode"`
	Notes     *string `json:"notes"`
}

// UpdateDraft applies header edits. Numeric fields are coerced for
// computation while the raw text is kept on the draft so the operator sees
// their own input, typo included.
func (w *Workspace) UpdateDraft(upd DraftUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if upd.PriceMode != nil {
		mode := quote.PriceMode(*upd.PriceMode)
		if !mode.Valid() {
			return ErrInvalidPriceMode
		}
		w.draft.PriceMode = mode
	}
	if upd.Name != nil {
		w.draft.Name = *upd.Name
	}
	if upd.Discount != nil {
		w.draft.DiscountInput = *upd.Discount
		pct := ParseAmount(*upd.Discount)
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		w.draft.DiscountPercent = pct
	}
	if upd.Labor != nil {
		w.draft.LaborInput = *upd.Labor
		cost := ParseAmount(*upd.Labor)
		if cost < 0 {
			cost = 0
		}
		w.draft.LaborCost = cost
	}
	if upd.Notes != nil {
		notes := *upd.Notes
		if notes == "" {
			w.draft.Notes = nil
		} else {
			w.draft.Notes = &notes
		}
	}
	return nil
}

// Draft returns the current draft header.
func (w *Workspace) Draft() quote.Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// Totals aggregates the current selection under the current draft.
func (w *Workspace) Totals() quote.Totals {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.refreshPrices()
	return quote.Aggregate(w.sel.Entries(), w.draft.DiscountPercent, w.draft.LaborCost, w.draft.PriceMode)
}

// Selection returns the selected lines in insertion order.
func (w *Workspace) Selection() []selection.Entry {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.refreshPrices()
	return w.sel.Entries()
}

// BoundQuoteID returns the id of the persisted quote being edited, if any.
func (w *Workspace) BoundQuoteID() *int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	if bound, ok := w.reconciler.Bound(); ok {
		id := bound.ID
		return &id
	}
	return nil
}

// LoadQuoteForEdit fetches a persisted quote and installs it as the live
// draft: the selection is replaced wholesale with lines carrying their own
// snapshots, repriced against the current rate table, and the record
// becomes the bound quote.
func (w *Workspace) LoadQuoteForEdit(ctx context.Context, id int64) error {
	q, err := w.quotes.Get(ctx, id)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	draft, entries := w.reconciler.BindForEdit(*q)
	w.draft = draft
	w.sel.Replace(entries)
	table, version := w.rates.Current()
	w.view.Reprice(table)
	w.sel.Reprice(table)
	w.rateVersion = version
	return nil
}

// Save persists the draft. The payload is built from the selection and
// rate table as they stand at this call; refreshes landing while the save
// is in flight do not reach it. A save under the bound quote's name (or no
// name) updates that record; a new name, or no bound quote, creates one.
// After a create the session is cleared for the next quote; either way the
// saved record becomes the bound quote.
func (w *Workspace) Save(ctx context.Context) (*quote.Quote, bool, error) {
	w.mu.Lock()
	w.refreshPrices()
	entries := w.sel.Entries()
	draft := w.draft
	decision := w.reconciler.Resolve(draft.Name, time.Now())
	w.mu.Unlock()

	saved, err := w.quotes.Save(ctx, decision, draft, entries)
	if err != nil {
		return nil, false, err
	}

	w.mu.Lock()
	w.reconciler.Rebind(*saved)
	if decision.Action == quote.SaveCreate {
		w.sel.Clear()
		w.draft = quote.NewDraft()
	}
	w.mu.Unlock()
	return saved, decision.Action == quote.SaveUpdate, nil
}

// State is the full session snapshot the UI renders from.
type State struct {
	Items        []catalog.Item    `json:"items"`
	TotalCount   int               `json:"total_count"`
	Loaded       int               `json:"loaded"`
	HasMore      bool              `json:"has_more"`
	Filter       catalog.Filter    `json:"filter"`
	Selection    []selection.Entry `json:"selection"`
	Draft        quote.Draft       `json:"draft"`
	Totals       quote.Totals      `json:"totals"`
	BoundQuoteID *int64            `json:"bound_quote_id"`
	RatesAsOf    time.Time         `json:"rates_as_of"`
}

// State assembles the current session snapshot. Totals are recomputed on
// every call; they are never stored.
func (w *Workspace) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.refreshPrices()

	entries := w.sel.Entries()
	st := State{
		Items:      w.view.Items(),
		TotalCount: w.view.TotalCount(),
		Loaded:     w.view.Loaded(),
		HasMore:    w.view.HasMore(),
		Filter:     w.view.Filter(),
		Selection:  entries,
		Draft:      w.draft,
		Totals:     quote.Aggregate(entries, w.draft.DiscountPercent, w.draft.LaborCost, w.draft.PriceMode),
		RatesAsOf:  w.rates.Table().FetchedAt(),
	}
	if bound, ok := w.reconciler.Bound(); ok {
		id := bound.ID
		st.BoundQuoteID = &id
	}
	if st.Items == nil {
		st.Items = []catalog.Item{}
	}
	if st.Selection == nil {
		st.Selection = []selection.Entry{}
	}
	return st
}

// Close releases the session's timers.
func (w *Workspace) Close() {
	w.debounce.Stop()
}
