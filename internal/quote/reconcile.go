package quote

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mnzmnz10/yeter-sub001/internal/selection"
)

// SaveAction says what a save should do with the current draft.
type SaveAction int

const (
	SaveCreate SaveAction = iota
	SaveUpdate
)

// Decision is a resolved save: the action, the record it targets when
// updating, and the name the payload must carry after empty-name fallback.
type Decision struct {
	Action  SaveAction
	QuoteID int64
	Name    string
}

// Reconciler tracks which persisted quote the live draft belongs to.
// Saving an unbound draft, or a bound draft under a deliberately new name,
// creates a fresh record; saving a bound draft under the same or an empty
// name quietly updates the bound record. Typing a new name is the "save as"
// gesture, there is no separate control for it.
type Reconciler struct {
	mu    sync.Mutex
	bound *Quote
}

func NewReconciler() *Reconciler {
	return &Reconciler{}
}

// BindForEdit derives a fresh draft and selection lines from a persisted
// quote and remembers it as the bound record. The returned lines replace
// the selection wholesale; each carries its own snapshot so pricing works
// for items no longer in the loaded catalog window.
func (r *Reconciler) BindForEdit(q Quote) (Draft, []selection.Entry) {
	r.mu.Lock()
	bound := q
	r.bound = &bound
	r.mu.Unlock()

	draft := Draft{
		Name:            q.Name,
		DiscountPercent: q.DiscountPercent,
		LaborCost:       q.LaborCost,
		PriceMode:       q.PriceMode,
	}
	if !draft.PriceMode.Valid() {
		draft.PriceMode = PriceModeList
	}
	if q.Notes != nil {
		notes := *q.Notes
		draft.Notes = &notes
	}
	if q.DiscountPercent != 0 {
		draft.DiscountInput = strconv.FormatFloat(q.DiscountPercent, 'f', -1, 64)
	}
	if q.LaborCost != 0 {
		draft.LaborInput = strconv.FormatFloat(q.LaborCost, 'f', -1, 64)
	}

	entries := make([]selection.Entry, 0, len(q.Lines))
	for _, l := range q.Lines {
		entries = append(entries, selection.Entry{Item: l.Snapshot(), Quantity: l.Quantity})
	}
	return draft, entries
}

// Resolve decides what saving the draft under the given name does. An empty
// name on an update keeps the bound quote's original name; an empty name on
// a create falls back to a date-stamped default.
func (r *Reconciler) Resolve(draftName string, now time.Time) Decision {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := strings.TrimSpace(draftName)
	if r.bound != nil && (name == "" || name == r.bound.Name) {
		resolved := name
		if resolved == "" {
			resolved = r.bound.Name
		}
		return Decision{Action: SaveUpdate, QuoteID: r.bound.ID, Name: resolved}
	}

	if name == "" {
		name = DefaultName(now)
	}
	return Decision{Action: SaveCreate, Name: name}
}

// Rebind installs the record returned by a successful save as the bound
// quote, so the next save in the session resolves against it.
func (r *Reconciler) Rebind(q Quote) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bound := q
	r.bound = &bound
}

// Bound returns the currently bound quote, if any.
func (r *Reconciler) Bound() (Quote, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bound == nil {
		return Quote{}, false
	}
	return *r.bound, true
}

// Unbind forgets the bound quote, for when the draft is discarded outright.
func (r *Reconciler) Unbind() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bound = nil
}
