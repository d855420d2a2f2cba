// Package selection holds the operator's working set of catalog items and
// quantities between browsing and saving a quote.
package selection

import (
	"errors"
	"sync"

	"github.com/mnzmnz10/yeter-sub001/internal/catalog"
	"github.com/mnzmnz10/yeter-sub001/internal/fx"
)

// ErrUnresolvedItem rejects a selection for which no pricing snapshot can be
// resolved, neither from the loaded catalog window nor supplied explicitly.
// Inserting a bare quantity would leave a line that cannot be priced.
var ErrUnresolvedItem = errors.New("selection: item cannot be resolved")

// Entry is one selected line: the item snapshot taken at selection time plus
// its quantity. The snapshot keeps the line priceable after the item scrolls
// out of the loaded catalog window.
type Entry struct {
	Item     catalog.Item `json:"item"`
	Quantity int          `json:"quantity"`
}

// Store is the selection working set. Each id maps to a single record
// holding both quantity and snapshot, so the two can never drift apart; an
// insertion-order list keeps Entries deterministic.
type Store struct {
	mu    sync.Mutex
	lines map[int64]Entry
	order []int64
}

func NewStore() *Store {
	return &Store{lines: make(map[int64]Entry)}
}

// Set updates the quantity for an item. Quantity zero or less removes the
// line. The first insertion of an id needs a snapshot; later updates keep
// the stored one unless a fresh snapshot is supplied.
func (s *Store) Set(id int64, quantity int, snapshot *catalog.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(id)
		return nil
	}

	existing, ok := s.lines[id]
	switch {
	case ok && snapshot == nil:
		existing.Quantity = quantity
		s.lines[id] = existing
	case snapshot != nil:
		if !ok {
			s.order = append(s.order, id)
		}
		s.lines[id] = Entry{Item: *snapshot, Quantity: quantity}
	default:
		return ErrUnresolvedItem
	}
	return nil
}

func (s *Store) removeLocked(id int64) {
	if _, ok := s.lines[id]; !ok {
		return
	}
	delete(s.lines, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Remove drops the line for an item, if present.
func (s *Store) Remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(id)
}

// Get returns the quantity for an item and whether it is selected.
func (s *Store) Get(id int64) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.lines[id]
	return entry.Quantity, ok
}

// Snapshot returns the stored item snapshot for a selected id.
func (s *Store) Snapshot(id int64) (catalog.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.lines[id]
	return entry.Item, ok
}

// Entries returns the selected lines in insertion order.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.lines[id])
	}
	return out
}

// Len returns the number of selected items.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// Clear empties the selection.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = make(map[int64]Entry)
	s.order = nil
}

// Replace swaps the whole selection for the given lines, in the order
// given. Used when a persisted quote is loaded for editing.
func (s *Store) Replace(entries []Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = make(map[int64]Entry, len(entries))
	s.order = s.order[:0]
	for _, e := range entries {
		if e.Quantity <= 0 {
			continue
		}
		if _, ok := s.lines[e.Item.ID]; !ok {
			s.order = append(s.order, e.Item.ID)
		}
		s.lines[e.Item.ID] = e
	}
}

// SelectVisible marks every given item selected with quantity 1. Items
// outside the given window keep their quantities.
func (s *Store) SelectVisible(items []catalog.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range items {
		id := items[i].ID
		if _, ok := s.lines[id]; !ok {
			s.order = append(s.order, id)
		}
		s.lines[id] = Entry{Item: items[i], Quantity: 1}
	}
}

// SelectGroup selects every not-yet-selected item in the group with
// quantity 1; already selected group members keep their quantities.
func (s *Store) SelectGroup(items []catalog.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range items {
		id := items[i].ID
		if _, ok := s.lines[id]; ok {
			continue
		}
		s.order = append(s.order, id)
		s.lines[id] = Entry{Item: items[i], Quantity: 1}
	}
}

// DeselectGroup removes every item in the group from the selection.
func (s *Store) DeselectGroup(ids []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.removeLocked(id)
	}
}

// GroupSelected reports the group checkbox state: true only when every item
// in the group is selected. An empty group is never reported selected.
func (s *Store) GroupSelected(ids []int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(ids) == 0 {
		return false
	}
	for _, id := range ids {
		if _, ok := s.lines[id]; !ok {
			return false
		}
	}
	return true
}

// Reprice recomputes every stored snapshot's derived base prices against the
// given table.
func (s *Store) Reprice(t fx.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, entry := range s.lines {
		entry.Item.Reprice(t)
		s.lines[id] = entry
	}
}
