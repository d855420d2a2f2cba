package fx

import (
	"sync"
	"time"
)

// Store holds the process-wide rate table. Writers replace the whole table in
// one step; readers never observe a mix of fresh and stale currencies. Every
// replacement bumps the version so derived prices can detect staleness.
type Store struct {
	mu      sync.RWMutex
	table   Table
	version uint64
}

// NewStore creates a store seeded with an empty table for the given base
// currency: base-currency amounts price immediately, everything else fails
// closed until the first refresh lands.
func NewStore(base string) *Store {
	seed, err := NewTable(base, nil, time.Time{})
	if err != nil {
		panic(err)
	}
	return &Store{table: seed}
}

// Current returns the table together with its version.
func (s *Store) Current() (Table, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table, s.version
}

// Table returns the current table.
func (s *Store) Table() Table {
	t, _ := s.Current()
	return t
}

// Version returns the current table version.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Replace installs a new table and returns the new version.
func (s *Store) Replace(t Table) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = t
	s.version++
	return s.version
}
