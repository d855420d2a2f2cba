package catalog

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period search input must settle for before a
// reload is issued.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer coalesces a burst of triggers into one call issued after the
// configured quiet period. The interval is a policy knob; zero runs the
// function inline, which tests and non-interactive callers rely on.
type Debouncer struct {
	interval time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Trigger schedules fn after the quiet period, replacing any pending call.
func (d *Debouncer) Trigger(fn func()) {
	if d.interval <= 0 {
		fn()
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, fn)
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
