// Package suggest rate-limits keystroke-driven suggestion lookups.
package suggest

import (
	"sync"
	"time"
)

// DefaultQuiet is the quiet period a burst of inputs must respect before a
// single dispatch fires.
const DefaultQuiet = 300 * time.Millisecond

// Debouncer collapses a rapid series of query updates into at most one
// dispatch per quiet period: each new input cancels the pending timer and
// restarts it, so only the last value of a burst is dispatched, one quiet
// period after the burst ends. The contract is purely about timing; the
// Debouncer knows nothing about the network.
type Debouncer struct {
	quiet    time.Duration
	dispatch func(query string)

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a Debouncer that invokes dispatch after the quiet period.
// A non-positive quiet falls back to DefaultQuiet.
func New(quiet time.Duration, dispatch func(query string)) *Debouncer {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &Debouncer{quiet: quiet, dispatch: dispatch}
}

// Input feeds the next query value. Any dispatch still pending is canceled
// outright; no partial or stale value ever fires.
func (d *Debouncer) Input(query string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, func() {
		d.dispatch(query)
	})
}

// Stop cancels any pending dispatch. Safe to call at shutdown or when the
// input field is cleared.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
