package store

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of mutations into a single delayed save. Each
// Trigger within the window resets the timer rather than queuing another
// write; only the quiet period after the last mutation fires the save. The
// save function must be an idempotent full-state snapshot, so no ordering
// guarantee beyond "last one wins" is needed.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	save  func()
	timer *time.Timer
}

// NewDebouncer returns a Debouncer that invokes save after delay of
// uninterrupted quiet following the last Trigger.
func NewDebouncer(delay time.Duration, save func()) *Debouncer {
	return &Debouncer{delay: delay, save: save}
}

// Trigger schedules a save after the debounce window, cancelling any pending
// one. Safe to call from any goroutine.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.save)
}

// Flush cancels any pending save and runs it immediately, synchronously.
// Used on session teardown so the final state never waits out the window.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	pending := d.timer != nil
	if pending {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	if pending {
		d.save()
	}
}

// Stop cancels any pending save without running it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
