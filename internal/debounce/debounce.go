// Package debounce delays a function until calls to it have stopped for a
// quiet period. Only the trailing edge fires.
package debounce

import (
	"sync"
	"time"
)

// Debouncer runs fn once wait has elapsed since the most recent Call.
// It is safe for concurrent use; fn never runs concurrently with itself
// through the same Debouncer.
type Debouncer struct {
	fn   func()
	wait time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64 // bumped on every Call and Stop; stale timers compare against it
	pending bool

	runMu sync.Mutex
}

// New returns a Debouncer for fn. A non-positive wait fires on the next timer tick.
func New(fn func(), wait time.Duration) *Debouncer {
	if wait < 0 {
		wait = 0
	}
	return &Debouncer{fn: fn, wait: wait}
}

// Call schedules fn, replacing any call still waiting.
func (d *Debouncer) Call() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	d.pending = true
	gen := d.gen
	d.timer = time.AfterFunc(d.wait, func() { d.fire(gen) })
}

// Stop cancels a waiting call. A run already in progress is not interrupted.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.pending = false
}

// Flush runs a waiting call now and reports whether there was one.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return false
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.pending = false
	d.mu.Unlock()

	d.run()
	return true
}

// Pending reports whether a call is waiting to fire.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || !d.pending {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.timer = nil
	d.mu.Unlock()

	d.run()
}

func (d *Debouncer) run() {
	if d.fn == nil {
		return
	}
	d.runMu.Lock()
	defer d.runMu.Unlock()
	d.fn()
}
