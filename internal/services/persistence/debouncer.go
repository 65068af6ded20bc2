// Package persistence batches record writes behind a trailing-edge debounce
package persistence

import (
	"context"
	"sync"
	"time"
)

// Debouncer runs fn once after Trigger has gone quiet for delay. Each
// Trigger cancels the pending run and starts the window over. Runs never
// overlap and a superseded timer never fires.
type Debouncer struct {
	delay time.Duration
	fn    func(ctx context.Context)

	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
	pending    bool
	stopped    bool
	running    int
	idle       *sync.Cond

	runMu sync.Mutex
}

// NewDebouncer creates a debouncer. fn must not call back into the debouncer
// synchronously.
func NewDebouncer(delay time.Duration, fn func(ctx context.Context)) *Debouncer {
	if fn == nil {
		panic("debounce callback is required")
	}
	d := &Debouncer{delay: delay, fn: fn}
	d.idle = sync.NewCond(&d.mu)
	return d
}

// Trigger schedules a run after the quiet window, replacing any pending one
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.generation++
	gen := d.generation
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = true
	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(gen)
	})
}

// Flush runs a pending callback now on the caller's goroutine. When the
// timer has already started a run, Flush waits for it to finish instead. It
// reports whether a run happened either way.
func (d *Debouncer) Flush(ctx context.Context) bool {
	if d.claim(0) {
		d.run(ctx)
		return true
	}
	return d.Wait()
}

// Wait blocks until no callback is running and reports whether it had to
// wait for one
func (d *Debouncer) Wait() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	waited := false
	for d.running > 0 {
		waited = true
		d.idle.Wait()
	}
	return waited
}

// Pending reports whether a run is scheduled
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Stop cancels any pending run. Later triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.pending = false
	d.generation++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) fire(gen uint64) {
	if !d.claim(gen) {
		return
	}
	d.run(context.Background())
}

// claim takes ownership of the pending run. gen 0 claims whatever is
// pending; otherwise the timer's generation must still be current.
func (d *Debouncer) claim(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.pending || d.stopped {
		return false
	}
	if gen != 0 && gen != d.generation {
		return false
	}

	d.pending = false
	d.generation++
	d.running++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	return true
}

// run executes a claimed callback
func (d *Debouncer) run(ctx context.Context) {
	defer d.done()

	d.runMu.Lock()
	defer d.runMu.Unlock()
	d.fn(ctx)
}

func (d *Debouncer) done() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.running--
	if d.running == 0 {
		d.idle.Broadcast()
	}
}
