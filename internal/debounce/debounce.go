// Package debounce delays a callback until a burst of triggers has settled.
//
// Scroll notifications arrive in bursts while the user scrolls; only the
// position after the last one matters:
//
//	d := debounce.New(200*time.Millisecond, func() {
//	    program.Send(scrollSettledMsg{})
//	})
//	d.Trigger() // every scroll step
//
// The callback runs on its own goroutine. Callers owning single-threaded
// state should only post a message from it.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the settle delay for scroll notifications.
const DefaultDelay = 200 * time.Millisecond

// Debouncer calls a function once no Trigger happened for its delay.
// A Debouncer is safe for concurrent use.
type Debouncer struct {
	delay time.Duration
	fn    func()

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// New creates a debouncer calling fn delay after the last Trigger. A
// non-positive delay means DefaultDelay.
func New(delay time.Duration, fn func()) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay, fn: fn}
}

// Delay returns the settle delay.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Trigger (re)arms the timer, cancelling a pending call.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(gen)
	})
}

// Stop cancels a pending call. It returns true if a call was pending.
func (d *Debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer == nil {
		return false
	}
	d.timer.Stop()
	d.timer = nil
	d.gen++
	return true
}

// Pending returns true if a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	// A timer stopped too late still fires; only the latest one counts.
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.fn()
}
