package search

import (
	"sync"
	"time"
)

// DefaultQuietPeriod is how long input must stay unchanged before the
// debounced callback fires.
const DefaultQuietPeriod = 500 * time.Millisecond

// Debouncer delays acting on rapidly changing input. Each Input restarts the
// quiet-period timer; the callback fires once with the latest value after the
// input has been stable for the full period. This is the one timer-based
// cancellation in the system.
type Debouncer struct {
	mu     sync.Mutex
	delay  time.Duration
	timer  *time.Timer
	fn     func(string)
	latest string
}

// NewDebouncer creates a Debouncer that calls fn with the settled value.
// A non-positive delay falls back to DefaultQuietPeriod.
func NewDebouncer(delay time.Duration, fn func(string)) *Debouncer {
	if delay <= 0 {
		delay = DefaultQuietPeriod
	}
	return &Debouncer{delay: delay, fn: fn}
}

// Input feeds a new value, restarting the timer.
func (d *Debouncer) Input(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.latest = value
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		v := d.latest
		d.mu.Unlock()
		d.fn(v)
	})
}

// Stop cancels any pending callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
