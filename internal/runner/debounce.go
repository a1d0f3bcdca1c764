package runner

import (
	"sync"
	"time"
)

// Debouncer delays an action until a quiet period has elapsed. Arming while
// a previous timer is pending disarms it first, so only the most recently
// armed action can fire.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a debouncer with the given quiet period
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Arm schedules fn to run after the quiet period, replacing any pending
// action. fn runs on a timer goroutine.
func (d *Debouncer) Arm(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Disarm cancels any pending action
func (d *Debouncer) Disarm() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
