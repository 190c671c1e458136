package winstate

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// debouncer holds at most one pending task. Scheduling replaces whatever is
// pending; only the most recently scheduled task can run.
type debouncer struct {
	clock clockwork.Clock
	delay time.Duration

	mu    sync.Mutex
	timer clockwork.Timer
	seq   uint64
}

func newDebouncer(clock clockwork.Clock, delay time.Duration) *debouncer {
	return &debouncer{clock: clock, delay: delay}
}

// Schedule cancels any pending task and runs fn after the quiet period.
func (d *debouncer) Schedule(fn func()) {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	seq := d.seq
	d.mu.Unlock()

	// The timer is created without holding mu: a fake clock may fire a
	// zero-delay task synchronously.
	timer := d.clock.AfterFunc(d.delay, func() {
		d.mu.Lock()
		current := d.seq == seq
		if current {
			d.seq++
			d.timer = nil
		}
		d.mu.Unlock()
		if current {
			fn()
		}
	})

	d.mu.Lock()
	if d.seq == seq {
		d.timer = timer
	} else {
		timer.Stop()
	}
	d.mu.Unlock()
}

// Cancel drops the pending task, if any.
func (d *debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
}

// Pending reports whether a task is waiting to run.
func (d *debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
