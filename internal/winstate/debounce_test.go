package winstate

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestDebouncer_OnlyLastTaskRuns(t *testing.T) {
	clock := clockwork.NewFakeClock()
	d := newDebouncer(clock, 100*time.Millisecond)

	var last atomic.Int32
	var runs atomic.Int32
	for i := int32(1); i <= 3; i++ {
		d.Schedule(func() {
			runs.Add(1)
			last.Store(i)
		})
		clock.Advance(10 * time.Millisecond)
	}
	if !d.Pending() {
		t.Fatalf("expected a pending task")
	}

	clock.Advance(100 * time.Millisecond)
	waitFor(t, "debounced task", func() bool { return runs.Load() == 1 })
	if last.Load() != 3 {
		t.Fatalf("expected last task to run, got %d", last.Load())
	}
	if d.Pending() {
		t.Fatalf("expected no pending task after it ran")
	}
}

func TestDebouncer_CancelDropsTask(t *testing.T) {
	clock := clockwork.NewFakeClock()
	d := newDebouncer(clock, 100*time.Millisecond)

	var runs atomic.Int32
	d.Schedule(func() { runs.Add(1) })
	d.Cancel()
	d.Cancel()
	clock.Advance(time.Second)
	time.Sleep(10 * time.Millisecond)
	if runs.Load() != 0 {
		t.Fatalf("expected cancelled task not to run")
	}
}
