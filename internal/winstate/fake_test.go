package winstate

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/1broseidon/winstate/internal/geometry"
)

var errWindowGone = errors.New("window destroyed")

type fakeWindow struct {
	mu         sync.Mutex
	bounds     geometry.Rect
	maximized  bool
	minimized  bool
	fullScreen bool
	destroyed  bool

	boundsReads     int
	maximizeCalls   int
	fullScreenCalls int

	nextID    int
	listeners map[Event]map[int]func()
}

func newFakeWindow(bounds geometry.Rect) *fakeWindow {
	return &fakeWindow{bounds: bounds, listeners: make(map[Event]map[int]func())}
}

func (w *fakeWindow) Bounds() (geometry.Rect, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return geometry.Rect{}, errWindowGone
	}
	w.boundsReads++
	return w.bounds, nil
}

func (w *fakeWindow) IsMaximized() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return false, errWindowGone
	}
	return w.maximized, nil
}

func (w *fakeWindow) IsMinimized() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return false, errWindowGone
	}
	return w.minimized, nil
}

func (w *fakeWindow) IsFullScreen() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return false, errWindowGone
	}
	return w.fullScreen, nil
}

func (w *fakeWindow) Maximize() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return errWindowGone
	}
	w.maximizeCalls++
	w.maximized = true
	return nil
}

func (w *fakeWindow) SetFullScreen(on bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return errWindowGone
	}
	w.fullScreenCalls++
	w.fullScreen = on
	return nil
}

func (w *fakeWindow) Subscribe(ev Event, fn func()) func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.nextID
	w.nextID++
	if w.listeners[ev] == nil {
		w.listeners[ev] = make(map[int]func())
	}
	w.listeners[ev][id] = fn
	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.listeners[ev], id)
	}
}

func (w *fakeWindow) emit(ev Event) {
	w.mu.Lock()
	fns := make([]func(), 0, len(w.listeners[ev]))
	for _, fn := range w.listeners[ev] {
		fns = append(fns, fn)
	}
	w.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (w *fakeWindow) listenerCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := 0
	for _, m := range w.listeners {
		n += len(m)
	}
	return n
}

func (w *fakeWindow) reads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.boundsReads
}

func (w *fakeWindow) setBounds(r geometry.Rect) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.bounds = r
}

func (w *fakeWindow) destroy() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.destroyed = true
}

type memoryPersister struct {
	mu      sync.Mutex
	record  *Record
	loadErr error
	saveErr error
	saves   int
}

func (p *memoryPersister) Load() (*Record, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loadErr != nil {
		return nil, p.loadErr
	}
	return p.record.Clone(), nil
}

func (p *memoryPersister) Save(rec *Record) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.saveErr != nil {
		return p.saveErr
	}
	p.saves++
	p.record = rec.Clone()
	return nil
}

func (p *memoryPersister) saved() (*Record, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.record.Clone(), p.saves
}

// waitFor polls cond until it holds or a second passes. Timers on the fake
// clock may fire on their own goroutine.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func rect(x, y, w, h int) geometry.Rect {
	return geometry.Rect{X: x, Y: y, Width: w, Height: h}
}
