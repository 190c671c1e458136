package platform

import (
	"maps"
	"slices"
	"sync"

	"github.com/1broseidon/winstate/internal/geometry"
	"github.com/1broseidon/winstate/internal/winstate"
)

// listenerSet is a per-window registry of event callbacks.
type listenerSet struct {
	mu      sync.Mutex
	nextID  int
	byEvent map[winstate.Event]map[int]func()
}

func (s *listenerSet) add(ev winstate.Event, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byEvent == nil {
		s.byEvent = make(map[winstate.Event]map[int]func())
	}
	if s.byEvent[ev] == nil {
		s.byEvent[ev] = make(map[int]func())
	}
	id := s.nextID
	s.nextID++
	s.byEvent[ev][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.byEvent[ev], id)
		})
	}
}

// emit runs the callbacks for ev in registration order, outside the lock so
// they may unsubscribe.
func (s *listenerSet) emit(ev winstate.Event) {
	s.mu.Lock()
	byID := s.byEvent[ev]
	fns := make([]func(), 0, len(byID))
	for _, id := range slices.Sorted(maps.Keys(byID)) {
		fns = append(fns, byID[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (s *listenerSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, fns := range s.byEvent {
		n += len(fns)
	}
	return n
}

// geometryDiff classifies configure notifications as resizes and/or moves by
// comparing against the last seen geometry.
type geometryDiff struct {
	mu    sync.Mutex
	last  geometry.Rect
	known bool
}

func (d *geometryDiff) reset(r geometry.Rect) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.last = r
	d.known = true
}

func (d *geometryDiff) update(r geometry.Rect) (resized, moved bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.known {
		d.last = r
		d.known = true
		return true, true
	}
	resized = r.Width != d.last.Width || r.Height != d.last.Height
	moved = r.X != d.last.X || r.Y != d.last.Y
	d.last = r
	return resized, moved
}
