package platform

import (
	"testing"

	"github.com/1broseidon/winstate/internal/geometry"
	"github.com/1broseidon/winstate/internal/winstate"
)

func TestListenerSet_AddEmitRemove(t *testing.T) {
	var s listenerSet
	calls := 0
	unsub := s.add(winstate.EventMove, func() { calls++ })
	s.add(winstate.EventResize, func() { t.Fatalf("resize listener should not run") })

	s.emit(winstate.EventMove)
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
	if s.len() != 2 {
		t.Fatalf("expected 2 listeners, got %d", s.len())
	}

	unsub()
	unsub()
	s.emit(winstate.EventMove)
	if calls != 1 {
		t.Fatalf("expected removed listener not to run, got %d calls", calls)
	}
	if s.len() != 1 {
		t.Fatalf("expected 1 listener, got %d", s.len())
	}
}

func TestListenerSet_CallbackMayUnsubscribe(t *testing.T) {
	var s listenerSet
	var unsub func()
	calls := 0
	unsub = s.add(winstate.EventClosed, func() {
		calls++
		unsub()
	})
	s.emit(winstate.EventClosed)
	s.emit(winstate.EventClosed)
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestListenerSet_EmitsInRegistrationOrder(t *testing.T) {
	var s listenerSet
	var order []int
	for i := range 20 {
		s.add(winstate.EventClosed, func() { order = append(order, i) })
	}
	s.emit(winstate.EventClosed)
	for i, got := range order {
		if got != i {
			t.Fatalf("expected callbacks in registration order, got %v", order)
		}
	}
	if len(order) != 20 {
		t.Fatalf("expected 20 calls, got %d", len(order))
	}
}

func TestGeometryDiff(t *testing.T) {
	var d geometryDiff
	d.reset(geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100})

	resized, moved := d.update(geometry.Rect{X: 10, Y: 0, Width: 100, Height: 100})
	if resized || !moved {
		t.Fatalf("expected move only, got resized=%v moved=%v", resized, moved)
	}
	resized, moved = d.update(geometry.Rect{X: 10, Y: 0, Width: 200, Height: 100})
	if !resized || moved {
		t.Fatalf("expected resize only, got resized=%v moved=%v", resized, moved)
	}
	resized, moved = d.update(geometry.Rect{X: 10, Y: 0, Width: 200, Height: 100})
	if resized || moved {
		t.Fatalf("expected no change, got resized=%v moved=%v", resized, moved)
	}
}

func TestParseWindowID(t *testing.T) {
	cases := map[string]WindowID{
		"0x3a00007": 0x3a00007,
		"60817415":  60817415,
		" 0x10 ":    0x10,
	}
	for in, want := range cases {
		got, err := ParseWindowID(in)
		if err != nil {
			t.Fatalf("ParseWindowID(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseWindowID(%q) = %v, want %v", in, got, want)
		}
	}
	for _, bad := range []string{"", "0", "window", "0x1ffffffff"} {
		if _, err := ParseWindowID(bad); err == nil {
			t.Fatalf("ParseWindowID(%q) expected error", bad)
		}
	}
	if got := WindowID(0x3a00007).String(); got != "0x3a00007" {
		t.Fatalf("String() = %q", got)
	}
}

type fakeBackend struct {
	moved       map[WindowID]geometry.Rect
	unmaximized []WindowID
}

func (f *fakeBackend) Displays() ([]geometry.Rect, error) { return nil, nil }
func (f *fakeBackend) Window(WindowID) (winstate.Handle, error) {
	return nil, nil
}
func (f *fakeBackend) MoveResize(id WindowID, b geometry.Rect) error {
	f.moved[id] = b
	return nil
}
func (f *fakeBackend) Unmaximize(id WindowID) error {
	f.unmaximized = append(f.unmaximized, id)
	return nil
}
func (f *fakeBackend) ActiveWindow() (WindowID, error)    { return 0, nil }
func (f *fakeBackend) FindWindow(string) (WindowID, error) { return 0, nil }

func TestRestore(t *testing.T) {
	b := &fakeBackend{moved: map[WindowID]geometry.Rect{}}

	if err := Restore(b, 1, winstate.Record{IsMaximized: true}); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if len(b.moved) != 0 {
		t.Fatalf("expected mode-only record not to move the window")
	}

	want := geometry.Rect{X: 5, Y: 6, Width: 700, Height: 500}
	if err := Restore(b, 2, *winstate.RecordFromRect(want)); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if b.moved[2] != want {
		t.Fatalf("expected %+v, got %+v", want, b.moved[2])
	}
	if len(b.unmaximized) != 1 || b.unmaximized[0] != 2 {
		t.Fatalf("expected normal record to unmaximize window 2, got %v", b.unmaximized)
	}
}

func TestRestore_LeavesModeToController(t *testing.T) {
	bounds := geometry.Rect{X: 10, Y: 10, Width: 800, Height: 600}
	for name, mutate := range map[string]func(*winstate.Record){
		"maximized":  func(r *winstate.Record) { r.IsMaximized = true },
		"fullscreen": func(r *winstate.Record) { r.IsFullScreen = true },
	} {
		b := &fakeBackend{moved: map[WindowID]geometry.Rect{}}
		rec := winstate.RecordFromRect(bounds)
		mutate(rec)

		if err := Restore(b, 7, *rec); err != nil {
			t.Fatalf("%s: restore: %v", name, err)
		}
		if len(b.unmaximized) != 0 {
			t.Fatalf("%s: expected no unmaximize request, got %v", name, b.unmaximized)
		}
		if b.moved[7] != bounds {
			t.Fatalf("%s: expected normal bounds %+v to be set, got %+v", name, bounds, b.moved[7])
		}
	}
}
