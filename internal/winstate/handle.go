package winstate

import "github.com/1broseidon/winstate/internal/geometry"

// Event identifies a window notification the controller listens for.
type Event int

const (
	EventResize Event = iota
	EventMove
	// EventClose fires while the window still exists but is going away.
	EventClose
	// EventClosed fires after the window is gone.
	EventClosed
)

func (e Event) String() string {
	switch e {
	case EventResize:
		return "resize"
	case EventMove:
		return "move"
	case EventClose:
		return "close"
	case EventClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Handle is a borrowed capability over a live window. Reads on a destroyed
// window return an error rather than panicking. Implementations must be
// comparable; the controller identifies the managed window by equality.
type Handle interface {
	Bounds() (geometry.Rect, error)
	IsMaximized() (bool, error)
	IsMinimized() (bool, error)
	IsFullScreen() (bool, error)
	Maximize() error
	SetFullScreen(on bool) error
	// Subscribe registers fn for ev and returns a function that removes it.
	Subscribe(ev Event, fn func()) (unsubscribe func())
}

// DisplayLister enumerates the currently attached displays.
type DisplayLister interface {
	Displays() ([]geometry.Rect, error)
}

// StaticDisplays is a fixed display layout.
type StaticDisplays []geometry.Rect

// Displays returns a copy of the layout.
func (s StaticDisplays) Displays() ([]geometry.Rect, error) {
	out := make([]geometry.Rect, len(s))
	copy(out, s)
	return out, nil
}
