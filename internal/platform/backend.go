package platform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/1broseidon/winstate/internal/geometry"
	"github.com/1broseidon/winstate/internal/winstate"
)

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// ParseWindowID accepts decimal or 0x-prefixed hexadecimal ids, as printed by
// xwininfo and xdotool.
func ParseWindowID(s string) (WindowID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("window id is required")
	}
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid window id %q: %w", s, err)
	}
	if v == 0 {
		return 0, fmt.Errorf("invalid window id %q", s)
	}
	return WindowID(v), nil
}

func (id WindowID) String() string {
	return fmt.Sprintf("0x%x", uint32(id))
}

// Backend abstracts window-system operations across platforms.
type Backend interface {
	winstate.DisplayLister
	// Window returns a handle observing an existing top-level window.
	Window(id WindowID) (winstate.Handle, error)
	MoveResize(id WindowID, bounds geometry.Rect) error
	// Unmaximize leaves maximized mode; a no-op for a normal window.
	Unmaximize(id WindowID) error
	ActiveWindow() (WindowID, error)
	FindWindow(title string) (WindowID, error)
}

// Restore moves a window to the record's bounds when the record has a
// position. A window is only unmaximized for a normal-mode record; for a
// maximized or fullscreen record the mode is the controller's to apply, and
// a pending unmaximize would race with its check of the current mode.
func Restore(b Backend, id WindowID, rec winstate.Record) error {
	bounds, ok := rec.Bounds()
	if !ok {
		return nil
	}
	if !rec.IsMaximized && !rec.IsFullScreen {
		if err := b.Unmaximize(id); err != nil {
			return err
		}
	}
	return b.MoveResize(id, bounds)
}
