package x11

import (
	"fmt"

	"github.com/1broseidon/winstate/internal/geometry"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"
)

const (
	stateMaximizedVert = "_NET_WM_STATE_MAXIMIZED_VERT"
	stateMaximizedHorz = "_NET_WM_STATE_MAXIMIZED_HORZ"
	stateFullscreen    = "_NET_WM_STATE_FULLSCREEN"
	stateHidden        = "_NET_WM_STATE_HIDDEN"

	// _NET_WM_STATE client message actions.
	stateRemove = 0
	stateAdd    = 1
)

// WindowState is the EWMH/ICCCM display mode of a window.
type WindowState struct {
	Maximized  bool
	Minimized  bool
	FullScreen bool
}

// Alive reports whether the window still exists on the server.
func (c *Connection) Alive(windowID xproto.Window) bool {
	_, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	return err == nil
}

// GetWindowBounds returns the window's outer frame in root coordinates: the
// client area plus _NET_FRAME_EXTENTS. MoveResizeWindow takes the same model.
func (c *Connection) GetWindowBounds(windowID xproto.Window) (geometry.Rect, error) {
	client, err := c.clientRect(windowID)
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("failed to get geometry of window 0x%x: %w", windowID, err)
	}
	return FrameRect(client, c.frameExtents(windowID)), nil
}

// GetWindowState reads _NET_WM_STATE and WM_STATE. A window without those
// properties is in normal mode; a destroyed window is an error.
func (c *Connection) GetWindowState(windowID xproto.Window) (WindowState, error) {
	var st WindowState

	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		if !c.Alive(windowID) {
			return st, fmt.Errorf("window 0x%x is gone: %w", windowID, err)
		}
		states = nil
	}

	hasMaxV, hasMaxH := false, false
	for _, s := range states {
		switch s {
		case stateMaximizedVert:
			hasMaxV = true
		case stateMaximizedHorz:
			hasMaxH = true
		case stateFullscreen:
			st.FullScreen = true
		case stateHidden:
			st.Minimized = true
		}
	}
	st.Maximized = hasMaxV && hasMaxH

	if wmState, err := icccm.WmStateGet(c.XUtil, windowID); err == nil && wmState.State == icccm.StateIconic {
		st.Minimized = true
	}
	return st, nil
}

// Maximize asks the window manager to maximize the window in both directions.
func (c *Connection) Maximize(windowID xproto.Window) error {
	if err := ewmh.WmStateReq(c.XUtil, windowID, stateAdd, stateMaximizedVert); err != nil {
		return fmt.Errorf("failed to maximize window 0x%x: %w", windowID, err)
	}
	if err := ewmh.WmStateReq(c.XUtil, windowID, stateAdd, stateMaximizedHorz); err != nil {
		return fmt.Errorf("failed to maximize window 0x%x: %w", windowID, err)
	}
	return nil
}

// SetFullScreen adds or removes _NET_WM_STATE_FULLSCREEN.
func (c *Connection) SetFullScreen(windowID xproto.Window, on bool) error {
	action := stateRemove
	if on {
		action = stateAdd
	}
	if err := ewmh.WmStateReq(c.XUtil, windowID, action, stateFullscreen); err != nil {
		return fmt.Errorf("failed to set fullscreen on window 0x%x: %w", windowID, err)
	}
	return nil
}

// Unmaximize removes both maximized states so a following move takes effect.
func (c *Connection) Unmaximize(windowID xproto.Window) error {
	st, err := c.GetWindowState(windowID)
	if err != nil || !st.Maximized {
		return err
	}
	if err := ewmh.WmStateReq(c.XUtil, windowID, stateRemove, stateMaximizedHorz); err != nil {
		return fmt.Errorf("failed to unmaximize window 0x%x: %w", windowID, err)
	}
	if err := ewmh.WmStateReq(c.XUtil, windowID, stateRemove, stateMaximizedVert); err != nil {
		return fmt.Errorf("failed to unmaximize window 0x%x: %w", windowID, err)
	}
	return nil
}

// MoveResizeWindow places the window's outer frame at bounds, as returned by
// GetWindowBounds. The window manager sizes the client, so the frame extents
// are subtracted; NorthWest gravity makes x,y the frame's top-left corner.
func (c *Connection) MoveResizeWindow(windowID xproto.Window, bounds geometry.Rect) error {
	ext := c.frameExtents(windowID)
	client := ClientRect(bounds, ext)

	err := ewmh.MoveresizeWindowExtra(c.XUtil, windowID, bounds.X, bounds.Y, client.Width, client.Height,
		xproto.GravityNorthWest, 2, true, true)
	if err != nil {
		// Without an EWMH window manager there is no frame to account for.
		xwindow.New(c.XUtil, windowID).MoveResize(client.X, client.Y, client.Width, client.Height)
	}
	return nil
}

// WindowEvents receives structure notifications for one window. Nil fields
// are ignored. Callbacks run on the event loop goroutine.
type WindowEvents struct {
	Configure func()
	Unmap     func()
	Destroy   func()
}

// WatchWindow selects StructureNotify on a window and routes the resulting
// events to h.
func (c *Connection) WatchWindow(windowID xproto.Window, h WindowEvents) error {
	if err := xwindow.New(c.XUtil, windowID).Listen(xproto.EventMaskStructureNotify); err != nil {
		return fmt.Errorf("failed to listen on window 0x%x: %w", windowID, err)
	}

	xevent.ConfigureNotifyFun(func(_ *xgbutil.XUtil, _ xevent.ConfigureNotifyEvent) {
		if h.Configure != nil {
			h.Configure()
		}
	}).Connect(c.XUtil, windowID)

	xevent.UnmapNotifyFun(func(_ *xgbutil.XUtil, _ xevent.UnmapNotifyEvent) {
		if h.Unmap != nil {
			h.Unmap()
		}
	}).Connect(c.XUtil, windowID)

	xevent.DestroyNotifyFun(func(_ *xgbutil.XUtil, _ xevent.DestroyNotifyEvent) {
		if h.Destroy != nil {
			h.Destroy()
		}
	}).Connect(c.XUtil, windowID)

	return nil
}

// UnwatchWindow detaches every event handler registered for the window.
func (c *Connection) UnwatchWindow(windowID xproto.Window) {
	xevent.Detach(c.XUtil, windowID)
}
