//go:build linux

package platform

import (
	"fmt"
	"sync"

	"github.com/1broseidon/winstate/internal/geometry"
	"github.com/1broseidon/winstate/internal/winstate"
	"github.com/1broseidon/winstate/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

// LinuxBackend wraps an X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn *x11.Connection

	mu      sync.Mutex
	windows map[WindowID]*x11Window
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn, windows: make(map[WindowID]*x11Window)}
}

// NewLinuxBackendFromDisplay opens a fresh X11 connection. An empty display
// uses $DISPLAY.
func NewLinuxBackendFromDisplay(display string) (*LinuxBackend, error) {
	conn, err := x11.NewConnection(display)
	if err != nil {
		return nil, err
	}
	return NewLinuxBackend(conn), nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// EventLoop starts the X11 event loop (blocking).
func (b *LinuxBackend) EventLoop() {
	if b != nil && b.conn != nil {
		b.conn.EventLoop()
	}
}

// Quit stops EventLoop.
func (b *LinuxBackend) Quit() {
	if b != nil && b.conn != nil {
		b.conn.Quit()
	}
}

// Displays returns the bounds of every active monitor, primary first.
func (b *LinuxBackend) Displays() ([]geometry.Rect, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}
	monitors, err := conn.GetMonitors()
	if err != nil {
		return nil, err
	}
	displays := make([]geometry.Rect, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, m.Bounds)
	}
	return displays, nil
}

// Monitors returns the named monitors behind Displays.
func (b *LinuxBackend) Monitors() ([]x11.Monitor, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}
	return conn.GetMonitors()
}

// Window returns a handle for an existing window. Handles are cached so the
// same id always yields the same (comparable) handle.
func (b *LinuxBackend) Window(id WindowID) (winstate.Handle, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}
	if !conn.Alive(xproto.Window(id)) {
		return nil, fmt.Errorf("window %s does not exist", id)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if w, ok := b.windows[id]; ok {
		return w, nil
	}
	w := &x11Window{conn: conn, id: xproto.Window(id)}
	b.windows[id] = w
	return w, nil
}

// MoveResize moves and resizes a window to the specified bounds.
func (b *LinuxBackend) MoveResize(id WindowID, bounds geometry.Rect) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.MoveResizeWindow(xproto.Window(id), bounds)
}

// Unmaximize asks the window manager to leave maximized mode.
func (b *LinuxBackend) Unmaximize(id WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.Unmaximize(xproto.Window(id))
}

// ActiveWindow returns the currently focused window.
func (b *LinuxBackend) ActiveWindow() (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	wid, err := conn.GetActiveWindow()
	if err != nil {
		return 0, err
	}
	return WindowID(wid), nil
}

// FindWindow returns the first client whose title contains title.
func (b *LinuxBackend) FindWindow(title string) (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	wid, err := conn.FindWindowByTitle(title)
	if err != nil {
		return 0, err
	}
	return WindowID(wid), nil
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

// x11Window implements winstate.Handle for a foreign X11 window.
type x11Window struct {
	conn *x11.Connection
	id   xproto.Window

	listeners listenerSet
	geom      geometryDiff

	mu       sync.Mutex
	watching bool
}

var _ winstate.Handle = (*x11Window)(nil)

func (w *x11Window) Bounds() (geometry.Rect, error) {
	return w.conn.GetWindowBounds(w.id)
}

func (w *x11Window) IsMaximized() (bool, error) {
	st, err := w.conn.GetWindowState(w.id)
	return st.Maximized, err
}

func (w *x11Window) IsMinimized() (bool, error) {
	st, err := w.conn.GetWindowState(w.id)
	return st.Minimized, err
}

func (w *x11Window) IsFullScreen() (bool, error) {
	st, err := w.conn.GetWindowState(w.id)
	return st.FullScreen, err
}

func (w *x11Window) Maximize() error {
	return w.conn.Maximize(w.id)
}

func (w *x11Window) SetFullScreen(on bool) error {
	return w.conn.SetFullScreen(w.id, on)
}

// Subscribe starts watching the window on first use. X11 handlers stay
// connected until the window is destroyed; with no listeners they do nothing.
func (w *x11Window) Subscribe(ev winstate.Event, fn func()) func() {
	w.ensureWatching()
	return w.listeners.add(ev, fn)
}

func (w *x11Window) ensureWatching() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watching {
		return
	}
	if r, err := w.Bounds(); err == nil {
		w.geom.reset(r)
	}
	err := w.conn.WatchWindow(w.id, x11.WindowEvents{
		Configure: w.onConfigure,
		// Most window managers also unmap on iconify, so a minimize runs the
		// close path too. That only flushes state early; minimized bounds are
		// never recorded.
		Unmap:     func() { w.listeners.emit(winstate.EventClose) },
		Destroy:   w.onDestroy,
	})
	// A window that is already gone never delivers events; the handle's
	// reads will fail and the controller keeps its last record.
	w.watching = err == nil
}

func (w *x11Window) onConfigure() {
	r, err := w.Bounds()
	if err != nil {
		return
	}
	resized, moved := w.geom.update(r)
	if resized {
		w.listeners.emit(winstate.EventResize)
	}
	if moved {
		w.listeners.emit(winstate.EventMove)
	}
}

func (w *x11Window) onDestroy() {
	w.listeners.emit(winstate.EventClosed)
	// Detaching from inside an event callback would contend with the event
	// loop's handler table.
	go w.conn.UnwatchWindow(w.id)
}
