package winstate

import (
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/winstate/internal/geometry"
	"github.com/jonboulle/clockwork"
)

// DefaultDebounce is the quiet period before a resize/move is read back.
const DefaultDebounce = 100 * time.Millisecond

// Phase is the controller's position in the managed-window lifecycle.
type Phase int

const (
	PhaseUnmanaged Phase = iota
	PhaseManaged
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseUnmanaged:
		return "unmanaged"
	case PhaseManaged:
		return "managed"
	case PhaseClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Options configures a Controller.
type Options struct {
	// DefaultSize is used when no usable record exists. Zero fields fall
	// back to 800x600.
	DefaultSize Size
	// Maximize and FullScreen restore those modes when a window is managed.
	Maximize   bool
	FullScreen bool
	// DebounceDelay coalesces resize/move notifications.
	DebounceDelay time.Duration

	Persister Persister
	Displays  DisplayLister
	Clock     clockwork.Clock
	Logger    *slog.Logger
}

// Controller owns one window's record and binds it to a managed window.
type Controller struct {
	mu sync.Mutex

	defaults   Size
	maximize   bool
	fullScreen bool
	persister  Persister
	displays   DisplayLister
	logger     *slog.Logger

	record   *Record
	phase    Phase
	handle   Handle
	unsubs   []func()
	debounce *debouncer
}

// New creates a controller and loads its initial record: the persisted
// record is validated against the current displays, falling back to the
// default size when it is missing or unusable.
func New(opts Options) *Controller {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	delay := opts.DebounceDelay
	if delay <= 0 {
		delay = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	c := &Controller{
		defaults:   opts.DefaultSize.normalized(),
		maximize:   opts.Maximize,
		fullScreen: opts.FullScreen,
		persister:  opts.Persister,
		displays:   opts.Displays,
		logger:     logger,
		debounce:   newDebouncer(clock, delay),
	}
	c.record = c.initialRecord()
	return c
}

func (c *Controller) initialRecord() *Record {
	var loaded *Record
	if c.persister != nil {
		rec, err := c.persister.Load()
		if err != nil {
			c.logger.Warn("window state: load failed, using defaults", "error", err)
		} else {
			loaded = rec
		}
	}
	if loaded == nil {
		return (&Record{}).withDefaults(c.defaults)
	}

	displays, ok := c.currentDisplays()
	if !ok {
		// Without a display layout there is nothing to reconcile against.
		if !loaded.Valid() {
			c.logger.Info("window state: discarding invalid record")
			return (&Record{}).withDefaults(c.defaults)
		}
		return loaded.withDefaults(c.defaults)
	}

	validated := Validate(loaded, displays, c.defaults)
	if validated == nil {
		c.logger.Info("window state: discarding invalid record")
		return (&Record{}).withDefaults(c.defaults)
	}
	return validated.withDefaults(c.defaults)
}

func (c *Controller) currentDisplays() ([]geometry.Rect, bool) {
	if c.displays == nil {
		return nil, false
	}
	displays, err := c.displays.Displays()
	if err != nil {
		c.logger.Warn("window state: failed to list displays", "error", err)
		return nil, false
	}
	return displays, true
}

// X returns the remembered x coordinate, if any.
func (c *Controller) X() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.record.X == nil {
		return 0, false
	}
	return *c.record.X, true
}

// Y returns the remembered y coordinate, if any.
func (c *Controller) Y() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.record.Y == nil {
		return 0, false
	}
	return *c.record.Y, true
}

// Width returns the remembered normal-state width.
func (c *Controller) Width() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.record.Width
}

// Height returns the remembered normal-state height.
func (c *Controller) Height() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.record.Height
}

// IsMaximized reports whether the window was last seen maximized.
func (c *Controller) IsMaximized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.record.IsMaximized
}

// IsFullScreen reports whether the window was last seen fullscreen.
func (c *Controller) IsFullScreen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.record.IsFullScreen
}

// Snapshot returns a copy of the live record.
func (c *Controller) Snapshot() Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.record.Clone()
}

// Phase returns the lifecycle phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Manage starts tracking h. A previously managed handle is released first.
// When configured, the remembered maximized/fullscreen mode is applied.
func (c *Controller) Manage(h Handle) {
	c.Unmanage()

	c.mu.Lock()
	rec := c.record.Clone()
	c.handle = h
	c.phase = PhaseManaged
	c.mu.Unlock()

	if c.maximize && rec.IsMaximized {
		if on, err := h.IsMaximized(); err == nil && !on {
			if err := h.Maximize(); err != nil {
				c.logger.Warn("window state: maximize failed", "error", err)
			}
		}
	}
	if c.fullScreen && rec.IsFullScreen {
		if on, err := h.IsFullScreen(); err == nil && !on {
			if err := h.SetFullScreen(true); err != nil {
				c.logger.Warn("window state: fullscreen failed", "error", err)
			}
		}
	}

	unsubs := []func(){
		h.Subscribe(EventResize, func() { c.scheduleUpdate(h) }),
		h.Subscribe(EventMove, func() { c.scheduleUpdate(h) }),
		h.Subscribe(EventClose, func() { c.closeHandler(h) }),
		h.Subscribe(EventClosed, func() { c.closedHandler(h) }),
	}

	c.mu.Lock()
	if c.handle == h {
		c.unsubs = unsubs
		unsubs = nil
	}
	c.mu.Unlock()

	// Manage raced with another Manage/Unmanage; drop our listeners.
	for _, unsub := range unsubs {
		unsub()
	}
}

// Unmanage removes all listeners from the managed window and cancels any
// pending update. It is a no-op when nothing is managed.
func (c *Controller) Unmanage() {
	c.unmanage(PhaseUnmanaged)
}

func (c *Controller) unmanage(next Phase) {
	c.mu.Lock()
	if c.handle == nil {
		c.mu.Unlock()
		return
	}
	unsubs := c.unsubs
	c.unsubs = nil
	c.handle = nil
	c.phase = next
	c.mu.Unlock()

	c.debounce.Cancel()
	for _, unsub := range unsubs {
		if unsub != nil {
			unsub()
		}
	}
}

func (c *Controller) isManaged(h Handle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handle == h
}

func (c *Controller) scheduleUpdate(h Handle) {
	c.debounce.Schedule(func() {
		if !c.isManaged(h) {
			return
		}
		c.updateState(h)
	})
}

func (c *Controller) closeHandler(h Handle) {
	if !c.isManaged(h) {
		return
	}
	c.debounce.Cancel()
	c.updateState(h)
}

func (c *Controller) closedHandler(h Handle) {
	if !c.isManaged(h) {
		return
	}
	c.unmanage(PhaseClosed)
	if err := c.SaveState(); err != nil {
		c.logger.Warn("window state: save failed", "error", err)
	}
}

// UpdateState reads the managed window's geometry into the record
// immediately. It is a no-op when nothing is managed.
func (c *Controller) UpdateState() {
	c.mu.Lock()
	h := c.handle
	c.mu.Unlock()
	if h == nil {
		return
	}
	c.updateState(h)
}

// updateState copies the live window state into the record. Bounds are only
// taken in normal mode; the mode flags are always refreshed. Any read error
// leaves the record untouched.
func (c *Controller) updateState(h Handle) {
	bounds, err := h.Bounds()
	if err != nil {
		c.logger.Debug("window state: ignoring unreadable window", "error", err)
		return
	}
	maximized, err := h.IsMaximized()
	if err != nil {
		c.logger.Debug("window state: ignoring unreadable window", "error", err)
		return
	}
	minimized, err := h.IsMinimized()
	if err != nil {
		c.logger.Debug("window state: ignoring unreadable window", "error", err)
		return
	}
	fullScreen, err := h.IsFullScreen()
	if err != nil {
		c.logger.Debug("window state: ignoring unreadable window", "error", err)
		return
	}

	var displayBounds *geometry.Rect
	if displays, ok := c.currentDisplays(); ok {
		if idx, _ := BestDisplay(bounds, displays); idx >= 0 {
			d := displays[idx]
			displayBounds = &d
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !maximized && !minimized && !fullScreen {
		c.record.SetBounds(bounds)
	}
	c.record.IsMaximized = maximized
	c.record.IsFullScreen = fullScreen
	if displayBounds != nil {
		c.record.DisplayBounds = displayBounds
	}
	c.logger.Debug("window state: updated",
		"bounds", bounds, "maximized", maximized, "minimized", minimized, "fullscreen", fullScreen)
}

// SaveState writes the current record through the persister. Callers that
// treat persistence as best effort may ignore the error.
func (c *Controller) SaveState() error {
	if c.persister == nil {
		return nil
	}
	rec := c.Snapshot()
	return c.persister.Save(&rec)
}

// ResetStateToDefault replaces the record with the default size at the
// origin and clears the mode flags. The managed window is unaffected.
func (c *Controller) ResetStateToDefault() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record = DefaultRecord(c.defaults)
}
