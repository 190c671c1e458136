// Package winstate remembers a window's geometry and display mode between
// runs and keeps that geometry visible when the attached displays change.
package winstate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/1broseidon/winstate/internal/geometry"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Size is a width/height pair used for default window dimensions.
type Size struct {
	Width  int
	Height int
}

// DefaultSize returns the fallback window size.
func DefaultSize() Size {
	return Size{Width: DefaultWidth, Height: DefaultHeight}
}

func (s Size) normalized() Size {
	if s.Width <= 0 {
		s.Width = DefaultWidth
	}
	if s.Height <= 0 {
		s.Height = DefaultHeight
	}
	return s
}

// Record is the persisted and live geometry/mode data for one window.
// Absent positional fields are nil and are omitted when serialized.
type Record struct {
	X             *int           `json:"x,omitempty"`
	Y             *int           `json:"y,omitempty"`
	Width         *int           `json:"width,omitempty"`
	Height        *int           `json:"height,omitempty"`
	IsMaximized   bool           `json:"isMaximized,omitempty"`
	IsFullScreen  bool           `json:"isFullScreen,omitempty"`
	DisplayBounds *geometry.Rect `json:"displayBounds,omitempty"`
}

func intPtr(v int) *int {
	return &v
}

// RecordFromRect builds a boundable record from r.
func RecordFromRect(r geometry.Rect) *Record {
	rec := &Record{}
	rec.SetBounds(r)
	return rec
}

// DefaultRecord returns the record used after a full reset: default size at
// the origin with no mode flags.
func DefaultRecord(size Size) *Record {
	size = size.normalized()
	return &Record{
		X:      intPtr(0),
		Y:      intPtr(0),
		Width:  intPtr(size.Width),
		Height: intPtr(size.Height),
	}
}

// Boundable reports whether x, y, width and height are all present and the
// size is positive.
func (r *Record) Boundable() bool {
	if r == nil || r.X == nil || r.Y == nil || r.Width == nil || r.Height == nil {
		return false
	}
	return *r.Width > 0 && *r.Height > 0
}

// ModeOnly reports whether the record is only meaningful through its
// maximized/fullscreen flags.
func (r *Record) ModeOnly() bool {
	return r != nil && !r.Boundable() && (r.IsMaximized || r.IsFullScreen)
}

// Valid reports whether the record is boundable or carries a mode flag.
func (r *Record) Valid() bool {
	return r != nil && (r.Boundable() || r.IsMaximized || r.IsFullScreen)
}

// Bounds returns the record's rectangle when it is boundable.
func (r *Record) Bounds() (geometry.Rect, bool) {
	if !r.Boundable() {
		return geometry.Rect{}, false
	}
	return geometry.Rect{X: *r.X, Y: *r.Y, Width: *r.Width, Height: *r.Height}, true
}

// SetBounds overwrites all four positional fields.
func (r *Record) SetBounds(b geometry.Rect) {
	r.X = intPtr(b.X)
	r.Y = intPtr(b.Y)
	r.Width = intPtr(b.Width)
	r.Height = intPtr(b.Height)
}

// Clone returns a deep copy of r.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := &Record{
		IsMaximized:  r.IsMaximized,
		IsFullScreen: r.IsFullScreen,
	}
	if r.X != nil {
		out.X = intPtr(*r.X)
	}
	if r.Y != nil {
		out.Y = intPtr(*r.Y)
	}
	if r.Width != nil {
		out.Width = intPtr(*r.Width)
	}
	if r.Height != nil {
		out.Height = intPtr(*r.Height)
	}
	if r.DisplayBounds != nil {
		db := *r.DisplayBounds
		out.DisplayBounds = &db
	}
	return out
}

// withDefaults fills a missing width/height from size.
func (r *Record) withDefaults(size Size) *Record {
	size = size.normalized()
	out := r.Clone()
	if out == nil {
		out = &Record{}
	}
	if out.Width == nil {
		out.Width = intPtr(size.Width)
	}
	if out.Height == nil {
		out.Height = intPtr(size.Height)
	}
	return out
}

// rawRecord mirrors Record with loosely typed numbers so that a single
// non-integer field does not reject the whole document.
type rawRecord struct {
	X             *json.Number   `json:"x"`
	Y             *json.Number   `json:"y"`
	Width         *json.Number   `json:"width"`
	Height        *json.Number   `json:"height"`
	IsMaximized   *bool          `json:"isMaximized"`
	IsFullScreen  *bool          `json:"isFullScreen"`
	DisplayBounds *geometry.Rect `json:"displayBounds"`
}

// DecodeRecord parses a serialized record. Numeric fields that are not
// integers are dropped, leaving the validator to decide whether the record is
// still usable. Syntax errors and wrongly typed fields are returned as errors.
func DecodeRecord(data []byte) (*Record, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw rawRecord
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse window state: %w", err)
	}

	rec := &Record{
		X:             integerField(raw.X),
		Y:             integerField(raw.Y),
		Width:         integerField(raw.Width),
		Height:        integerField(raw.Height),
		DisplayBounds: raw.DisplayBounds,
	}
	if raw.IsMaximized != nil {
		rec.IsMaximized = *raw.IsMaximized
	}
	if raw.IsFullScreen != nil {
		rec.IsFullScreen = *raw.IsFullScreen
	}
	return rec, nil
}

func integerField(n *json.Number) *int {
	if n == nil {
		return nil
	}
	if v, err := n.Int64(); err == nil {
		if v < math.MinInt32 || v > math.MaxInt32 {
			return nil
		}
		return intPtr(int(v))
	}
	// Accept integral floats such as 800.0.
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return nil
	}
	return intPtr(int(f))
}

// EncodeRecord serializes a record as indented JSON with a trailing newline.
func EncodeRecord(r *Record) ([]byte, error) {
	if r == nil {
		r = &Record{}
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode window state: %w", err)
	}
	return append(data, '\n'), nil
}
