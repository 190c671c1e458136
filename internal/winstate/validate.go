package winstate

import "github.com/1broseidon/winstate/internal/geometry"

// Validate decides whether a loaded record is usable against the current
// displays. It returns nil for absent or invalid records.
//
// Boundable records are reconciled: a record visible on no display is
// replaced by DefaultRecord (mode flags included), a partially visible one
// has its bounds clamped. Mode-only records are returned as-is.
func Validate(rec *Record, displays []geometry.Rect, defaults Size) *Record {
	if !rec.Valid() {
		return nil
	}
	if rec.ModeOnly() {
		return rec.Clone()
	}
	rect, _ := rec.Bounds()

	res := Reconcile(rect, displays)
	switch res.Outcome {
	case OutcomeInvisible:
		return DefaultRecord(defaults)
	case OutcomeClamped:
		// Mode flags are kept; the clamped bounds apply once the window
		// leaves maximized/fullscreen.
		out := rec.Clone()
		out.SetBounds(res.Rect)
		return out
	default:
		return rec.Clone()
	}
}
