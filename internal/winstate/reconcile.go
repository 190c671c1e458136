package winstate

import "github.com/1broseidon/winstate/internal/geometry"

// Outcome describes what reconciliation decided for a rectangle.
type Outcome int

const (
	// OutcomeUnchanged means the rectangle is fully on one display.
	OutcomeUnchanged Outcome = iota
	// OutcomeClamped means the rectangle was partially visible and was moved
	// (and possibly shrunk) into its best display.
	OutcomeClamped
	// OutcomeInvisible means no display shows any part of the rectangle.
	OutcomeInvisible
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeClamped:
		return "clamped"
	case OutcomeInvisible:
		return "invisible"
	default:
		return "unknown"
	}
}

// Reconciliation is the result of fitting a rectangle to the current displays.
type Reconciliation struct {
	Rect    geometry.Rect
	Outcome Outcome
	// Display is the index of the best matching display, or -1 when the
	// rectangle is invisible.
	Display int
	Ratio   float64
}

// BestDisplay returns the index of the display with the largest overlap with
// rect and that overlap ratio. Ties keep the first display in enumeration
// order. It returns -1 when no display overlaps rect.
func BestDisplay(rect geometry.Rect, displays []geometry.Rect) (int, float64) {
	best := -1
	bestRatio := 0.0
	for i, d := range displays {
		ratio := geometry.OverlapRatio(rect, d)
		if ratio > bestRatio {
			best = i
			bestRatio = ratio
		}
	}
	return best, bestRatio
}

// Reconcile decides whether rect can stay where it is, must be clamped into
// its best display, or is invisible on every display.
func Reconcile(rect geometry.Rect, displays []geometry.Rect) Reconciliation {
	best, ratio := BestDisplay(rect, displays)
	switch {
	case best < 0:
		return Reconciliation{Rect: rect, Outcome: OutcomeInvisible, Display: -1}
	case ratio == 1:
		return Reconciliation{Rect: rect, Outcome: OutcomeUnchanged, Display: best, Ratio: ratio}
	default:
		return Reconciliation{
			Rect:    geometry.ClampInto(rect, displays[best]),
			Outcome: OutcomeClamped,
			Display: best,
			Ratio:   ratio,
		}
	}
}
