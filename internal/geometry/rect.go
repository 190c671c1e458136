package geometry

// Rect is an axis-aligned rectangle in virtual-desktop coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Right returns the x coordinate one past the rectangle's right edge.
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the y coordinate one past the rectangle's bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Area returns width*height, or 0 for degenerate rectangles.
func (r Rect) Area() int {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.Area() == 0
}

// Intersect returns the overlapping region of r and other. The result is the
// zero Rect when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x1 := max(r.X, other.X)
	y1 := max(r.Y, other.Y)
	x2 := min(r.Right(), other.Right())
	y2 := min(r.Bottom(), other.Bottom())

	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Contains reports whether inner lies entirely within outer.
func Contains(outer, inner Rect) bool {
	return inner.X >= outer.X && inner.Y >= outer.Y &&
		inner.Right() <= outer.Right() && inner.Bottom() <= outer.Bottom()
}

// OverlapRatio returns the fraction of rect's area that lies inside bounds,
// in the range [0, 1]. A zero-area rect has no overlap.
func OverlapRatio(rect, bounds Rect) float64 {
	area := rect.Area()
	if area == 0 {
		return 0
	}
	return float64(rect.Intersect(bounds).Area()) / float64(area)
}

// ClampInto shrinks rect so it is no larger than bounds, then translates it so
// every edge lies within bounds. Width and height never grow. The horizontal
// and vertical axes are handled independently.
func ClampInto(rect, bounds Rect) Rect {
	out := rect
	if out.Width > bounds.Width {
		out.Width = bounds.Width
	}
	if out.Height > bounds.Height {
		out.Height = bounds.Height
	}

	if out.X < bounds.X {
		out.X = bounds.X
	} else if out.Right() > bounds.Right() {
		out.X = bounds.Right() - out.Width
	}

	if out.Y < bounds.Y {
		out.Y = bounds.Y
	} else if out.Bottom() > bounds.Bottom() {
		out.Y = bounds.Bottom() - out.Height
	}

	return out
}
