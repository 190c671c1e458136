package geometry

import "testing"

func TestOverlapRatio_FullyInside(t *testing.T) {
	display := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	cases := []Rect{
		{X: 0, Y: 0, Width: 1920, Height: 1080},
		{X: 100, Y: 100, Width: 800, Height: 600},
		{X: 1919, Y: 1079, Width: 1, Height: 1},
	}
	for _, rect := range cases {
		if got := OverlapRatio(rect, display); got != 1 {
			t.Fatalf("expected ratio 1 for %+v, got %v", rect, got)
		}
	}
}

func TestOverlapRatio_PartialAndDisjoint(t *testing.T) {
	display := Rect{X: 0, Y: 0, Width: 1000, Height: 800}

	got := OverlapRatio(Rect{X: 900, Y: 0, Width: 800, Height: 600}, display)
	if got != 0.125 {
		t.Fatalf("expected ratio 0.125, got %v", got)
	}

	if got := OverlapRatio(Rect{X: 2000, Y: 0, Width: 800, Height: 600}, display); got != 0 {
		t.Fatalf("expected ratio 0 for disjoint rect, got %v", got)
	}

	// Touching edges do not overlap.
	if got := OverlapRatio(Rect{X: 1000, Y: 0, Width: 10, Height: 10}, display); got != 0 {
		t.Fatalf("expected ratio 0 for adjacent rect, got %v", got)
	}
}

func TestOverlapRatio_ZeroAreaRect(t *testing.T) {
	display := Rect{X: 0, Y: 0, Width: 1000, Height: 800}
	for _, rect := range []Rect{
		{X: 10, Y: 10, Width: 0, Height: 100},
		{X: 10, Y: 10, Width: 100, Height: 0},
		{X: 10, Y: 10, Width: -5, Height: 100},
	} {
		if got := OverlapRatio(rect, display); got != 0 {
			t.Fatalf("expected ratio 0 for %+v, got %v", rect, got)
		}
	}
}

func TestOverlapRatio_NegativeCoordinates(t *testing.T) {
	left := Rect{X: -1280, Y: 0, Width: 1280, Height: 1024}
	rect := Rect{X: -640, Y: 0, Width: 1280, Height: 512}
	if got := OverlapRatio(rect, left); got != 0.5 {
		t.Fatalf("expected ratio 0.5, got %v", got)
	}
}

func TestClampInto_ShiftsLeftWhenPastRightEdge(t *testing.T) {
	display := Rect{X: 0, Y: 0, Width: 1000, Height: 800}
	got := ClampInto(Rect{X: 900, Y: 0, Width: 800, Height: 600}, display)
	want := Rect{X: 200, Y: 0, Width: 800, Height: 600}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestClampInto_ShiftsRightAndDown(t *testing.T) {
	display := Rect{X: 1920, Y: 0, Width: 1280, Height: 1024}
	got := ClampInto(Rect{X: 1800, Y: -50, Width: 400, Height: 300}, display)
	want := Rect{X: 1920, Y: 0, Width: 400, Height: 300}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestClampInto_ShrinksOversizedRect(t *testing.T) {
	display := Rect{X: 0, Y: 0, Width: 1000, Height: 800}
	got := ClampInto(Rect{X: -100, Y: 50, Width: 1500, Height: 900}, display)
	if got != display {
		t.Fatalf("expected %+v, got %+v", display, got)
	}
}

func TestClampInto_NeverGrows(t *testing.T) {
	display := Rect{X: 0, Y: 0, Width: 1000, Height: 800}
	got := ClampInto(Rect{X: 990, Y: 790, Width: 20, Height: 20}, display)
	if got.Width != 20 || got.Height != 20 {
		t.Fatalf("expected 20x20, got %dx%d", got.Width, got.Height)
	}
}

func TestClampInto_ResultAlwaysInsideBounds(t *testing.T) {
	displays := []Rect{
		{X: 0, Y: 0, Width: 1000, Height: 800},
		{X: -1280, Y: -200, Width: 1280, Height: 1024},
		{X: 1920, Y: 300, Width: 640, Height: 480},
	}
	for _, display := range displays {
		for x := -3000; x <= 3000; x += 250 {
			for y := -1500; y <= 1500; y += 250 {
				for _, size := range [][2]int{{100, 100}, {800, 600}, {2000, 1500}} {
					rect := Rect{X: x, Y: y, Width: size[0], Height: size[1]}
					got := ClampInto(rect, display)
					if got.Width > display.Width || got.Height > display.Height {
						t.Fatalf("clamp of %+v into %+v grew past bounds: %+v", rect, display, got)
					}
					if !Contains(display, got) {
						t.Fatalf("clamp of %+v into %+v left bounds: %+v", rect, display, got)
					}
				}
			}
		}
	}
}

func TestIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	b := Rect{X: 50, Y: 25, Width: 100, Height: 100}
	want := Rect{X: 50, Y: 25, Width: 50, Height: 75}
	if got := a.Intersect(b); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if got := a.Intersect(Rect{X: 200, Y: 200, Width: 5, Height: 5}); !got.Empty() {
		t.Fatalf("expected empty intersection, got %+v", got)
	}
}
