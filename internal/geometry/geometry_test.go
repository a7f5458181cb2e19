package geometry

import (
	"math"
	"testing"
)

func TestBoundingBox(t *testing.T) {
	points := []Point{{X: 3, Y: 7}, {X: -1, Y: 2}, {X: 5, Y: 4}}

	box := BoundingBox(points)
	if box == nil {
		t.Fatal("BoundingBox returned nil for non-empty input")
	}
	if box.MinX != -1 || box.MaxX != 5 || box.MinY != 2 || box.MaxY != 7 {
		t.Errorf("got %+v, want {-1 2 5 7}", *box)
	}
	if box.Width() != 6 || box.Height() != 5 {
		t.Errorf("Width/Height: got %v/%v, want 6/5", box.Width(), box.Height())
	}
}

func TestBoundingBox_Empty(t *testing.T) {
	if box := BoundingBox(nil); box != nil {
		t.Errorf("expected nil for empty input, got %+v", *box)
	}
}

func TestArea(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		want   float64
	}{
		{"unit square", []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, 1},
		{"rectangle 10x5", []Point{{0, 0}, {10, 0}, {10, 5}, {0, 5}}, 50},
		{"closed ring same as open", []Point{{0, 0}, {10, 0}, {10, 5}, {0, 5}, {0, 0}}, 50},
		{"triangle", []Point{{0, 0}, {4, 0}, {0, 3}}, 6},
		{"two points", []Point{{0, 0}, {1, 1}}, 0},
		{"empty", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Area(tt.points); got != tt.want {
				t.Errorf("Area: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestArea_CyclicRotationInvariant(t *testing.T) {
	points := []Point{{0, 0}, {10, 0}, {12, 6}, {5, 9}, {-2, 4}}
	want := Area(points)

	for shift := 1; shift < len(points); shift++ {
		rotated := append(append([]Point{}, points[shift:]...), points[:shift]...)
		if got := Area(rotated); math.Abs(got-want) > 1e-9 {
			t.Errorf("rotation by %d: got %v, want %v", shift, got, want)
		}
	}
}

func TestArea_WindingOrderInvariant(t *testing.T) {
	points := []Point{{0, 0}, {10, 0}, {12, 6}, {5, 9}, {-2, 4}}
	reversed := make([]Point, len(points))
	for i, p := range points {
		reversed[len(points)-1-i] = p
	}

	if got, want := Area(reversed), Area(points); math.Abs(got-want) > 1e-9 {
		t.Errorf("reversed winding: got %v, want %v", got, want)
	}
}

func TestCentroid(t *testing.T) {
	points := []Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}}
	c := Centroid(points)
	if c.X != 2 || c.Y != 2 {
		t.Errorf("got %+v, want {2 2}", c)
	}
}

func TestCentroid_Empty(t *testing.T) {
	c := Centroid(nil)
	if c.X != 0 || c.Y != 0 {
		t.Errorf("expected zero point for empty input, got %+v", c)
	}
}

func TestPerpendicularDistance(t *testing.T) {
	tests := []struct {
		name             string
		p, start, end    Point
		want             float64
	}{
		{"above horizontal line", Point{5, 3}, Point{0, 0}, Point{10, 0}, 3},
		{"on the line", Point{5, 0}, Point{0, 0}, Point{10, 0}, 0},
		{"right of vertical line", Point{4, 5}, Point{0, 0}, Point{0, 10}, 4},
		{"degenerate segment", Point{3, 4}, Point{0, 0}, Point{0, 0}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PerpendicularDistance(tt.p, tt.start, tt.end)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSimplify_RemovesCollinearPoints(t *testing.T) {
	points := []Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}}

	got := Simplify(points, 0)
	if len(got) != 2 {
		t.Fatalf("expected collinear run to collapse to 2 points, got %d: %v", len(got), got)
	}
	if got[0] != points[0] || got[1] != points[len(points)-1] {
		t.Errorf("endpoints not preserved: %v", got)
	}
}

func TestSimplify_LargeEpsilonCollapses(t *testing.T) {
	points := []Point{{0, 0}, {3, 8}, {6, -2}, {9, 5}, {12, 0}}

	got := Simplify(points, math.Inf(1))
	if len(got) != 2 || got[0] != points[0] || got[1] != points[len(points)-1] {
		t.Errorf("expected [first last], got %v", got)
	}
}

func TestSimplify_PreservesRectangleCorners(t *testing.T) {
	// Right-angle corners must survive any epsilon below the short side.
	corners := []Point{{0, 0}, {10, 0}, {10, 5}, {0, 5}}

	for _, epsilon := range []float64{0, 0.25, 0.5, 0.99} {
		got := Simplify(corners, epsilon)
		if len(got) != 4 {
			t.Fatalf("epsilon %v: expected 4 corners, got %d: %v", epsilon, len(got), got)
		}
		for i, p := range got {
			if p != corners[i] {
				t.Errorf("epsilon %v: corner %d moved: got %+v, want %+v", epsilon, i, p, corners[i])
			}
		}
	}
}

func TestSimplify_ShortInputUnchanged(t *testing.T) {
	points := []Point{{0, 0}, {1, 1}}
	got := Simplify(points, 10)
	if len(got) != 2 {
		t.Errorf("expected 2-point input unchanged, got %v", got)
	}
}

func TestSimplify_KeepsSignificantPoint(t *testing.T) {
	// A spike well above epsilon must be retained.
	points := []Point{{0, 0}, {5, 10}, {10, 0}}
	got := Simplify(points, 1)
	if len(got) != 3 {
		t.Errorf("expected spike preserved, got %v", got)
	}
}

func TestCloseRingOpenRing(t *testing.T) {
	open := []Point{{0, 0}, {1, 0}, {1, 1}}

	closed := CloseRing(open)
	if !IsClosed(closed) {
		t.Fatalf("CloseRing did not close the ring: %v", closed)
	}
	if len(closed) != 4 {
		t.Errorf("expected 4 points after closing, got %d", len(closed))
	}

	// Closing an already-closed ring must not duplicate again.
	if again := CloseRing(closed); len(again) != 4 {
		t.Errorf("double close added points: %v", again)
	}

	reopened := OpenRing(closed)
	if len(reopened) != 3 || IsClosed(reopened) {
		t.Errorf("OpenRing failed: %v", reopened)
	}

	// Opening an open ring is a no-op.
	if same := OpenRing(open); len(same) != 3 {
		t.Errorf("OpenRing modified open ring: %v", same)
	}
}
