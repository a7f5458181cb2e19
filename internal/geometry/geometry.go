package geometry

import "math"

// Point represents a 2D coordinate in image pixel space.
//
// Coordinates are floating point because polygons are produced from both
// discrete pixel operations (flood fill) and continuous ones (drag editing,
// divider fractions). (0,0) is the top-left corner of the image, X increases
// rightward, Y increases downward.
type Point struct {
	X float64 `json:"x"` // Horizontal position (0 = leftmost)
	Y float64 `json:"y"` // Vertical position (0 = topmost)
}

// Rect is an axis-aligned bounding box in pixel space.
type Rect struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// BoundingBox computes the axis-aligned bounding box of a point set.
//
// Returns nil if points is empty; callers must treat that as "no box".
func BoundingBox(points []Point) *Rect {
	if len(points) == 0 {
		return nil
	}

	box := Rect{
		MinX: points[0].X, MaxX: points[0].X,
		MinY: points[0].Y, MaxY: points[0].Y,
	}
	for _, p := range points[1:] {
		if p.X < box.MinX {
			box.MinX = p.X
		}
		if p.X > box.MaxX {
			box.MaxX = p.X
		}
		if p.Y < box.MinY {
			box.MinY = p.Y
		}
		if p.Y > box.MaxY {
			box.MaxY = p.Y
		}
	}
	return &box
}

// Area computes the area of a polygon using the shoelace formula.
//
// The point sequence is treated as cyclic (the edge from the last point back
// to the first is implied), so both open rings and rings that repeat the
// first point as the last produce the same result. Winding order does not
// matter; the absolute value is returned.
//
// Degenerate input (< 3 points) returns 0.
func Area(points []Point) float64 {
	if len(points) < 3 {
		return 0
	}

	var sum float64
	n := len(points)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += points[i].X*points[j].Y - points[j].X*points[i].Y
	}
	return math.Abs(sum) / 2
}

// Centroid returns the arithmetic mean of the point coordinates.
//
// This is a plain vertex average, not the area-weighted centroid. It is used
// as the reference point for angular sorting of boundary pixels, where only
// a representative interior point is needed. Returns the zero Point for
// empty input.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}

	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}
	n := float64(len(points))
	return Point{X: sumX / n, Y: sumY / n}
}

// PerpendicularDistance computes the distance from a point to the infinite
// line through lineStart and lineEnd.
//
// When lineStart == lineEnd the line is degenerate and the Euclidean
// distance to that single point is returned instead.
func PerpendicularDistance(p, lineStart, lineEnd Point) float64 {
	dx := lineEnd.X - lineStart.X
	dy := lineEnd.Y - lineStart.Y

	if dx == 0 && dy == 0 {
		return math.Hypot(p.X-lineStart.X, p.Y-lineStart.Y)
	}

	num := math.Abs(dy*p.X - dx*p.Y + lineEnd.X*lineStart.Y - lineEnd.Y*lineStart.X)
	return num / math.Hypot(dx, dy)
}

// Simplify reduces a polyline using the Douglas-Peucker algorithm.
//
// The input is the open form of the ring (no duplicated closing point).
// Points within epsilon of the chord between the first and last point are
// removed; the point of maximum perpendicular distance splits the chain and
// both halves are simplified recursively.
//
// Sequences of 2 or fewer points are returned as-is. With epsilon 0 only
// exactly collinear interior points are removed; as epsilon grows the result
// collapses toward [first, last].
func Simplify(points []Point, epsilon float64) []Point {
	if len(points) <= 2 {
		return points
	}

	maxDist := 0.0
	maxIndex := 0
	first := points[0]
	last := points[len(points)-1]

	for i := 1; i < len(points)-1; i++ {
		d := PerpendicularDistance(points[i], first, last)
		if d > maxDist {
			maxDist = d
			maxIndex = i
		}
	}

	if maxDist > epsilon {
		left := Simplify(points[:maxIndex+1], epsilon)
		right := Simplify(points[maxIndex:], epsilon)
		// Drop the duplicated joint point between the two halves.
		return append(left[:len(left)-1], right...)
	}

	return []Point{first, last}
}

// IsClosed reports whether the ring repeats its first point as its last.
func IsClosed(points []Point) bool {
	if len(points) < 2 {
		return false
	}
	return points[0] == points[len(points)-1]
}

// CloseRing appends a copy of the first point if the ring is not already
// closed. The label-creation convention is that stored polygons are closed.
func CloseRing(points []Point) []Point {
	if len(points) == 0 || IsClosed(points) {
		return points
	}
	return append(points, points[0])
}

// OpenRing strips the duplicated closing point if present. Simplification
// and segmentation operate on the open form.
func OpenRing(points []Point) []Point {
	if IsClosed(points) {
		return points[:len(points)-1]
	}
	return points
}
