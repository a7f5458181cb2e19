package segment

import (
	"errors"
	"image"
	"math"
	"sort"

	"github.com/anthonynsimon/bild/clone"

	"github.com/planmark/siteplan-mcp/internal/geometry"
)

var (
	// ErrSeedOutOfBounds indicates the seed point lies outside the image.
	ErrSeedOutOfBounds = errors.New("seed point outside image bounds")

	// ErrRegionTooSmall indicates the grown region fell below the minimum
	// pixel count, typically because the tolerance is too low for the clicked
	// area. Surfaced to the caller as an explicit detection failure.
	ErrRegionTooSmall = errors.New("could not detect boundary: region too small, try adjusting tolerance")

	// ErrPixelCapExceeded indicates the flood fill hit its pixel cap
	// without forming a valid region.
	ErrPixelCapExceeded = errors.New("flood fill pixel cap exceeded without a valid region")
)

// Options tunes the region segmenter. The zero value is not useful; start
// from DefaultOptions and override as needed.
type Options struct {
	// Tolerance is the maximum color distance from the seed pixel, as the
	// sum of absolute per-channel RGB differences.
	Tolerance float64

	// EdgeThreshold is the maximum gradient magnitude a pixel may have and
	// still join the region; stronger edges act as boundaries.
	EdgeThreshold float64

	// MaxPixels caps how many pixels the flood fill may accept. The cap
	// bounds runtime on pathological inputs; it is a resource-safety
	// guarantee, not a tuning knob.
	MaxPixels int

	// MinRegionPixels is the smallest region considered a detection.
	MinRegionPixels int

	// MaxBoundaryPoints bounds the ring handed to simplification.
	MaxBoundaryPoints int
}

// DefaultOptions returns the tuning used for clean vector-like site plans.
func DefaultOptions() Options {
	return Options{
		Tolerance:         30,
		EdgeThreshold:     50,
		MaxPixels:         500000,
		MinRegionPixels:   100,
		MaxBoundaryPoints: 50,
	}
}

// Trace grows a region from the seed point and returns its outline as a
// simplified closed polygon.
//
// The algorithm is a magic-wand segmentation tuned for flat-colored plot
// drawings:
//
//  1. A breadth-first flood fill (4-connected) accepts pixels that are
//     within Tolerance of the seed color and whose local gradient
//     magnitude is at most EdgeThreshold. Image border pixels are treated
//     as maximal edges so the fill cannot escape the image.
//  2. Region pixels with at least one 4-neighbor outside the region form
//     the boundary set.
//  3. The boundary is ordered by angle around the region centroid. This is
//     an angular approximation rather than a contour trace: it yields a
//     clean ring for roughly star-convex blobs, which plot shapes are, and
//     may self-intersect on strongly concave regions.
//  4. The ring is downsampled to MaxBoundaryPoints and simplified with
//     Douglas-Peucker using epsilon = 2% of the larger bounding-box
//     dimension, making simplification scale-invariant.
//
// Fewer than 4 boundary points before or after simplification silently
// degrades to the region's bounding rectangle. A region below
// MinRegionPixels is an explicit failure (ErrRegionTooSmall) instead: the
// caller should ask the user to adjust the tolerance rather than receive a
// junk rectangle.
func Trace(img image.Image, seed geometry.Point, opts Options) ([]geometry.Point, error) {
	rgba := clone.AsRGBA(img)
	width := rgba.Bounds().Dx()
	height := rgba.Bounds().Dy()

	seedX := int(seed.X)
	seedY := int(seed.Y)
	if seedX < 0 || seedX >= width || seedY < 0 || seedY >= height {
		return nil, ErrSeedOutOfBounds
	}

	region, capped := floodFill(rgba, seedX, seedY, opts)
	if len(region.points) < opts.MinRegionPixels {
		if capped {
			return nil, ErrPixelCapExceeded
		}
		return nil, ErrRegionTooSmall
	}

	boundary := extractBoundary(region, width, height)
	if len(boundary) < 4 {
		return region.boundingRect(), nil
	}

	ring := sortByAngle(boundary)
	ring = downsample(ring, opts.MaxBoundaryPoints)

	box := geometry.BoundingBox(ring)
	epsilon := 0.02 * math.Max(box.Width(), box.Height())
	simplified := geometry.Simplify(ring, epsilon)

	if len(simplified) < 4 {
		return region.boundingRect(), nil
	}
	return geometry.CloseRing(simplified), nil
}

// region holds the accepted pixel set of a flood fill along with its
// bounding box. member is indexed y*width+x.
type region struct {
	points [][2]int
	member []bool
	width  int
	minX   int
	minY   int
	maxX   int
	maxY   int
}

func (r *region) boundingRect() []geometry.Point {
	rect := []geometry.Point{
		{X: float64(r.minX), Y: float64(r.minY)},
		{X: float64(r.maxX), Y: float64(r.minY)},
		{X: float64(r.maxX), Y: float64(r.maxY)},
		{X: float64(r.minX), Y: float64(r.maxY)},
	}
	return geometry.CloseRing(rect)
}

// floodFill grows the region breadth-first from the seed. The second
// return value reports whether the pixel cap cut the fill short.
func floodFill(rgba *image.RGBA, seedX, seedY int, opts Options) (*region, bool) {
	width := rgba.Bounds().Dx()
	height := rgba.Bounds().Dy()

	seedR, seedG, seedB := pixelRGB(rgba, seedX, seedY)

	visited := make([]bool, width*height)
	reg := &region{
		member: make([]bool, width*height),
		width:  width,
		minX:   seedX, maxX: seedX,
		minY: seedY, maxY: seedY,
	}

	queue := [][2]int{{seedX, seedY}}
	visited[seedY*width+seedX] = true
	capped := false

	for len(queue) > 0 {
		if len(reg.points) >= opts.MaxPixels {
			capped = true
			break
		}

		p := queue[0]
		queue = queue[1:]
		x, y := p[0], p[1]

		if edgeStrength(rgba, x, y) > opts.EdgeThreshold {
			continue
		}
		r, g, b := pixelRGB(rgba, x, y)
		dist := math.Abs(float64(r)-float64(seedR)) +
			math.Abs(float64(g)-float64(seedG)) +
			math.Abs(float64(b)-float64(seedB))
		if dist > opts.Tolerance {
			continue
		}

		reg.points = append(reg.points, p)
		reg.member[y*width+x] = true
		if x < reg.minX {
			reg.minX = x
		}
		if x > reg.maxX {
			reg.maxX = x
		}
		if y < reg.minY {
			reg.minY = y
		}
		if y > reg.maxY {
			reg.maxY = y
		}

		// 4-connected neighbors
		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := x+d[0], y+d[1]
			if nx < 0 || nx >= width || ny < 0 || ny >= height {
				continue
			}
			idx := ny*width + nx
			if visited[idx] {
				continue
			}
			visited[idx] = true
			queue = append(queue, [2]int{nx, ny})
		}
	}

	return reg, capped
}

// edgeStrength computes the central-difference gradient magnitude at (x, y):
// per-channel absolute differences are summed horizontally and vertically,
// and the strength is sqrt(gx² + gy²). Pixels on the image border are
// forced to the maximum (255) so they always act as stop boundaries.
func edgeStrength(rgba *image.RGBA, x, y int) float64 {
	width := rgba.Bounds().Dx()
	height := rgba.Bounds().Dy()

	if x == 0 || y == 0 || x == width-1 || y == height-1 {
		return 255
	}

	lr, lg, lb := pixelRGB(rgba, x-1, y)
	rr, rg, rb := pixelRGB(rgba, x+1, y)
	gx := math.Abs(float64(rr)-float64(lr)) +
		math.Abs(float64(rg)-float64(lg)) +
		math.Abs(float64(rb)-float64(lb))

	tr, tg, tb := pixelRGB(rgba, x, y-1)
	br, bg, bb := pixelRGB(rgba, x, y+1)
	gy := math.Abs(float64(br)-float64(tr)) +
		math.Abs(float64(bg)-float64(tg)) +
		math.Abs(float64(bb)-float64(tb))

	return math.Sqrt(gx*gx + gy*gy)
}

func pixelRGB(rgba *image.RGBA, x, y int) (uint8, uint8, uint8) {
	idx := rgba.PixOffset(rgba.Bounds().Min.X+x, rgba.Bounds().Min.Y+y)
	return rgba.Pix[idx], rgba.Pix[idx+1], rgba.Pix[idx+2]
}

// extractBoundary collects every region pixel that has at least one
// 4-neighbor outside the region (including out-of-image neighbors).
func extractBoundary(reg *region, width, height int) []geometry.Point {
	boundary := make([]geometry.Point, 0)
	for _, p := range reg.points {
		x, y := p[0], p[1]
		outside := false
		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := x+d[0], y+d[1]
			if nx < 0 || nx >= width || ny < 0 || ny >= height || !reg.member[ny*reg.width+nx] {
				outside = true
				break
			}
		}
		if outside {
			boundary = append(boundary, geometry.Point{X: float64(x), Y: float64(y)})
		}
	}
	return boundary
}

// sortByAngle orders boundary points by angle around their centroid,
// producing an approximate ring.
func sortByAngle(points []geometry.Point) []geometry.Point {
	c := geometry.Centroid(points)
	sorted := append([]geometry.Point{}, points...)
	sort.Slice(sorted, func(i, j int) bool {
		ai := math.Atan2(sorted[i].Y-c.Y, sorted[i].X-c.X)
		aj := math.Atan2(sorted[j].Y-c.Y, sorted[j].X-c.X)
		return ai < aj
	})
	return sorted
}

// downsample reduces a ring to at most max points by fixed striding.
func downsample(points []geometry.Point, max int) []geometry.Point {
	if len(points) <= max {
		return points
	}
	stride := (len(points) + max - 1) / max
	out := make([]geometry.Point, 0, max)
	for i := 0; i < len(points); i += stride {
		out = append(out, points[i])
	}
	return out
}
