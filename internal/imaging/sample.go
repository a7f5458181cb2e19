package imaging

import (
	"errors"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/planmark/siteplan-mcp/internal/geometry"
)

var (
	// ErrEmptyRegion indicates the polygon's bounding box, clamped to the
	// image, has no pixels to sample.
	ErrEmptyRegion = errors.New("sample region is empty")

	// ErrTransparentRegion indicates no pixel in the region passed the
	// opacity threshold.
	ErrTransparentRegion = errors.New("sample region is fully transparent")
)

const (
	// sampleStride is the pixel step used when averaging. Sampling every
	// 4th pixel on each axis is indistinguishable from a full scan on the
	// flat-colored plots this targets, at 1/16th the cost.
	sampleStride = 4

	// alphaThreshold is the exclusive opacity cutoff: only pixels with
	// alpha strictly greater than this contribute to the average.
	alphaThreshold = 128
)

// AverageColor estimates the fill color of a polygon-labelled plot.
//
// The estimate is the mean color over the polygon's bounding box, clamped to
// the image, sampling every 4th pixel and ignoring near-transparent pixels
// (alpha <= 128). Channel means are rounded to the nearest integer and
// formatted as a hex string "#rrggbb".
//
// Note that this deliberately samples the bounding box rather than the
// polygon interior. For the roughly rectangular plots of a site plan the
// box is dominated by interior pixels and the coarseness is acceptable;
// rasterizing a true polygon mask would be the stricter alternative.
//
// Returns ErrEmptyRegion when the clamped box has no pixels and
// ErrTransparentRegion when every sampled pixel is below the opacity
// threshold.
func AverageColor(img image.Image, polygon []geometry.Point) (string, error) {
	box := geometry.BoundingBox(polygon)
	if box == nil {
		return "", ErrEmptyRegion
	}

	// Clone normalizes to NRGBA with bounds anchored at (0,0), giving
	// straight (non-premultiplied) 8-bit channels for direct buffer access.
	nrgba := imaging.Clone(img)
	width := nrgba.Bounds().Dx()
	height := nrgba.Bounds().Dy()

	minX := clampInt(int(math.Floor(box.MinX)), 0, width)
	maxX := clampInt(int(math.Ceil(box.MaxX)), 0, width)
	minY := clampInt(int(math.Floor(box.MinY)), 0, height)
	maxY := clampInt(int(math.Ceil(box.MaxY)), 0, height)

	if maxX-minX <= 0 || maxY-minY <= 0 {
		return "", ErrEmptyRegion
	}

	var sumR, sumG, sumB, count int
	for y := minY; y < maxY; y += sampleStride {
		row := y * nrgba.Stride
		for x := minX; x < maxX; x += sampleStride {
			idx := row + x*4
			if nrgba.Pix[idx+3] <= alphaThreshold {
				continue
			}
			sumR += int(nrgba.Pix[idx])
			sumG += int(nrgba.Pix[idx+1])
			sumB += int(nrgba.Pix[idx+2])
			count++
		}
	}

	if count == 0 {
		return "", ErrTransparentRegion
	}

	avg := colorful.Color{
		R: math.Round(float64(sumR)/float64(count)) / 255,
		G: math.Round(float64(sumG)/float64(count)) / 255,
		B: math.Round(float64(sumB)/float64(count)) / 255,
	}
	return avg.Hex(), nil
}

// ParseHex validates a hex color string like "#1a2b3c" and returns its
// normalized lowercase form. Used to vet configured fallback colors.
func ParseHex(s string) (string, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return "", err
	}
	return c.Hex(), nil
}

// clampInt constrains v to the range [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
