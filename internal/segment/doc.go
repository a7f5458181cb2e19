// Package segment implements the magic-wand region segmenter: an
// edge-aware flood fill that turns a single click on a site plan into a
// simplified closed polygon around the clicked plot.
//
// The segmenter is tuned for clean vector-like drawings with flat fills
// and crisp borders. It is not a general photographic segmenter: the
// angular boundary ordering assumes roughly star-convex regions, and
// strongly concave plots may produce self-intersecting rings.
//
// # Failure vs. Fallback
//
// Two degradation paths are deliberately distinct. A region that never
// reaches the minimum pixel count is an explicit error (ErrRegionTooSmall)
// so the caller can prompt for a different tolerance. A region whose
// boundary cannot form a useful ring silently degrades to its bounding
// rectangle, which is still a serviceable label outline.
//
// # Resource Safety
//
// The flood fill accepts at most Options.MaxPixels pixels. This cap exists
// so a pathological seed (for example, clicking the uniform background of
// a huge scan) cannot grow unbounded; hitting it without a valid region
// yields ErrPixelCapExceeded.
package segment
