// Package imaging provides pixel-level services for the annotation engine:
// the image repository that owns decoded plan bitmaps, polygon color
// sampling, and region cropping with optional upscaling.
//
// All operations work with standard Go image.Image values in a coordinate
// system where (0,0) is the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Thread Safety
//
// Repository is safe for concurrent use. The sampling and cropping
// functions are stateless and can run concurrently on the same (immutable)
// image, which the batch planner relies on when filling cell attributes in
// parallel.
//
// # Error Handling
//
// Sampling distinguishes two best-effort failure modes, an empty clamped
// region (ErrEmptyRegion) and a fully transparent one
// (ErrTransparentRegion), so that callers can fall back to a configured
// color instead of aborting label creation.
package imaging
