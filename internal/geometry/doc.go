// Package geometry provides the point and polygon math underlying the
// annotation engine: bounding boxes, shoelace area, vertex centroids,
// point-to-line distance, and Douglas-Peucker simplification.
//
// All functions are pure and operate on slices of Point in image pixel
// space ((0,0) top-left, Y increasing downward).
//
// # Ring Convention
//
// Stored polygons are "closed" rings: the first point is repeated as the
// last. Area treats its input as cyclic and therefore accepts either form;
// Simplify expects the open form (use OpenRing first) and closing is applied
// once, at label-creation time, with CloseRing.
//
// # Degenerate Input
//
// Rather than returning errors, functions document a defined result for
// degenerate input: BoundingBox returns nil for an empty slice, Area returns
// 0 below 3 points, and PerpendicularDistance falls back to point distance
// when the line segment is a single point.
package geometry
