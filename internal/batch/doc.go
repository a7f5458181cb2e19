// Package batch plans grids of plot labels over a rectangular selection.
//
// A selection rectangle is subdivided into rows x cols cells by boundary
// fractions (explicit dividers or equal splits), each cell becomes a
// rectangular label, and house numbers are assigned by walking the grid in
// one of several orders: row-major in either direction, serpentine, split
// even/odd rows, or column-major. Per-cell fill color and printed area can
// be detected from the underlying image concurrently.
package batch
