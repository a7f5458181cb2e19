// Package label holds the annotation data model: polygon labels, the
// per-image collections that own them, and the JSON document the
// surrounding application persists and exchanges.
//
// Coordinates serialize as plain floating-point JSON numbers; the
// document shape is {"images": {"<name>": {name, width, height, labels,
// imageUri?}}} and round-trips losslessly.
package label
