package ocr

import (
	"context"
	"image"
)

// Bounds represents a rectangular bounding box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// Word represents a recognized word with its location and confidence.
type Word struct {
	// Text is the recognized word content.
	Text string `json:"text"`

	// Confidence is the recognition confidence score (0.0 to 1.0).
	Confidence float64 `json:"confidence"`

	// Bounds is the bounding box around this word in the input bitmap.
	Bounds Bounds `json:"bounds"`
}

// Result contains the complete output of a recognition call.
type Result struct {
	// FullText is all recognized text as a single string with original
	// spacing and newlines.
	FullText string `json:"full_text"`

	// Words contains individual words with bounding boxes and confidence
	// scores. May be empty if word-level extraction fails; FullText is
	// still populated in that case.
	Words []Word `json:"words"`
}

// Recognizer is the text-recognition collaborator the engine depends on.
//
// The engine treats recognition as a black box: it hands over a bitmap and
// a language hint and receives text plus word boxes. Implementations are
// expected to be expensive, blocking, and fallible: callers pass a
// context and treat failures as "no result" for the attribute being
// derived, never as a hard failure of the surrounding flow.
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image, language string) (*Result, error)
}
