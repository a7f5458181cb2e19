package ocr

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract is a Recognizer backed by the system Tesseract installation
// via gosseract. The corresponding language data (e.g. "eng") must be
// installed on the system.
type Tesseract struct{}

// NewTesseract creates a Tesseract-backed recognizer.
func NewTesseract() *Tesseract {
	return &Tesseract{}
}

// Recognize runs Tesseract OCR over the bitmap and returns the full text
// plus word-level boxes.
//
// Tesseract needs a file path, so the bitmap is written to a temporary PNG
// that is removed when the call completes. The context is checked before
// the blocking recognition call and again before assembling results;
// cancellation between those points cannot interrupt Tesseract itself.
//
// If word-level bounding box extraction fails (which happens with some
// Tesseract configurations), the full text is still returned with an empty
// Words slice.
func (t *Tesseract) Recognize(ctx context.Context, img image.Image, language string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tmpFile, err := os.CreateTemp("", "ocr-cell-*.png")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(tmpFile, img); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("failed to encode temp image: %w", err)
	}
	tmpFile.Close()

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(tmpPath); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		// Word boxes are best-effort; the text alone is still useful.
		return &Result{FullText: text, Words: []Word{}}, nil
	}

	words := make([]Word, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		words = append(words, Word{
			Text:       box.Word,
			Confidence: float64(box.Confidence) / 100.0,
			Bounds: Bounds{
				X1: box.Box.Min.X,
				Y1: box.Box.Min.Y,
				X2: box.Box.Max.X,
				Y2: box.Box.Max.Y,
			},
		})
	}

	return &Result{FullText: text, Words: words}, nil
}
