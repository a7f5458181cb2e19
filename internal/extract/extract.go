package extract

import (
	"context"
	"errors"
	"image"
	"regexp"
	"strconv"
	"strings"

	"github.com/planmark/siteplan-mcp/internal/geometry"
	"github.com/planmark/siteplan-mcp/internal/imaging"
	"github.com/planmark/siteplan-mcp/internal/ocr"
)

// ErrEmptyPolygon indicates the cell polygon had no points to crop by.
var ErrEmptyPolygon = errors.New("cell polygon is empty")

// upscaleFactor is applied to the cropped cell before recognition.
// Tesseract reads the small lettering on plan sheets far more reliably
// at double magnification.
const upscaleFactor = 2.0

// Extractor reads a numeric area value (square meters) out of a plot cell
// using the OCR collaborator plus a layered disambiguation heuristic.
type Extractor struct {
	// OCR performs the actual text recognition.
	OCR ocr.Recognizer

	// Language is the recognition language hint. Defaults to "eng".
	Language string
}

// New creates an Extractor using the given recognizer and English
// recognition.
func New(rec ocr.Recognizer) *Extractor {
	return &Extractor{OCR: rec, Language: "eng"}
}

// candidate is one possible area reading pulled from the recognized text.
// Candidates only live inside a single Area call; they are never persisted.
type candidate struct {
	value      float64
	hasDecimal bool
	hasUnit    bool
	text       string
}

// Candidate tiers, in strict priority order. Each expression is matched
// against the full recognized text; the first tier with any candidate wins.
var (
	// A number immediately followed by an area-unit token, including the
	// Arabic unit spellings found on bilingual plan sheets.
	unitPattern = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(?:m²|m2|sqm|sq\.?\s?m|م٢|م2|متر\s?مربع)`)

	// A decimal-point number on its own.
	decimalPattern = regexp.MustCompile(`(\d+)\.(\d+)`)

	// A number where OCR likely misread the decimal separator as a comma,
	// space, or hyphen; reconstructed as int.digit.
	misreadPattern = regexp.MustCompile(`(\d+)[,\s-](\d)`)

	// A bare integer of 2-5 digits.
	barePattern = regexp.MustCompile(`\b(\d{2,5})\b`)
)

// Area extracts a single numeric area value from the cell covered by
// polygon.
//
// The cell is cropped to the polygon's bounding box, upscaled 2x with
// Lanczos resampling, and handed to the OCR collaborator. The recognized
// text is then searched by four tiers of decreasing reliability:
//
//  1. A number directly followed by a unit token ("240 m²", "240.0 sqm"),
//     accepted in [50, 10000].
//  2. A decimal number ("240.5"), accepted in [50, 10000].
//  3. A number whose decimal separator was likely misread as a comma,
//     space, or hyphen ("240,5" -> 240.5), accepted in [50, 1000].
//  4. Bare 2-5 digit integers. Values within ±2 of expectedHouseNumber are
//     assumed to be the house number itself and skipped. A trailing-zero
//     value in [1000, 100000] whose tenth lands in [100, 1000] is treated
//     as a dropped decimal point ("1600" -> 160.0), a correction tuned to
//     the 100-1000 sqm plots this system annotates, not general OCR
//     repair. Survivors in [100, 10000] compete and the largest wins,
//     since plot areas dominate house numbers in this domain.
//
// expectedHouseNumber of 0 disables the house-number filter.
//
// found is false when no tier yields a candidate; callers must leave the
// area unset, never default it to zero. An error is returned only for an
// empty polygon or a failed crop/recognition; callers treat those the same
// as not-found when filling optional attributes.
func (e *Extractor) Area(ctx context.Context, img image.Image, polygon []geometry.Point, expectedHouseNumber int) (value float64, found bool, err error) {
	box := geometry.BoundingBox(polygon)
	if box == nil {
		return 0, false, ErrEmptyPolygon
	}

	cell, err := imaging.CropRegion(img, *box, upscaleFactor)
	if err != nil {
		return 0, false, err
	}

	language := e.Language
	if language == "" {
		language = "eng"
	}
	res, err := e.OCR.Recognize(ctx, cell, language)
	if err != nil {
		return 0, false, err
	}

	text := res.FullText
	if strings.TrimSpace(text) == "" {
		parts := make([]string, 0, len(res.Words))
		for _, w := range res.Words {
			parts = append(parts, w.Text)
		}
		text = strings.Join(parts, " ")
	}

	if c, ok := matchUnit(text); ok {
		return c.value, true, nil
	}
	if c, ok := matchDecimal(text); ok {
		return c.value, true, nil
	}
	if c, ok := matchMisreadSeparator(text); ok {
		return c.value, true, nil
	}
	if c, ok := matchBareInteger(text, expectedHouseNumber); ok {
		return c.value, true, nil
	}
	return 0, false, nil
}

// matchUnit finds the first unit-suffixed number in [50, 10000].
func matchUnit(text string) (candidate, bool) {
	for _, m := range unitPattern.FindAllStringSubmatch(text, -1) {
		raw := strings.ReplaceAll(m[1], ",", ".")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		if v >= 50 && v <= 10000 {
			return candidate{value: v, hasDecimal: strings.Contains(raw, "."), hasUnit: true, text: m[0]}, true
		}
	}
	return candidate{}, false
}

// matchDecimal finds the first decimal-point number in [50, 10000].
func matchDecimal(text string) (candidate, bool) {
	for _, m := range decimalPattern.FindAllStringSubmatch(text, -1) {
		v, err := strconv.ParseFloat(m[1]+"."+m[2], 64)
		if err != nil {
			continue
		}
		if v >= 50 && v <= 10000 {
			return candidate{value: v, hasDecimal: true, text: m[0]}, true
		}
	}
	return candidate{}, false
}

// matchMisreadSeparator reconstructs "int<sep>digit" sequences as
// int.digit, accepting [50, 1000].
func matchMisreadSeparator(text string) (candidate, bool) {
	for _, m := range misreadPattern.FindAllStringSubmatch(text, -1) {
		v, err := strconv.ParseFloat(m[1]+"."+m[2], 64)
		if err != nil {
			continue
		}
		if v >= 50 && v <= 1000 {
			return candidate{value: v, hasDecimal: true, text: m[0]}, true
		}
	}
	return candidate{}, false
}

// matchBareInteger applies the house-number filter and implied-decimal
// correction, then picks the largest surviving candidate in [100, 10000].
func matchBareInteger(text string, expectedHouseNumber int) (candidate, bool) {
	var best candidate
	var ok bool

	for _, m := range barePattern.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if expectedHouseNumber != 0 && abs(n-expectedHouseNumber) <= 2 {
			continue
		}

		v := float64(n)
		if n%10 == 0 && n >= 1000 && n <= 100000 {
			if tenth := v / 10; tenth >= 100 && tenth <= 1000 {
				v = tenth
			}
		}
		if v < 100 || v > 10000 {
			continue
		}
		if !ok || v > best.value {
			best = candidate{value: v, text: m[0]}
			ok = true
		}
	}
	return best, ok
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
