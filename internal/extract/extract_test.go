package extract

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/planmark/siteplan-mcp/internal/geometry"
	"github.com/planmark/siteplan-mcp/internal/ocr"
)

// fakeRecognizer returns canned OCR output and records the bitmap it was
// handed.
type fakeRecognizer struct {
	result   *ocr.Result
	err      error
	gotWidth int
}

func (f *fakeRecognizer) Recognize(_ context.Context, img image.Image, _ string) (*ocr.Result, error) {
	f.gotWidth = img.Bounds().Dx()
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func testImage() image.Image {
	return image.NewNRGBA(image.Rect(0, 0, 200, 200))
}

func cellPolygon() []geometry.Point {
	return []geometry.Point{{X: 10, Y: 10}, {X: 110, Y: 10}, {X: 110, Y: 60}, {X: 10, Y: 60}}
}

func extractText(t *testing.T, text string, expectedHouseNumber int) (float64, bool) {
	t.Helper()

	rec := &fakeRecognizer{result: &ocr.Result{FullText: text}}
	e := New(rec)

	v, found, err := e.Area(context.Background(), testImage(), cellPolygon(), expectedHouseNumber)
	if err != nil {
		t.Fatalf("Area failed: %v", err)
	}
	return v, found
}

func TestArea_UnitTier(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"squared unit", "240.0 m²", 240.0},
		{"plain m2", "Plot 12 240 m2", 240.0},
		{"sqm", "355 sqm", 355.0},
		{"spaced sq m", "120 sq m", 120.0},
		{"arabic unit", "٤ 250 م2", 250.0},
		{"comma decimal before unit", "240,5 m²", 240.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, found := extractText(t, tt.text, 0)
			if !found {
				t.Fatal("expected a value")
			}
			if v != tt.want {
				t.Errorf("got %v, want %v", v, tt.want)
			}
		})
	}
}

func TestArea_UnitTierRange(t *testing.T) {
	// Unit-suffixed values outside [50, 10000] are rejected; here nothing
	// else matches either.
	if _, found := extractText(t, "12 m²", 0); found {
		t.Error("expected out-of-range unit value to be rejected")
	}
}

func TestArea_DecimalTier(t *testing.T) {
	v, found := extractText(t, "462.5", 0)
	if !found || v != 462.5 {
		t.Errorf("got (%v, %v), want (462.5, true)", v, found)
	}
}

func TestArea_MisreadSeparatorTier(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"comma", "240,5", 240.5},
		{"hyphen", "240-5", 240.5},
		{"space", "240 5", 240.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, found := extractText(t, tt.text, 0)
			if !found || v != tt.want {
				t.Errorf("got (%v, %v), want (%v, true)", v, found, tt.want)
			}
		})
	}
}

func TestArea_BareIntegerImpliedDecimal(t *testing.T) {
	// OCR dropped the decimal point of "160.0": the trailing-zero
	// correction recovers 160.
	v, found := extractText(t, "1600", 0)
	if !found || v != 160.0 {
		t.Errorf("got (%v, %v), want (160, true)", v, found)
	}
}

func TestArea_BareIntegerPlain(t *testing.T) {
	v, found := extractText(t, "456", 0)
	if !found || v != 456.0 {
		t.Errorf("got (%v, %v), want (456, true)", v, found)
	}
}

func TestArea_HouseNumberFiltered(t *testing.T) {
	// The only number present is the expected house number; it must not
	// be mistaken for an area.
	if _, found := extractText(t, "7", 7); found {
		t.Error("expected house number to be filtered out")
	}
	if _, found := extractText(t, "105", 104); found {
		t.Error("expected value within ±2 of house number to be filtered")
	}
}

func TestArea_BareIntegerPicksLargest(t *testing.T) {
	// House number 120 and area 460 share the cell; the larger value wins.
	v, found := extractText(t, "120/460", 0)
	if !found || v != 460.0 {
		t.Errorf("got (%v, %v), want (460, true)", v, found)
	}
}

func TestArea_TierPriority(t *testing.T) {
	// A unit-suffixed number beats a larger bare integer later in the text.
	v, found := extractText(t, "250 m² 4600", 0)
	if !found || v != 250.0 {
		t.Errorf("got (%v, %v), want (250, true)", v, found)
	}
}

func TestArea_NoneFound(t *testing.T) {
	for _, text := range []string{"", "no numbers here", "7 9"} {
		if _, found := extractText(t, text, 0); found {
			t.Errorf("text %q: expected no value", text)
		}
	}
}

func TestArea_WordsFallback(t *testing.T) {
	// Empty full text with word-level results still yields a reading.
	rec := &fakeRecognizer{result: &ocr.Result{
		FullText: "  ",
		Words: []ocr.Word{
			{Text: "240"},
			{Text: "m²"},
		},
	}}
	e := New(rec)

	v, found, err := e.Area(context.Background(), testImage(), cellPolygon(), 0)
	if err != nil {
		t.Fatalf("Area failed: %v", err)
	}
	if !found || v != 240.0 {
		t.Errorf("got (%v, %v), want (240, true)", v, found)
	}
}

func TestArea_UpscalesCrop(t *testing.T) {
	rec := &fakeRecognizer{result: &ocr.Result{FullText: "240 m²"}}
	e := New(rec)

	if _, _, err := e.Area(context.Background(), testImage(), cellPolygon(), 0); err != nil {
		t.Fatalf("Area failed: %v", err)
	}
	// Cell is 100px wide; the recognizer must see it at 2x.
	if rec.gotWidth != 200 {
		t.Errorf("recognizer saw width %d, want 200", rec.gotWidth)
	}
}

func TestArea_EmptyPolygon(t *testing.T) {
	e := New(&fakeRecognizer{result: &ocr.Result{}})

	if _, _, err := e.Area(context.Background(), testImage(), nil, 0); err != ErrEmptyPolygon {
		t.Errorf("got %v, want ErrEmptyPolygon", err)
	}
}

func TestArea_RecognizerError(t *testing.T) {
	wantErr := errors.New("ocr exploded")
	e := New(&fakeRecognizer{err: wantErr})

	_, found, err := e.Area(context.Background(), testImage(), cellPolygon(), 0)
	if !errors.Is(err, wantErr) {
		t.Errorf("got %v, want wrapped recognizer error", err)
	}
	if found {
		t.Error("found must be false on recognizer failure")
	}
}
