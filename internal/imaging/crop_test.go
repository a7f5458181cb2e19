package imaging

import (
	"image/color"
	"testing"

	"github.com/planmark/siteplan-mcp/internal/geometry"
)

func TestCropRegion(t *testing.T) {
	img := fillImage(100, 80, color.NRGBA{R: 9, G: 9, B: 9, A: 255})

	cropped, err := CropRegion(img, geometry.Rect{MinX: 10, MinY: 20, MaxX: 60, MaxY: 50}, 1.0)
	if err != nil {
		t.Fatalf("CropRegion failed: %v", err)
	}
	if cropped.Bounds().Dx() != 50 || cropped.Bounds().Dy() != 30 {
		t.Errorf("got %dx%d, want 50x30", cropped.Bounds().Dx(), cropped.Bounds().Dy())
	}
}

func TestCropRegion_Upscale(t *testing.T) {
	img := fillImage(100, 80, color.NRGBA{R: 9, G: 9, B: 9, A: 255})

	cropped, err := CropRegion(img, geometry.Rect{MinX: 0, MinY: 0, MaxX: 40, MaxY: 20}, 2.0)
	if err != nil {
		t.Fatalf("CropRegion failed: %v", err)
	}
	if cropped.Bounds().Dx() != 80 || cropped.Bounds().Dy() != 40 {
		t.Errorf("2x upscale: got %dx%d, want 80x40", cropped.Bounds().Dx(), cropped.Bounds().Dy())
	}
}

func TestCropRegion_ClampsToBounds(t *testing.T) {
	img := fillImage(50, 50, color.NRGBA{A: 255})

	cropped, err := CropRegion(img, geometry.Rect{MinX: -10, MinY: -10, MaxX: 200, MaxY: 200}, 1.0)
	if err != nil {
		t.Fatalf("CropRegion failed: %v", err)
	}
	if cropped.Bounds().Dx() != 50 || cropped.Bounds().Dy() != 50 {
		t.Errorf("got %dx%d, want 50x50", cropped.Bounds().Dx(), cropped.Bounds().Dy())
	}
}

func TestCropRegion_EmptyAfterClamp(t *testing.T) {
	img := fillImage(50, 50, color.NRGBA{A: 255})

	if _, err := CropRegion(img, geometry.Rect{MinX: 100, MinY: 100, MaxX: 120, MaxY: 120}, 1.0); err == nil {
		t.Error("expected error for region outside image")
	}
}

func TestEncodePNGBase64(t *testing.T) {
	img := fillImage(8, 8, color.NRGBA{R: 255, A: 255})

	s, err := EncodePNGBase64(img)
	if err != nil {
		t.Fatalf("EncodePNGBase64 failed: %v", err)
	}
	if len(s) == 0 {
		t.Error("empty base64 output")
	}
}
