package teaui

import (
	"image"
	"image/color"
	"testing"
)

func TestPreview(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 20; x < 40; x++ {
			img.Set(x, y, color.White)
		}
	}

	lines := Preview(img, 20)
	if len(lines) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(lines))
	}
	for _, line := range lines {
		if len(line) != 20 {
			t.Fatalf("expected 20 columns, got %d", len(line))
		}
		if line[0] != ' ' || line[19] != '@' {
			t.Errorf("expected dark left and bright right, got %q", line)
		}
	}
}

func TestPreview_Empty(t *testing.T) {
	if Preview(nil, 10) != nil {
		t.Error("expected nil for nil image")
	}
	if Preview(image.NewRGBA(image.Rect(0, 0, 10, 10)), 0) != nil {
		t.Error("expected nil for zero width")
	}
}
