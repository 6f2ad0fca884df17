package teaui

import (
	"image"
	"strings"

	"golang.org/x/image/draw"
)

// ramp maps luminance to characters, darkest first.
const ramp = " .:-=+*#%@"

// Preview renders img as text art width columns wide. Terminal cells are
// about twice as tall as wide, so each row covers two pixel rows.
func Preview(img image.Image, width int) []string {
	if img == nil || width <= 0 {
		return nil
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil
	}
	height := b.Dy() * width / b.Dx() / 2
	if height < 1 {
		height = 1
	}

	small := image.NewGray(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(small, small.Bounds(), img, b, draw.Src, nil)

	lines := make([]string, height)
	var sb strings.Builder
	for y := 0; y < height; y++ {
		sb.Reset()
		for x := 0; x < width; x++ {
			level := int(small.GrayAt(x, y).Y) * (len(ramp) - 1) / 255
			sb.WriteByte(ramp[level])
		}
		lines[y] = sb.String()
	}
	return lines
}
