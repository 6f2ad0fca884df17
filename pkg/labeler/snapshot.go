package labeler

import (
	"image"
	"image/color"

	"github.com/user/framelabel/pkg/ports"
)

const (
	snapshotFooter      = 44
	snapshotBar         = 6
	snapshotPadding     = 8
	snapshotFontSize    = 16
	snapshotMinFontSize = 6
)

// SnapshotTheme defines snapshot styling.
type SnapshotTheme struct {
	BackgroundColor color.Color
	TextColor       color.Color
	BarColor        color.Color
	BarFillColor    color.Color
}

// DefaultSnapshotTheme returns a default snapshot theme.
func DefaultSnapshotTheme() SnapshotTheme {
	return SnapshotTheme{
		BackgroundColor: color.RGBA{R: 30, G: 30, B: 30, A: 255},
		TextColor:       color.White,
		BarColor:        color.RGBA{R: 60, G: 60, B: 60, A: 255},
		BarFillColor:    color.RGBA{R: 76, G: 175, B: 80, A: 255},
	}
}

// Snapshotter draws a frame with its time readout and scrub position.
type Snapshotter struct {
	renderer ports.Renderer
	sink     ports.SnapshotSink
	width    int
	theme    SnapshotTheme
}

// NewSnapshotter creates a Snapshotter. A width of 0 keeps the frame width.
func NewSnapshotter(renderer ports.Renderer, sink ports.SnapshotSink, width int) *Snapshotter {
	return &Snapshotter{
		renderer: renderer,
		sink:     sink,
		width:    width,
		theme:    DefaultSnapshotTheme(),
	}
}

// Enabled reports whether snapshots are kept.
func (s *Snapshotter) Enabled() bool {
	return s.sink.Enabled()
}

// Compose scales frame to the configured width and draws the scrub bar and
// readout underneath. The readout shrinks to fit narrow frames.
func (s *Snapshotter) Compose(frame image.Image, readout string, current, last int) image.Image {
	b := frame.Bounds()
	w, h := b.Dx(), b.Dy()
	if s.width > 0 && s.width != w && w > 0 {
		h = h * s.width / w
		w = s.width
		frame = s.renderer.ResizeImage(frame, w, h)
	}

	canvas := s.renderer.CreateCanvas(w, h+snapshotFooter, s.theme.BackgroundColor)
	canvas.DrawImage(frame, 0, 0)

	barY := h + 4
	radius := snapshotBar / 2
	canvas.DrawRoundedRect(0, barY, w, snapshotBar, radius, s.theme.BarColor)
	if last > 0 && current > 0 {
		fill := w * current / last
		canvas.DrawRoundedRect(0, barY, fill, snapshotBar, radius, s.theme.BarFillColor)
	}

	style := ports.TextStyle{
		FontSize: snapshotFontSize,
		Color:    s.theme.TextColor,
		Align:    ports.AlignCenter,
	}
	room := float64(w - 2*snapshotPadding)
	if tw, _ := canvas.MeasureText(readout, style); tw > room {
		style.FontSize = snapshotFontSize * room / tw
		if style.FontSize < snapshotMinFontSize {
			style.FontSize = snapshotMinFontSize
		}
	}
	textY := barY + snapshotBar + (snapshotFooter-4-snapshotBar)/2
	canvas.DrawText(readout, w/2, textY, style)

	return canvas.ToImage()
}

// Save stores img under name and returns the written path.
func (s *Snapshotter) Save(name string, img image.Image) (string, error) {
	return s.sink.SaveSnapshot(name, img)
}

// WithTheme replaces the snapshot colors.
func (s *Snapshotter) WithTheme(theme SnapshotTheme) *Snapshotter {
	s.theme = theme
	return s
}
