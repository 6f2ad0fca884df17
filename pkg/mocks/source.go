package mocks

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/user/framelabel/pkg/ports"
)

// VideoSource is an in-memory ports.VideoSource. Frame i is a 4x4 image
// whose red channel holds i modulo 256.
type VideoSource struct {
	info   ports.VideoInfo
	pos    int
	Closed bool

	// Recorded calls for verification
	FrameCalls []int
	Seeks      []int
}

// NewVideoSource creates a source with the given frame count and rate.
func NewVideoSource(path string, frameCount int, fps float64) *VideoSource {
	return &VideoSource{info: ports.VideoInfo{
		Path:       path,
		FrameCount: frameCount,
		FrameRate:  fps,
		Width:      4,
		Height:     4,
		Codec:      "h264",
		Container:  "mp4",
	}}
}

func (m *VideoSource) Info() ports.VideoInfo {
	return m.info
}

func (m *VideoSource) Frame(index int) (image.Image, error) {
	m.FrameCalls = append(m.FrameCalls, index)
	if index < 0 || index >= m.info.FrameCount {
		return nil, fmt.Errorf("frame %d out of range", index)
	}
	return frameImage(index), nil
}

func (m *VideoSource) Seek(index int) error {
	m.Seeks = append(m.Seeks, index)
	m.pos = index
	return nil
}

func (m *VideoSource) Next() (image.Image, error) {
	if m.pos < 0 || m.pos >= m.info.FrameCount {
		return nil, io.EOF
	}
	img := frameImage(m.pos)
	m.pos++
	return img, nil
}

func (m *VideoSource) Close() error {
	m.Closed = true
	return nil
}

func frameImage(index int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.RGBA{R: uint8(index % 256), A: 255})
	return img
}

var _ ports.VideoSource = (*VideoSource)(nil)

// VideoOpener serves registered sources by path.
type VideoOpener struct {
	Sources map[string]*VideoSource
	Errors  map[string]error

	// Recorded calls for verification
	Opened []string
}

// NewVideoOpener creates an empty opener.
func NewVideoOpener() *VideoOpener {
	return &VideoOpener{
		Sources: make(map[string]*VideoSource),
		Errors:  make(map[string]error),
	}
}

// Add registers a source under its path and returns it.
func (m *VideoOpener) Add(src *VideoSource) *VideoSource {
	m.Sources[src.info.Path] = src
	return src
}

func (m *VideoOpener) Open(ctx context.Context, path string) (ports.VideoSource, error) {
	m.Opened = append(m.Opened, path)
	if err, ok := m.Errors[path]; ok {
		return nil, err
	}
	src, ok := m.Sources[path]
	if !ok {
		return nil, fmt.Errorf("no such video: %s", path)
	}
	src.pos = 0
	src.Closed = false
	return src, nil
}

var _ ports.VideoOpener = (*VideoOpener)(nil)
