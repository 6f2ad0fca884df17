package ports

import (
	"context"
	"image"
)

// VideoInfo describes a probed video source.
type VideoInfo struct {
	Path       string
	FrameCount int
	FrameRate  float64 // frames per second
	Width      int
	Height     int
	Codec      string
	Container  string // lower-case extension without the dot, e.g. "mp4"
}

// DurationSeconds returns FrameCount / FrameRate, or 0 when the rate is unknown.
func (i VideoInfo) DurationSeconds() float64 {
	if i.FrameRate <= 0 {
		return 0
	}
	return float64(i.FrameCount) / i.FrameRate
}

// Prober reads video metadata without decoding frames.
type Prober interface {
	Probe(ctx context.Context, path string) (VideoInfo, error)
}

// VideoSource is a frame-addressable decoded video.
//
// Frame gives random access for display. Seek and Next give sequential
// access for copying; Next returns io.EOF once the decoder runs out of frames.
type VideoSource interface {
	Info() VideoInfo
	Frame(index int) (image.Image, error)
	Seek(index int) error
	Next() (image.Image, error)
	Close() error
}

// VideoOpener opens video sources.
type VideoOpener interface {
	Open(ctx context.Context, path string) (VideoSource, error)
}
