package slicer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ideamans/go-l10n"
	"github.com/user/framelabel/pkg/ports"
)

// Clip is the outcome of copying one ClipRequest.
type Clip struct {
	Request ClipRequest
	Frames  int    // frames actually copied
	Data    []byte // encoded file, nil when no frames were copied
}

// Truncated reports whether the source ran out before the requested end.
func (c Clip) Truncated() bool {
	return c.Frames < c.Request.Len()
}

// Extractor copies frame ranges from a source into encoded clips.
type Extractor struct {
	encoder ports.VideoEncoder
	logger  ports.Logger
}

// NewExtractor creates an Extractor that encodes through encoder.
func NewExtractor(encoder ports.VideoEncoder, logger ports.Logger) *Extractor {
	return &Extractor{encoder: encoder, logger: logger}
}

// Extract seeks source to req.Start and copies frames up to req.End inclusive.
// Running out of frames ends the clip early without an error. A clip that
// copies no frames is returned with nil Data and the encoder is never started.
func (e *Extractor) Extract(ctx context.Context, source ports.VideoSource, req ClipRequest, opts ports.EncoderOptions) (Clip, error) {
	clip := Clip{Request: req}
	if err := source.Seek(req.Start); err != nil {
		return clip, fmt.Errorf("seek to frame %d: %w", req.Start, err)
	}

	info := source.Info()
	started := false
	for frame := req.Start; frame <= req.End; frame++ {
		select {
		case <-ctx.Done():
			if started {
				e.encoder.Abort()
			}
			return clip, ctx.Err()
		default:
		}

		img, err := source.Next()
		if errors.Is(err, io.EOF) {
			e.logger.Debug(l10n.F("Source ended at frame %d", frame))
			break
		}
		if err != nil {
			if started {
				e.encoder.Abort()
			}
			return clip, fmt.Errorf("read frame %d: %w", frame, err)
		}

		if !started {
			width, height := info.Width, info.Height
			if width <= 0 || height <= 0 {
				b := img.Bounds()
				width, height = b.Dx(), b.Dy()
			}
			if err := e.encoder.Begin(width, height, info.FrameRate, opts); err != nil {
				return clip, fmt.Errorf("begin clip: %w", err)
			}
			started = true
		}
		if err := e.encoder.EncodeFrame(img); err != nil {
			e.encoder.Abort()
			return clip, fmt.Errorf("encode frame %d: %w", frame, err)
		}
		clip.Frames++
	}

	if !started {
		return clip, nil
	}
	data, err := e.encoder.End()
	if err != nil {
		return clip, fmt.Errorf("finish clip: %w", err)
	}
	clip.Data = data
	return clip, nil
}
