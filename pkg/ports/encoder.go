package ports

import (
	"image"
)

// VideoEncoder abstracts clip encoding.
type VideoEncoder interface {
	// Begin starts a new output with the given dimensions and frame rate.
	Begin(width, height int, fps float64, opts EncoderOptions) error

	// EncodeFrame appends a frame to the output.
	EncodeFrame(img image.Image) error

	// End finalizes the output and returns the encoded file bytes.
	End() ([]byte, error)

	// Abort discards an output started with Begin.
	Abort()
}

// EncoderOptions configures clip encoding.
type EncoderOptions struct {
	Container string // mp4, mov or avi
	Quality   int    // CRF 0-51, 0 selects the encoder default
}
