package mocks

import (
	"image"

	"github.com/user/framelabel/pkg/ports"
)

// VideoEncoder is a mock implementation of ports.VideoEncoder.
type VideoEncoder struct {
	BeginFunc       func(width, height int, fps float64, opts ports.EncoderOptions) error
	EncodeFrameFunc func(img image.Image) error
	EndFunc         func() ([]byte, error)

	// Recorded calls for verification
	Outputs []*EncodedOutput
	Aborted int
}

// EncodedOutput records one Begin..End cycle.
type EncodedOutput struct {
	Width   int
	Height  int
	FPS     float64
	Options ports.EncoderOptions
	Frames  int
	Ended   bool
}

// Last returns the most recent output, or nil.
func (m *VideoEncoder) Last() *EncodedOutput {
	if len(m.Outputs) == 0 {
		return nil
	}
	return m.Outputs[len(m.Outputs)-1]
}

func (m *VideoEncoder) Begin(width, height int, fps float64, opts ports.EncoderOptions) error {
	if m.BeginFunc != nil {
		if err := m.BeginFunc(width, height, fps, opts); err != nil {
			return err
		}
	}
	m.Outputs = append(m.Outputs, &EncodedOutput{Width: width, Height: height, FPS: fps, Options: opts})
	return nil
}

func (m *VideoEncoder) EncodeFrame(img image.Image) error {
	if m.EncodeFrameFunc != nil {
		if err := m.EncodeFrameFunc(img); err != nil {
			return err
		}
	}
	if out := m.Last(); out != nil {
		out.Frames++
	}
	return nil
}

func (m *VideoEncoder) End() ([]byte, error) {
	if out := m.Last(); out != nil {
		out.Ended = true
	}
	if m.EndFunc != nil {
		return m.EndFunc()
	}
	return []byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p'}, nil
}

func (m *VideoEncoder) Abort() {
	m.Aborted++
}

var _ ports.VideoEncoder = (*VideoEncoder)(nil)
