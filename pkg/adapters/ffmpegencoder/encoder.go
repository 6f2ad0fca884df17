// Package ffmpegencoder encodes clips by piping raw frames into ffmpeg.
package ffmpegencoder

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"os/exec"
	"strconv"
	"sync"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/user/framelabel/pkg/adapters/ffmpegsource"
	"github.com/user/framelabel/pkg/ports"
)

var (
	// ErrNotInitialized is returned when encoder methods are called before Begin.
	ErrNotInitialized = errors.New("ffmpegencoder: encoder not initialized")

	// ErrUnsupportedContainer is returned for containers other than mp4, mov and avi.
	ErrUnsupportedContainer = errors.New("ffmpegencoder: unsupported container")
)

// Encoder writes one clip at a time through an ffmpeg child process.
type Encoder struct {
	mu         sync.Mutex
	width      int
	height     int
	cmd        *exec.Cmd
	stdin      io.WriteCloser
	stderr     bytes.Buffer
	tempPath   string
	frameCount int
	rgba       *image.RGBA
}

// New creates a new Encoder.
func New() *Encoder {
	return &Encoder{}
}

// Begin starts ffmpeg writing a temporary file in opts.Container.
func (e *Encoder) Begin(width, height int, fps float64, opts ports.EncoderOptions) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cmd != nil {
		e.abortLocked()
	}

	container := opts.Container
	if container == "" {
		container = "mp4"
	}
	outputArgs, err := OutputArgs(container, opts.Quality, width, height)
	if err != nil {
		return err
	}

	ffmpegPath, err := ffmpegsource.FindFFmpeg()
	if err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp("", "clip_*."+container)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	e.tempPath = tmpFile.Name()
	tmpFile.Close()

	e.width = width
	e.height = height
	e.frameCount = 0
	e.stderr.Reset()
	e.rgba = image.NewRGBA(image.Rect(0, 0, width, height))

	cmd := ffmpeg.Input("pipe:", ffmpeg.KwArgs{
		"f":       "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", width, height),
		"r":       strconv.FormatFloat(fps, 'f', -1, 64),
	}).
		Output(e.tempPath, outputArgs).
		OverWriteOutput().
		WithErrorOutput(&e.stderr).
		Compile()
	e.cmd = ffmpegsource.Bind(cmd, ffmpegPath)

	stdin, err := e.cmd.StdinPipe()
	if err != nil {
		os.Remove(e.tempPath)
		e.cmd = nil
		return fmt.Errorf("failed to get stdin pipe: %w", err)
	}
	e.stdin = stdin

	if err := e.cmd.Start(); err != nil {
		os.Remove(e.tempPath)
		e.cmd = nil
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}
	return nil
}

// OutputArgs returns the ffmpeg output options for a container. quality is
// an x264 CRF (0-51); 0 selects the default. x264 keeps odd frame sizes by
// switching to yuv444p; mpeg4 only takes yuv420p, so odd sizes are padded
// by one pixel.
func OutputArgs(container string, quality, width, height int) (ffmpeg.KwArgs, error) {
	odd := width%2 != 0 || height%2 != 0

	switch container {
	case "mp4", "mov", "m4v":
		crf := 23
		if quality > 0 && quality <= 51 {
			crf = quality
		}
		args := ffmpeg.KwArgs{
			"c:v":      "libx264",
			"preset":   "fast",
			"pix_fmt":  "yuv420p",
			"crf":      crf,
			"movflags": "+faststart",
		}
		if odd {
			args["pix_fmt"] = "yuv444p"
		}
		return args, nil
	case "avi":
		q := 3
		if quality > 0 && quality <= 51 {
			q = 2 + quality*29/51
		}
		args := ffmpeg.KwArgs{
			"c:v":     "mpeg4",
			"pix_fmt": "yuv420p",
			"q:v":     q,
		}
		if odd {
			args["vf"] = "pad=ceil(iw/2)*2:ceil(ih/2)*2"
		}
		return args, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedContainer, container)
	}
}

// EncodeFrame writes one frame.
func (e *Encoder) EncodeFrame(img image.Image) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stdin == nil {
		return ErrNotInitialized
	}

	draw.Draw(e.rgba, e.rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	if _, err := e.stdin.Write(e.rgba.Pix); err != nil {
		return fmt.Errorf("failed to write frame: %w\nstderr: %s", err, e.stderr.String())
	}
	e.frameCount++
	return nil
}

// End finalizes the clip and returns the file bytes.
func (e *Encoder) End() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stdin == nil {
		return nil, ErrNotInitialized
	}

	e.stdin.Close()
	e.stdin = nil
	defer e.cleanupLocked()

	if err := e.cmd.Wait(); err != nil {
		return nil, fmt.Errorf("ffmpeg encoding failed: %w\nstderr: %s", err, e.stderr.String())
	}
	data, err := os.ReadFile(e.tempPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read output: %w", err)
	}
	return data, nil
}

// Abort kills ffmpeg and discards the partial output.
func (e *Encoder) Abort() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.abortLocked()
}

func (e *Encoder) abortLocked() {
	if e.stdin != nil {
		e.stdin.Close()
		e.stdin = nil
	}
	if e.cmd != nil && e.cmd.Process != nil {
		e.cmd.Process.Kill()
		e.cmd.Wait()
	}
	e.cleanupLocked()
}

func (e *Encoder) cleanupLocked() {
	if e.tempPath != "" {
		os.Remove(e.tempPath)
		e.tempPath = ""
	}
	e.cmd = nil
}

// Ensure Encoder implements ports.VideoEncoder
var _ ports.VideoEncoder = (*Encoder)(nil)
