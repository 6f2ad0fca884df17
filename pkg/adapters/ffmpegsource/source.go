package ffmpegsource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strconv"

	"github.com/ideamans/go-l10n"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/user/framelabel/pkg/ports"
)

// maxSkip is how many frames Frame decodes and discards to reach a later
// index before it restarts ffmpeg with a seek instead.
const maxSkip = 48

// Opener opens videos as ffmpeg-backed sources.
type Opener struct {
	prober ports.Prober
	logger ports.Logger
}

// NewOpener creates an Opener that probes with prober.
func NewOpener(prober ports.Prober, logger ports.Logger) *Opener {
	return &Opener{prober: prober, logger: logger.WithComponent("ffmpeg")}
}

// Open probes path and returns a source positioned at frame 0.
// Decoding starts lazily on the first Frame or Next call.
func (o *Opener) Open(ctx context.Context, path string) (ports.VideoSource, error) {
	ffmpegPath, err := FindFFmpeg()
	if err != nil {
		return nil, err
	}
	info, err := o.prober.Probe(ctx, path)
	if err != nil {
		return nil, err
	}
	if info.Width <= 0 || info.Height <= 0 {
		return nil, fmt.Errorf("%s: no frame size in stream metadata", path)
	}
	o.logger.Debug(l10n.F("Probed %s: %dx%d, %d frames at %.3f fps (%s)", path, info.Width, info.Height, info.FrameCount, info.FrameRate, info.Codec))
	return &Source{
		ctx:        ctx,
		info:       info,
		ffmpegPath: ffmpegPath,
		logger:     o.logger,
		cached:     -1,
	}, nil
}

// Source streams rawvideo RGBA frames out of ffmpeg. Sequential reads share
// one process; a backward or distant jump restarts it with an input seek.
// Not safe for concurrent use.
type Source struct {
	ctx        context.Context
	info       ports.VideoInfo
	ffmpegPath string
	logger     ports.Logger

	stream *stream
	pos    int // index of the next frame Next returns

	cached      int
	cachedImage image.Image
}

type stream struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr bytes.Buffer
	next   int // index of the next frame on stdout
	done   bool
}

// Info returns the probed metadata.
func (s *Source) Info() ports.VideoInfo {
	return s.info
}

// Frame decodes the frame at index. Like Next, it leaves the position
// just after the returned frame.
func (s *Source) Frame(index int) (image.Image, error) {
	if index == s.cached && s.cachedImage != nil {
		s.pos = index + 1
		return s.cachedImage, nil
	}
	if index < 0 || index >= s.info.FrameCount {
		return nil, fmt.Errorf("frame %d out of range [0, %d)", index, s.info.FrameCount)
	}

	if s.stream == nil || s.stream.done || index < s.stream.next || index-s.stream.next > maxSkip {
		if err := s.restart(index); err != nil {
			return nil, err
		}
	}
	for s.stream.next < index {
		if _, err := s.read(); err != nil {
			return nil, fmt.Errorf("skip to frame %d: %w", index, err)
		}
	}
	img, err := s.read()
	if err != nil {
		return nil, fmt.Errorf("frame %d: %w", index, err)
	}
	s.pos = index + 1
	return img, nil
}

// Seek positions the next Next call at index.
func (s *Source) Seek(index int) error {
	if index < 0 {
		return fmt.Errorf("negative frame index %d", index)
	}
	s.pos = index
	if s.stream != nil && !s.stream.done && s.stream.next == index {
		return nil
	}
	s.stop()
	return nil
}

// Next returns the frame at the current position and advances it.
// It returns io.EOF once ffmpeg runs out of frames.
func (s *Source) Next() (image.Image, error) {
	if s.stream == nil || s.stream.next != s.pos {
		if err := s.restart(s.pos); err != nil {
			return nil, err
		}
	}
	img, err := s.read()
	if err != nil {
		return nil, err
	}
	s.pos++
	return img, nil
}

// Close stops any running ffmpeg process.
func (s *Source) Close() error {
	s.stop()
	s.cachedImage = nil
	return nil
}

func (s *Source) restart(index int) error {
	s.stop()

	inputArgs := ffmpeg.KwArgs{}
	if index > 0 {
		// Half a frame early so rounding never skips the requested frame.
		offset := (float64(index) - 0.5) / s.info.FrameRate
		inputArgs["ss"] = strconv.FormatFloat(offset, 'f', 6, 64)
	}

	st := &stream{next: index}
	cmd := ffmpeg.Input(s.info.Path, inputArgs).
		Output("pipe:", ffmpeg.KwArgs{
			"f":        "rawvideo",
			"pix_fmt":  "rgba",
			"loglevel": "error",
		}).
		WithErrorOutput(&st.stderr).
		Compile()
	st.cmd = Bind(cmd, s.ffmpegPath)

	stdout, err := st.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("ffmpeg stdout: %w", err)
	}
	st.stdout = stdout
	if err := st.cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}
	s.logger.Debug(l10n.F("Decoding %s from frame %d", s.info.Path, index))
	s.stream = st
	return nil
}

// read pulls the next frame off the running stream.
func (s *Source) read() (image.Image, error) {
	if err := s.ctx.Err(); err != nil {
		s.stop()
		return nil, err
	}
	st := s.stream
	if st.done {
		return nil, io.EOF
	}

	img := image.NewRGBA(image.Rect(0, 0, s.info.Width, s.info.Height))
	if _, err := io.ReadFull(st.stdout, img.Pix); err != nil {
		st.done = true
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			if waitErr := st.cmd.Wait(); waitErr != nil && st.stderr.Len() > 0 {
				s.logger.Debug(l10n.F("ffmpeg exited: %s", st.stderr.String()))
			}
			st.cmd = nil
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read frame: %w", err)
	}

	s.cached = st.next
	s.cachedImage = img
	st.next++
	return img, nil
}

func (s *Source) stop() {
	st := s.stream
	s.stream = nil
	if st == nil || st.cmd == nil {
		return
	}
	st.stdout.Close()
	if st.cmd.Process != nil {
		st.cmd.Process.Kill()
	}
	st.cmd.Wait()
}

var (
	_ ports.VideoOpener = (*Opener)(nil)
	_ ports.VideoSource = (*Source)(nil)
)
