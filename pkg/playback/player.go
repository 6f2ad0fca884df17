// Package playback holds the frame-navigation state of an open video.
package playback

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/user/framelabel/pkg/ports"
)

// ErrUnreadableSource is returned when a video cannot be opened or reports
// no frames or no frame rate.
var ErrUnreadableSource = errors.New("playback: unreadable source")

// Player owns an open video source and the playback position within it.
// It is not safe for concurrent use; all calls come from the UI loop.
type Player struct {
	source  ports.VideoSource
	info    ports.VideoInfo
	current int
	playing bool
}

// Open opens path through opener and returns a paused Player at frame 0.
func Open(ctx context.Context, opener ports.VideoOpener, path string) (*Player, error) {
	source, err := opener.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableSource, path, err)
	}
	info := source.Info()
	if info.FrameCount < 1 || info.FrameRate <= 0 {
		source.Close()
		return nil, fmt.Errorf("%w: %s: %d frames at %.3f fps", ErrUnreadableSource, path, info.FrameCount, info.FrameRate)
	}
	return &Player{source: source, info: info}, nil
}

// Info returns the probed metadata of the open source.
func (p *Player) Info() ports.VideoInfo {
	return p.info
}

// Current returns the current frame index.
func (p *Player) Current() int {
	return p.current
}

// FrameCount returns the number of frames in the source.
func (p *Player) FrameCount() int {
	return p.info.FrameCount
}

// Last returns the index of the last frame.
func (p *Player) Last() int {
	return p.info.FrameCount - 1
}

// Playing reports whether playback is running.
func (p *Player) Playing() bool {
	return p.playing
}

// Step moves the position by delta frames, clamped to the valid range.
func (p *Player) Step(delta int) int {
	return p.Seek(p.current + delta)
}

// Seek moves the position to frame, clamped to the valid range.
func (p *Player) Seek(frame int) int {
	p.current = clamp(frame, 0, p.Last())
	return p.current
}

// Tick advances one frame while playing. Reaching the last frame stops
// playback; stopped reports whether that happened on this call.
func (p *Player) Tick() (frame int, stopped bool) {
	if !p.playing {
		return p.current, false
	}
	p.Step(1)
	if p.current >= p.Last() {
		p.playing = false
		return p.current, true
	}
	return p.current, false
}

// TogglePlay flips the playing flag and returns the new value.
// The caller starts or stops ticking at Period.
func (p *Player) TogglePlay() bool {
	p.playing = !p.playing
	return p.playing
}

// Period returns the tick interval for the source frame rate.
func (p *Player) Period() time.Duration {
	return time.Duration(float64(time.Second) / p.info.FrameRate)
}

// Frame decodes the image at the current position.
func (p *Player) Frame() (image.Image, error) {
	img, err := p.source.Frame(p.current)
	if err != nil {
		return nil, fmt.Errorf("decode frame %d: %w", p.current, err)
	}
	return img, nil
}

// ElapsedSeconds returns current / frame rate.
func (p *Player) ElapsedSeconds() float64 {
	return float64(p.current) / p.info.FrameRate
}

// TotalSeconds returns frame count / frame rate.
func (p *Player) TotalSeconds() float64 {
	return p.info.DurationSeconds()
}

// Readout returns the "HH:MM:SS / HH:MM:SS" time display.
func (p *Player) Readout() string {
	return Readout(p.ElapsedSeconds(), p.TotalSeconds())
}

// Close releases the source. The Player must not be used afterwards.
func (p *Player) Close() error {
	p.playing = false
	if p.source == nil {
		return nil
	}
	err := p.source.Close()
	p.source = nil
	return err
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
