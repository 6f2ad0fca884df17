package ffmpegsource

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/user/framelabel/pkg/ports"
)

// Prober reads stream metadata with ffprobe.
type Prober struct{}

// NewProber creates a new ffprobe-backed Prober.
func NewProber() *Prober {
	return &Prober{}
}

// Probe runs ffprobe on path and returns the first video stream's metadata.
func (p *Prober) Probe(ctx context.Context, path string) (ports.VideoInfo, error) {
	if err := ctx.Err(); err != nil {
		return ports.VideoInfo{}, err
	}
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return ParseProbe(path, []byte(out))
}

type probeOutput struct {
	Streams []probeStream `json:"streams"`
	Format  struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

type probeStream struct {
	CodecType    string `json:"codec_type"`
	CodecName    string `json:"codec_name"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	NbFrames     string `json:"nb_frames"`
	RFrameRate   string `json:"r_frame_rate"`
	AvgFrameRate string `json:"avg_frame_rate"`
	Duration     string `json:"duration"`
}

// ParseProbe converts ffprobe JSON output into VideoInfo. When the container
// does not record a frame count it is estimated from duration and rate.
func ParseProbe(path string, data []byte) (ports.VideoInfo, error) {
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return ports.VideoInfo{}, fmt.Errorf("parse ffprobe output: %w", err)
	}

	for _, s := range out.Streams {
		if s.CodecType != "video" {
			continue
		}
		info := ports.VideoInfo{
			Path:      path,
			Width:     s.Width,
			Height:    s.Height,
			Codec:     s.CodecName,
			Container: strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")),
		}
		info.FrameRate = parseRate(s.AvgFrameRate)
		if info.FrameRate <= 0 {
			info.FrameRate = parseRate(s.RFrameRate)
		}
		if n, err := strconv.Atoi(s.NbFrames); err == nil && n > 0 {
			info.FrameCount = n
		} else {
			duration := parseFloat(s.Duration)
			if duration <= 0 {
				duration = parseFloat(out.Format.Duration)
			}
			info.FrameCount = int(math.Round(duration * info.FrameRate))
		}
		return info, nil
	}
	return ports.VideoInfo{}, fmt.Errorf("no video stream in %s", path)
}

// parseRate reads ffprobe rates such as "30000/1001" or "25".
func parseRate(s string) float64 {
	num, den, found := strings.Cut(s, "/")
	n := parseFloat(num)
	if !found {
		return n
	}
	d := parseFloat(den)
	if d == 0 {
		return 0
	}
	return n / d
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

var _ ports.Prober = (*Prober)(nil)
