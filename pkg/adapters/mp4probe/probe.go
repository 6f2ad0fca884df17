// Package mp4probe reads video metadata from MP4 and QuickTime files
// without starting a decoder.
package mp4probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Eyevinn/mp4ff/mp4"
	"github.com/ideamans/go-l10n"

	"github.com/user/framelabel/pkg/ports"
)

// ErrUnsupported is returned for files the box parser cannot describe,
// such as fragmented MP4 or files without a video track.
var ErrUnsupported = errors.New("mp4probe: unsupported file")

// Prober parses the moov box of MP4/MOV files and defers to a fallback
// prober for every other container and for files it cannot read.
type Prober struct {
	fallback ports.Prober
	logger   ports.Logger
}

// New creates a Prober. fallback may be nil.
func New(fallback ports.Prober, logger ports.Logger) *Prober {
	return &Prober{fallback: fallback, logger: logger.WithComponent("mp4probe")}
}

// Probe implements ports.Prober.
func (p *Prober) Probe(ctx context.Context, path string) (ports.VideoInfo, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".mp4" || ext == ".mov" || ext == ".m4v" {
		info, err := ProbeFile(path)
		if err == nil {
			return info, nil
		}
		if p.fallback == nil {
			return ports.VideoInfo{}, err
		}
		p.logger.Debug(l10n.F("Falling back to ffprobe for %s: %s", path, err))
	}
	if p.fallback == nil {
		return ports.VideoInfo{}, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}
	return p.fallback.Probe(ctx, path)
}

// ProbeFile reads the first video track of an MP4/MOV file.
func ProbeFile(path string) (ports.VideoInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	info, err := ProbeReader(f)
	if err != nil {
		return ports.VideoInfo{}, err
	}
	info.Path = path
	info.Container = strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	return info, nil
}

// ProbeReader reads the first video track from an io.ReadSeeker.
func ProbeReader(reader io.ReadSeeker) (ports.VideoInfo, error) {
	mp4File, err := mp4.DecodeFile(reader, mp4.WithDecodeMode(mp4.DecModeLazyMdat))
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("decode mp4: %w", err)
	}
	if mp4File.IsFragmented() || mp4File.Moov == nil {
		return ports.VideoInfo{}, fmt.Errorf("%w: fragmented or missing moov", ErrUnsupported)
	}

	for _, trak := range mp4File.Moov.Traks {
		if info, ok := trackInfo(trak); ok {
			return info, nil
		}
	}
	return ports.VideoInfo{}, fmt.Errorf("%w: no video track", ErrUnsupported)
}

func trackInfo(trak *mp4.TrakBox) (ports.VideoInfo, bool) {
	if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
		return ports.VideoInfo{}, false
	}
	if trak.Mdia.Mdhd == nil || trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil {
		return ports.VideoInfo{}, false
	}
	stbl := trak.Mdia.Minf.Stbl

	var info ports.VideoInfo
	if stbl.Stsz != nil {
		info.FrameCount = int(stbl.Stsz.SampleNumber)
	}

	var ticks uint64
	if stbl.Stts != nil {
		for i, count := range stbl.Stts.SampleCount {
			ticks += uint64(count) * uint64(stbl.Stts.SampleTimeDelta[i])
		}
	}
	if ticks == 0 {
		ticks = trak.Mdia.Mdhd.Duration
	}
	if ticks > 0 && info.FrameCount > 0 {
		info.FrameRate = float64(info.FrameCount) * float64(trak.Mdia.Mdhd.Timescale) / float64(ticks)
	}

	if stbl.Stsd != nil {
		for _, child := range stbl.Stsd.Children {
			if vse, ok := child.(*mp4.VisualSampleEntryBox); ok {
				info.Width = int(vse.Width)
				info.Height = int(vse.Height)
				info.Codec = codecName(vse.Type())
				break
			}
		}
	}
	if info.Width == 0 && trak.Tkhd != nil {
		info.Width = int(trak.Tkhd.Width >> 16)
		info.Height = int(trak.Tkhd.Height >> 16)
	}

	return info, info.FrameCount > 0 && info.FrameRate > 0
}

func codecName(sampleEntry string) string {
	switch sampleEntry {
	case "avc1", "avc3":
		return "h264"
	case "hvc1", "hev1":
		return "hevc"
	case "av01":
		return "av1"
	case "mp4v":
		return "mpeg4"
	default:
		return sampleEntry
	}
}

var _ ports.Prober = (*Prober)(nil)
