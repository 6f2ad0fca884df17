// Package filesink writes frame snapshots as image files.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/framelabel/pkg/ports"
)

// Sink saves snapshots under a base folder.
type Sink struct {
	baseDir  string
	format   ports.ImageFormat
	quality  int
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a Sink writing PNG files to baseDir.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		format:   ports.FormatPNG,
		fs:       fs,
		renderer: renderer,
	}
}

// WithJPEG switches the sink to JPEG output at quality (1-100).
func (s *Sink) WithJPEG(quality int) *Sink {
	s.format = ports.FormatJPEG
	s.quality = quality
	return s
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveSnapshot encodes img and writes it as <baseDir>/<name><ext>.
func (s *Sink) SaveSnapshot(name string, img image.Image) (string, error) {
	data, err := s.renderer.EncodeImage(img, s.format, s.quality)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.fs.MkdirAll(s.baseDir); err != nil {
		return "", err
	}
	path := filepath.Join(s.baseDir, name+s.format.Extension())
	if err := s.fs.WriteFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// Ensure Sink implements ports.SnapshotSink
var _ ports.SnapshotSink = (*Sink)(nil)
