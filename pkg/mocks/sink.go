package mocks

import (
	"image"
	"path/filepath"

	"github.com/user/framelabel/pkg/ports"
)

// SnapshotSink is a mock implementation of ports.SnapshotSink.
type SnapshotSink struct {
	Disabled  bool
	Snapshots map[string]image.Image
}

// NewSnapshotSink creates an enabled mock sink.
func NewSnapshotSink() *SnapshotSink {
	return &SnapshotSink{Snapshots: make(map[string]image.Image)}
}

func (m *SnapshotSink) Enabled() bool {
	return !m.Disabled
}

func (m *SnapshotSink) SaveSnapshot(name string, img image.Image) (string, error) {
	m.Snapshots[name] = img
	return filepath.Join("snapshots", name+".png"), nil
}

var _ ports.SnapshotSink = (*SnapshotSink)(nil)
