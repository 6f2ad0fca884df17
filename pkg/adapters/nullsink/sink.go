// Package nullsink provides a snapshot sink that keeps nothing.
package nullsink

import (
	"errors"
	"image"

	"github.com/user/framelabel/pkg/ports"
)

// ErrDisabled is returned by SaveSnapshot.
var ErrDisabled = errors.New("nullsink: snapshots disabled")

// Sink is a no-op implementation of ports.SnapshotSink, used when no
// snapshot folder is configured.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveSnapshot discards img.
func (s *Sink) SaveSnapshot(name string, img image.Image) (string, error) {
	return "", ErrDisabled
}

// Ensure Sink implements ports.SnapshotSink
var _ ports.SnapshotSink = (*Sink)(nil)
