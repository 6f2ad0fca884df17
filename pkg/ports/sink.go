package ports

import (
	"image"
)

// SnapshotSink stores rendered frame snapshots.
type SnapshotSink interface {
	// Enabled reports whether snapshots are kept at all.
	Enabled() bool

	// SaveSnapshot stores img under name (without extension) and returns the written path.
	SaveSnapshot(name string, img image.Image) (string, error)
}
