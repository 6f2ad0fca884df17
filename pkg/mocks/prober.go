package mocks

import (
	"context"
	"fmt"

	"github.com/user/framelabel/pkg/ports"
)

// Prober is a mock implementation of ports.Prober.
type Prober struct {
	Infos map[string]ports.VideoInfo

	// Recorded calls for verification
	Probed []string
}

// NewProber creates an empty mock Prober.
func NewProber() *Prober {
	return &Prober{Infos: make(map[string]ports.VideoInfo)}
}

func (m *Prober) Probe(ctx context.Context, path string) (ports.VideoInfo, error) {
	m.Probed = append(m.Probed, path)
	info, ok := m.Infos[path]
	if !ok {
		return ports.VideoInfo{}, fmt.Errorf("cannot probe %s", path)
	}
	return info, nil
}

var _ ports.Prober = (*Prober)(nil)
