package mocks

import (
	"time"

	"github.com/user/framelabel/pkg/ports"
)

// Scheduler is a manual ports.Scheduler; tests deliver ticks themselves.
type Scheduler struct {
	active bool
	Period time.Duration

	// Recorded calls for verification
	Starts int
	Stops  int
}

func (m *Scheduler) Start(period time.Duration) {
	m.active = true
	m.Period = period
	m.Starts++
}

func (m *Scheduler) Stop() {
	if m.active {
		m.Stops++
	}
	m.active = false
}

func (m *Scheduler) Active() bool {
	return m.active
}

var _ ports.Scheduler = (*Scheduler)(nil)
