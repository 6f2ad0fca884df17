package teaui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/user/framelabel/pkg/ports"
)

// tickMsg carries the generation of the Start call that armed it.
type tickMsg struct {
	gen int
}

// Scheduler implements ports.Scheduler on top of tea.Tick. Ticks are
// delivered through the program's Update loop, so the controller is only
// ever touched from one goroutine. Stop bumps the generation so ticks
// already in flight are discarded.
type Scheduler struct {
	gen     int
	active  bool
	period  time.Duration
	pending tea.Cmd
}

// NewScheduler creates an inactive Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Start arms a tick after period, replacing any earlier schedule.
func (s *Scheduler) Start(period time.Duration) {
	s.gen++
	s.active = true
	s.period = period
	s.pending = s.arm()
}

// Stop cancels pending ticks.
func (s *Scheduler) Stop() {
	if s.active {
		s.gen++
	}
	s.active = false
	s.pending = nil
}

// Active reports whether ticks are being delivered.
func (s *Scheduler) Active() bool {
	return s.active
}

// Period returns the period of the last Start.
func (s *Scheduler) Period() time.Duration {
	return s.period
}

func (s *Scheduler) arm() tea.Cmd {
	gen := s.gen
	return tea.Tick(s.period, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// current reports whether a tick of generation gen should still fire.
func (s *Scheduler) current(gen int) bool {
	return s.active && gen == s.gen
}

// rearm schedules the next tick unless a Start during the last one already did.
func (s *Scheduler) rearm() {
	if s.active && s.pending == nil {
		s.pending = s.arm()
	}
}

// take returns the command armed since the last call, if any.
func (s *Scheduler) take() tea.Cmd {
	cmd := s.pending
	s.pending = nil
	return cmd
}

var _ ports.Scheduler = (*Scheduler)(nil)
