package ports

import "time"

// Scheduler invokes the playback tick every period while active.
// Implementations deliver ticks on the thread that drives the controller.
type Scheduler interface {
	// Start begins (or restarts) periodic ticking.
	Start(period time.Duration)

	// Stop cancels pending ticks. Stopping an inactive scheduler is a no-op.
	Stop()

	// Active reports whether ticks are being delivered.
	Active() bool
}
