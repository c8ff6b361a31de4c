package display

import "time"

// ScrollingStats are process-wide scheduler counters. They are mutated only
// on the scheduler's own call paths and reset only on explicit request.
type ScrollingStats struct {
	UpdatesDeferred  uint64
	UpdatesProcessed uint64
	FramesPresented  uint64
	PresentFailures  uint64
	LastScrollAt     time.Time
}
