package gesture

import "time"

// ExitHold is how long an open hand must be held before the program exits.
const ExitHold = 5 * time.Second

// HoldTimer tracks when a continuous hold began.
// The zero value is an empty timer.
type HoldTimer struct {
	start   time.Time
	holding bool
}

// Observe records now as the start on the first call after a reset and
// returns the time elapsed since the start.
func (h *HoldTimer) Observe(now time.Time) time.Duration {
	if !h.holding {
		h.start = now
		h.holding = true
		return 0
	}
	return now.Sub(h.start)
}

// Reset empties the timer.
func (h *HoldTimer) Reset() {
	h.start = time.Time{}
	h.holding = false
}
