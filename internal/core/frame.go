package core

import "time"

// Target simulation rates.
const (
	DefaultTickRate  = 60
	LowPowerTickRate = 30
)

// FrameLimiter decides whether a wall-clock callback should run a frame.
// Callbacks that arrive before the interval has passed are skipped, and a
// late callback still runs a single frame: frames are never double-stepped.
type FrameLimiter struct {
	interval time.Duration
	last     time.Time
}

// NewFrameLimiter creates a limiter for the given frames per second.
func NewFrameLimiter(fps int) *FrameLimiter {
	if fps <= 0 {
		fps = DefaultTickRate
	}
	return &FrameLimiter{interval: time.Second / time.Duration(fps)}
}

// Ready reports whether a frame should run at now. When it does, the
// reference time keeps the sub-interval remainder so the cadence does not drift.
func (l *FrameLimiter) Ready(now time.Time) bool {
	if l.last.IsZero() {
		l.last = now
		return true
	}
	elapsed := now.Sub(l.last)
	if elapsed < l.interval {
		return false
	}
	l.last = now.Add(-(elapsed % l.interval))
	return true
}

// Reset forgets the previous frame time.
func (l *FrameLimiter) Reset() {
	l.last = time.Time{}
}
