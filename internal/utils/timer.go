package utils

import "time"

// Timer measures the wall-clock time of a single operation. It starts on
// construction; [Timer.Stop] freezes the measurement.
type Timer struct {
	startTime time.Time
	duration  time.Duration
}

// NewTimer returns a running Timer.
func NewTimer() *Timer {
	return &Timer{startTime: time.Now()}
}

// Stop records and returns the time elapsed since the timer was created.
func (t *Timer) Stop() time.Duration {
	t.duration = time.Since(t.startTime)
	return t.duration
}

// GetDuration returns the duration captured by the last Stop, or zero if Stop
// has not been called.
func (t *Timer) GetDuration() time.Duration {
	return t.duration
}
