package utils

import (
	"testing"
	"time"
)

// TestTimer verifies that the duration is zero until Stop and positive after.
func TestTimer(t *testing.T) {
	timer := NewTimer()
	if timer.GetDuration() != 0 {
		t.Errorf("GetDuration() before Stop = %v, want 0", timer.GetDuration())
	}

	time.Sleep(time.Millisecond)
	got := timer.Stop()
	if got <= 0 {
		t.Errorf("Stop() = %v, want positive", got)
	}
	if timer.GetDuration() != got {
		t.Errorf("GetDuration() = %v, want %v", timer.GetDuration(), got)
	}
}
