package clock

import "time"

// Clock supplies the reference instant for time-sensitive business rules.
// Services take a Clock instead of reading the wall clock so the attendance
// day boundary is deterministic under test.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns a Clock backed by the wall clock.
func System() Clock { return systemClock{} }

// Fixed is a Clock pinned to a settable instant.
type Fixed struct {
	Instant time.Time
}

func (f *Fixed) Now() time.Time { return f.Instant }

// Advance moves the fixed clock forward.
func (f *Fixed) Advance(d time.Duration) { f.Instant = f.Instant.Add(d) }

// NewFixed returns a Fixed clock starting at t.
func NewFixed(t time.Time) *Fixed { return &Fixed{Instant: t} }
