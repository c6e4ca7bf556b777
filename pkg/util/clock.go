package util

import "time"

type Clock interface {
	Now() time.Time
	Tick(d time.Duration) <-chan time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Tick leaks the underlying ticker; callers are expected to run for the
// life of the process (the sim driver does).
func (RealClock) Tick(d time.Duration) <-chan time.Time { return time.Tick(d) }
