// Package clock abstracts wall-clock reads so time-dependent scoring can be
// pinned in tests.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns the process wall clock.
func System() Clock { return systemClock{} }

// Fixed is a Clock that always returns the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f) }

// NowMillis returns c.Now() as epoch milliseconds.
func NowMillis(c Clock) int64 {
	return c.Now().UnixMilli()
}
