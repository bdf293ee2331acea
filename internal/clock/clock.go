// Package clock provides an abstraction for time operations to improve testability.
// The CLI resolves relative inputs such as "--week today" through a Clock so
// tests can pin the calendar.
package clock

import "time"

// Clock is an interface for time operations.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the actual system time.
type RealClock struct{}

// Now returns the current time from the system clock.
func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant.
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant.
func (f FixedClock) Now() time.Time {
	return f.T
}

// Today returns midnight of the current calendar day in loc.
// A nil loc means time.Local.
func Today(c Clock, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	now := c.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
}

var (
	_ Clock = RealClock{}
	_ Clock = FixedClock{}
)
