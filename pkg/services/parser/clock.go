package parser

import "time"

// Clock abstracts time.Now() so the present token can be resolved deterministically in tests.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// today truncates the clock reading to its local calendar date, stored at midnight UTC
// like every other parsed date.
func today(c Clock) time.Time {
	y, m, d := c.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
