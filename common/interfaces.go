// Package common provides shared constants, types, and utilities
// used across the Expense Tray application.
package common

import "time"

// Scheduler runs callbacks on the GUI thread.
// Implementations must never invoke fn from any other goroutine.
type Scheduler interface {
	// Every calls fn on the GUI thread once per interval until fn returns false.
	Every(interval time.Duration, fn func() bool)
}

// Clock supplies monotonic time readings.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock together with its monotonic component.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}
