package ui

import (
	"time"

	"github.com/diamondburned/gotk4/pkg/glib/v2"
)

// glibScheduler runs callbacks on the GTK main loop. Whatever thread runs
// that loop is, by definition, the GUI thread.
type glibScheduler struct{}

// Every schedules fn on the main loop until it returns false.
func (glibScheduler) Every(interval time.Duration, fn func() bool) {
	ms := interval.Milliseconds()
	if ms < 1 {
		ms = 1
	}
	glib.TimeoutAdd(uint(ms), fn)
}
