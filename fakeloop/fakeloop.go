// Package fakeloop provides a manually driven clock and scheduler that stand
// in for the GUI main loop in tests. Scheduled callbacks only ever run inside
// Advance, on the goroutine that calls it, so that goroutine plays the part
// of the GUI thread.
package fakeloop

import (
	"sort"
	"sync"
	"time"
)

type task struct {
	next     time.Time
	interval time.Duration
	fn       func() bool
	seq      int
}

// Loop implements common.Scheduler and common.Clock.
type Loop struct {
	mu    sync.Mutex
	now   time.Time
	seq   int
	tasks []*task
}

// New returns a loop whose clock starts at start.
func New(start time.Time) *Loop {
	return &Loop{now: start}
}

// Now returns the loop's current time.
func (l *Loop) Now() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.now
}

// Every schedules fn to run every interval until it returns false.
// Intervals shorter than a millisecond are rounded up.
func (l *Loop) Every(interval time.Duration, fn func() bool) {
	if interval < time.Millisecond {
		interval = time.Millisecond
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	l.tasks = append(l.tasks, &task{
		next:     l.now.Add(interval),
		interval: interval,
		fn:       fn,
		seq:      l.seq,
	})
}

// Advance moves the clock forward by d, running every callback that falls
// due on the way in deadline order. Callbacks may schedule more work; work
// that falls due before the target also runs.
func (l *Loop) Advance(d time.Duration) {
	l.mu.Lock()
	target := l.now.Add(d)
	l.mu.Unlock()

	for {
		l.mu.Lock()
		t := l.nextDue(target)
		if t == nil {
			l.now = target
			l.mu.Unlock()
			return
		}
		l.now = t.next
		l.mu.Unlock()

		again := t.fn()

		l.mu.Lock()
		if again {
			t.next = t.next.Add(t.interval)
		} else {
			l.remove(t)
		}
		l.mu.Unlock()
	}
}

// Pending returns the number of scheduled callbacks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks)
}

func (l *Loop) nextDue(target time.Time) *task {
	sort.SliceStable(l.tasks, func(i, j int) bool {
		if l.tasks[i].next.Equal(l.tasks[j].next) {
			return l.tasks[i].seq < l.tasks[j].seq
		}
		return l.tasks[i].next.Before(l.tasks[j].next)
	})
	if len(l.tasks) == 0 || l.tasks[0].next.After(target) {
		return nil
	}
	return l.tasks[0]
}

func (l *Loop) remove(t *task) {
	for i, candidate := range l.tasks {
		if candidate == t {
			l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
			return
		}
	}
}
