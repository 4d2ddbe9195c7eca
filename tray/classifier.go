package tray

import "time"

// Decision is the classifier's verdict on the clicks seen so far.
type Decision int

const (
	// None means no gesture is complete yet.
	None Decision = iota
	// Single is a click that was not followed by another within the window.
	Single
	// Double is two clicks inside the window.
	Double
)

func (d Decision) String() string {
	switch d {
	case None:
		return "None"
	case Single:
		return "Single"
	case Double:
		return "Double"
	default:
		return "Unknown"
	}
}

// Classifier turns raw click timestamps into single and double clicks.
// It is a pure state machine: it never reads the clock itself and never
// starts timers. The owner calls Expire once Deadline has passed.
//
// Every click ends up in exactly one Single or one Double.
type Classifier struct {
	window  time.Duration
	armed   bool
	pending time.Time
}

// NewClassifier creates a classifier that pairs clicks closer than window.
func NewClassifier(window time.Duration) *Classifier {
	return &Classifier{window: window}
}

// OnClick feeds one click. It returns Double when ts completes a pair, None
// when ts arms a new pending click, and Single when a pending click had
// already outlived the window; in that last case ts becomes the new pending
// click.
func (c *Classifier) OnClick(ts time.Time) Decision {
	if !c.armed {
		c.arm(ts)
		return None
	}

	if ts.Sub(c.pending) < c.window {
		c.Reset()
		return Double
	}

	c.arm(ts)
	return Single
}

// Expire reports Single if the pending click has outlived the window at now.
func (c *Classifier) Expire(now time.Time) Decision {
	if !c.armed || now.Sub(c.pending) < c.window {
		return None
	}
	c.Reset()
	return Single
}

// Deadline returns when the pending click turns into a Single.
// ok is false when nothing is pending.
func (c *Classifier) Deadline() (deadline time.Time, ok bool) {
	if !c.armed {
		return time.Time{}, false
	}
	return c.pending.Add(c.window), true
}

// Armed reports whether a click is waiting for its partner.
func (c *Classifier) Armed() bool {
	return c.armed
}

// Reset forgets any pending click.
func (c *Classifier) Reset() {
	c.armed = false
	c.pending = time.Time{}
}

func (c *Classifier) arm(ts time.Time) {
	c.armed = true
	c.pending = ts
}
