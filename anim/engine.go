// Package anim interpolates window frames over time on the GUI thread.
package anim

import (
	"time"

	"github.com/yllada/expense-tray/common"
)

// Frame is one rendered state of the main window.
type Frame struct {
	Opacity float64
	// OffsetY is the vertical displacement of the content in pixels.
	OffsetY float64
}

// Lerp interpolates between a and b; t is clamped to [0, 1].
func Lerp(a, b Frame, t float64) Frame {
	t = common.Clamp(t, 0, 1)
	return Frame{
		Opacity: a.Opacity + (b.Opacity-a.Opacity)*t,
		OffsetY: a.OffsetY + (b.OffsetY-a.OffsetY)*t,
	}
}

func easeOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

type animation struct {
	from, to   Frame
	start      time.Time
	duration   time.Duration
	onTick     func(Frame)
	onComplete func()
	done       bool
}

func (a *animation) tick(f Frame) {
	if a.onTick != nil {
		a.onTick(f)
	}
}

// Engine runs at most one animation at a time. Progress is derived from the
// clock, not from the number of frames delivered, so a slow or irregular
// scheduler shortens nothing and stretches nothing.
//
// An Engine is not safe for concurrent use; it belongs to the GUI thread.
type Engine struct {
	sched   common.Scheduler
	clock   common.Clock
	current *animation
}

// NewEngine creates an engine that schedules frames on sched.
func NewEngine(sched common.Scheduler, clock common.Clock) *Engine {
	if clock == nil {
		clock = common.SystemClock{}
	}
	return &Engine{sched: sched, clock: clock}
}

// Animate moves from one frame to another over duration, calling onTick with
// each interpolated frame and onComplete exactly once at the end. A running
// animation is finished first, so its onComplete fires before this one
// starts. A non-positive duration completes immediately.
func (e *Engine) Animate(from, to Frame, duration time.Duration, onTick func(Frame), onComplete func()) {
	e.Finish()

	a := &animation{
		from:       from,
		to:         to,
		start:      e.clock.Now(),
		duration:   duration,
		onTick:     onTick,
		onComplete: onComplete,
	}
	e.current = a

	if duration <= 0 {
		e.complete(a)
		return
	}

	a.tick(from)
	e.sched.Every(common.FrameInterval, func() bool {
		return e.step(a)
	})
}

func (e *Engine) step(a *animation) bool {
	if a.done {
		return false
	}
	elapsed := e.clock.Now().Sub(a.start)
	if elapsed >= a.duration {
		e.complete(a)
		return false
	}
	a.tick(Lerp(a.from, a.to, easeOutCubic(float64(elapsed)/float64(a.duration))))
	return true
}

// complete applies the terminal frame and fires onComplete, once.
func (e *Engine) complete(a *animation) {
	if a.done {
		return
	}
	a.done = true
	if e.current == a {
		e.current = nil
	}
	// onComplete still fires when the terminal frame panics.
	defer func() {
		if a.onComplete != nil {
			a.onComplete()
		}
	}()
	a.tick(a.to)
}

// Finish jumps the running animation, if any, to its last frame.
func (e *Engine) Finish() {
	if e.current != nil {
		e.complete(e.current)
	}
}

// Active reports whether an animation is running.
func (e *Engine) Active() bool {
	return e.current != nil
}
