package anim

import (
	"testing"
	"time"

	"github.com/yllada/expense-tray/fakeloop"
)

var (
	hidden  = Frame{Opacity: 0, OffsetY: 12}
	visible = Frame{Opacity: 1, OffsetY: 0}
)

func TestLerp(t *testing.T) {
	tests := []struct {
		name string
		t    float64
		want Frame
	}{
		{"start", 0, hidden},
		{"end", 1, visible},
		{"middle", 0.5, Frame{Opacity: 0.5, OffsetY: 6}},
		{"below range", -1, hidden},
		{"above range", 2, visible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lerp(hidden, visible, tt.t); got != tt.want {
				t.Errorf("Lerp(%v) = %+v, want %+v", tt.t, got, tt.want)
			}
		})
	}
}

func TestEaseOutCubic(t *testing.T) {
	if easeOutCubic(0) != 0 || easeOutCubic(1) != 1 {
		t.Error("easing must map 0 to 0 and 1 to 1")
	}
	prev := 0.0
	for i := 1; i <= 10; i++ {
		v := easeOutCubic(float64(i) / 10)
		if v < prev {
			t.Fatalf("easing not monotonic at %d", i)
		}
		prev = v
	}
}

func TestEngine_RunsToCompletion(t *testing.T) {
	loop := fakeloop.New(time.Unix(0, 0))
	e := NewEngine(loop, loop)

	var frames []Frame
	completions := 0
	e.Animate(hidden, visible, 180*time.Millisecond,
		func(f Frame) { frames = append(frames, f) },
		func() { completions++ })

	if !e.Active() {
		t.Fatal("engine should be active")
	}
	if frames[0] != hidden {
		t.Errorf("first frame = %+v, want start frame", frames[0])
	}

	loop.Advance(100 * time.Millisecond)
	if completions != 0 {
		t.Fatal("completed early")
	}
	mid := frames[len(frames)-1]
	if mid.Opacity <= 0 || mid.Opacity >= 1 {
		t.Errorf("mid-animation opacity = %v", mid.Opacity)
	}

	loop.Advance(100 * time.Millisecond)
	if completions != 1 {
		t.Fatalf("completions = %d, want 1", completions)
	}
	if last := frames[len(frames)-1]; last != visible {
		t.Errorf("last frame = %+v, want end frame", last)
	}
	if e.Active() {
		t.Error("engine should be idle")
	}
	if loop.Pending() != 0 {
		t.Errorf("%d frame callbacks still scheduled", loop.Pending())
	}
}

// The duration comes from the clock: the same animation finishes at the same
// time however coarse the frame delivery is.
func TestEngine_TimeBased(t *testing.T) {
	loop := fakeloop.New(time.Unix(0, 0))
	e := NewEngine(loop, loop)

	var doneAt time.Duration
	e.Animate(hidden, visible, 180*time.Millisecond, nil, func() {
		doneAt = loop.Now().Sub(time.Unix(0, 0))
	})
	loop.Advance(time.Second)

	if doneAt < 180*time.Millisecond || doneAt > 180*time.Millisecond+16*time.Millisecond {
		t.Errorf("completed at %v, want within one frame of 180ms", doneAt)
	}
}

func TestEngine_InterruptCompletesOnce(t *testing.T) {
	loop := fakeloop.New(time.Unix(0, 0))
	e := NewEngine(loop, loop)

	var last Frame
	firstDone, secondDone := 0, 0
	e.Animate(hidden, visible, 180*time.Millisecond,
		func(f Frame) { last = f },
		func() { firstDone++ })
	loop.Advance(50 * time.Millisecond)

	e.Animate(visible, hidden, 180*time.Millisecond,
		func(f Frame) { last = f },
		func() { secondDone++ })

	if firstDone != 1 {
		t.Fatalf("interrupted animation completed %d times, want 1", firstDone)
	}

	loop.Advance(time.Second)
	if firstDone != 1 || secondDone != 1 {
		t.Errorf("completions = %d/%d, want 1/1", firstDone, secondDone)
	}
	if last != hidden {
		t.Errorf("final frame = %+v, want %+v", last, hidden)
	}
}

func TestEngine_InterruptAppliesTerminalFrame(t *testing.T) {
	loop := fakeloop.New(time.Unix(0, 0))
	e := NewEngine(loop, loop)

	var last Frame
	var atCompletion Frame
	e.Animate(hidden, visible, 180*time.Millisecond,
		func(f Frame) { last = f },
		func() { atCompletion = last })
	loop.Advance(32 * time.Millisecond)

	e.Finish()
	if atCompletion != visible {
		t.Errorf("frame at completion = %+v, want %+v", atCompletion, visible)
	}
	e.Finish()
}

func TestEngine_ZeroDuration(t *testing.T) {
	loop := fakeloop.New(time.Unix(0, 0))
	e := NewEngine(loop, loop)

	var got Frame
	done := false
	e.Animate(hidden, visible, 0, func(f Frame) { got = f }, func() { done = true })

	if !done || got != visible {
		t.Errorf("zero duration: done=%v frame=%+v", done, got)
	}
	if loop.Pending() != 0 || e.Active() {
		t.Error("zero duration should schedule nothing")
	}
}

func TestEngine_CompletionMayChain(t *testing.T) {
	loop := fakeloop.New(time.Unix(0, 0))
	e := NewEngine(loop, loop)

	chained := false
	e.Animate(hidden, visible, 50*time.Millisecond, nil, func() {
		e.Animate(visible, hidden, 50*time.Millisecond, nil, func() { chained = true })
	})
	loop.Advance(time.Second)

	if !chained {
		t.Error("animation started from onComplete did not run")
	}
}

func TestEngine_PanickingTerminalFrameStillCompletes(t *testing.T) {
	loop := fakeloop.New(time.Unix(0, 0))
	e := NewEngine(loop, loop)

	completions := 0
	e.Animate(hidden, visible, 180*time.Millisecond,
		func(f Frame) {
			if f == visible {
				panic("render failed")
			}
		},
		func() { completions++ })
	loop.Advance(32 * time.Millisecond)

	func() {
		defer func() { _ = recover() }()
		e.Finish()
	}()

	if completions != 1 {
		t.Errorf("completions = %d, want 1", completions)
	}
	if e.Active() {
		t.Error("engine still active after completion")
	}
}
