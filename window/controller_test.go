package window

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/yllada/expense-tray/anim"
	"github.com/yllada/expense-tray/command"
	"github.com/yllada/expense-tray/fakeloop"
)

const duration = 180 * time.Millisecond

type fakeHooks struct {
	calls     []string
	frames    []anim.Frame
	showErr   error
	hideErr   error
	hidePanic bool
	// framePanic makes every fully opaque frame panic.
	framePanic bool
	dialogs    []*Dialog
}

func (h *fakeHooks) OnShow() error {
	h.calls = append(h.calls, "show")
	return h.showErr
}

func (h *fakeHooks) OnHide() error {
	h.calls = append(h.calls, "hide")
	if h.hidePanic {
		panic("hide exploded")
	}
	return h.hideErr
}

func (h *fakeHooks) OnFrame(f anim.Frame) {
	h.frames = append(h.frames, f)
	if h.framePanic && f.Opacity == 1 {
		panic("frame exploded")
	}
}

func (h *fakeHooks) OnQuickAction() (*Dialog, error) {
	h.calls = append(h.calls, "quick")
	d := NewDialog("quick entry", nil)
	h.dialogs = append(h.dialogs, d)
	return d, nil
}

func (h *fakeHooks) OnQuit() {
	h.calls = append(h.calls, "quit")
}

type harness struct {
	loop   *fakeloop.Loop
	hooks  *fakeHooks
	ctrl   *Controller
	states []State
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	silenceLog(t)

	loop := fakeloop.New(time.Unix(0, 0))
	h := &harness{loop: loop, hooks: &fakeHooks{}}
	if opts.AnimationDuration == 0 {
		opts.AnimationDuration = duration
	}
	if opts.Clock == nil {
		opts.Clock = loop
	}
	h.ctrl = NewController(h.hooks, anim.NewEngine(loop, loop), NewRegistry(), opts)
	h.ctrl.OnChange(func(s Snapshot) { h.states = append(h.states, s.State) })
	return h
}

func (h *harness) apply(cmds ...command.Command) {
	for _, c := range cmds {
		h.ctrl.Apply(c)
	}
}

func (h *harness) settle() {
	h.loop.Advance(time.Second)
}

func statesEqual(a, b []State) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestController_ShowThenHide(t *testing.T) {
	h := newHarness(t, Options{})

	h.apply(command.ShowWindow())
	if h.ctrl.State() != AnimatingIn {
		t.Fatalf("State() = %s, want AnimatingIn", h.ctrl.State())
	}
	h.settle()
	if h.ctrl.State() != Visible {
		t.Fatalf("State() = %s, want Visible", h.ctrl.State())
	}

	h.apply(command.HideWindow())
	if h.ctrl.State() != AnimatingOut {
		t.Fatalf("State() = %s, want AnimatingOut", h.ctrl.State())
	}
	h.settle()

	want := []State{AnimatingIn, Visible, AnimatingOut, Hidden}
	if !statesEqual(h.states, want) {
		t.Errorf("states = %v, want %v", h.states, want)
	}
	if strings.Join(h.hooks.calls, ",") != "show,hide" {
		t.Errorf("hook calls = %v", h.hooks.calls)
	}
}

func TestController_Toggle(t *testing.T) {
	h := newHarness(t, Options{})

	h.apply(command.ToggleWindow())
	h.settle()
	if h.ctrl.State() != Visible {
		t.Fatalf("first toggle: State() = %s", h.ctrl.State())
	}
	h.apply(command.ToggleWindow())
	h.settle()
	if h.ctrl.State() != Hidden {
		t.Fatalf("second toggle: State() = %s", h.ctrl.State())
	}
}

func TestController_RedundantCommandsAreNoOps(t *testing.T) {
	h := newHarness(t, Options{})

	h.apply(command.HideWindow())
	if h.ctrl.State() != Hidden || len(h.states) != 0 {
		t.Errorf("hide while hidden changed state: %v", h.states)
	}

	h.apply(command.ShowWindow())
	h.settle()
	h.apply(command.ShowWindow())
	if h.ctrl.State() != Visible {
		t.Errorf("show while visible: State() = %s", h.ctrl.State())
	}
	if strings.Count(strings.Join(h.hooks.calls, ","), "show") != 1 {
		t.Errorf("OnShow called more than once: %v", h.hooks.calls)
	}
}

// A second toggle during the fade-in supersedes the first: the fade-in is
// jumped to its end, then exactly one fade-out runs.
func TestController_RapidToggleNeverOverlaps(t *testing.T) {
	h := newHarness(t, Options{})

	h.apply(command.ToggleWindow())
	h.loop.Advance(40 * time.Millisecond)
	h.apply(command.ToggleWindow())

	if h.ctrl.State() != AnimatingOut {
		t.Fatalf("State() = %s, want AnimatingOut", h.ctrl.State())
	}

	h.settle()
	want := []State{AnimatingIn, Visible, AnimatingOut, Hidden}
	if !statesEqual(h.states, want) {
		t.Errorf("states = %v, want %v", h.states, want)
	}
	if h.loop.Pending() != 0 {
		t.Errorf("%d frame callbacks still scheduled", h.loop.Pending())
	}
	if last := h.hooks.frames[len(h.hooks.frames)-1]; last != hiddenFrame {
		t.Errorf("last frame = %+v, want hidden frame", last)
	}
}

func TestController_HideClosesDialogs(t *testing.T) {
	h := newHarness(t, Options{})

	h.apply(command.ShowWindow())
	h.settle()
	h.apply(command.QuickAction(), command.QuickAction())

	if h.ctrl.registry.Len() != 2 {
		t.Fatalf("registry Len() = %d, want 2", h.ctrl.registry.Len())
	}

	h.apply(command.HideWindow())

	if h.ctrl.registry.Len() != 0 {
		t.Errorf("registry Len() = %d after hide, want 0", h.ctrl.registry.Len())
	}
	for _, d := range h.hooks.dialogs {
		if !d.Closed() {
			t.Errorf("dialog %s still open", d.ID())
		}
	}
}

func TestController_QuickActionWhileHidden(t *testing.T) {
	h := newHarness(t, Options{})

	h.apply(command.QuickAction())

	if h.ctrl.State() != Hidden {
		t.Errorf("quick action changed state to %s", h.ctrl.State())
	}
	if h.ctrl.registry.Len() != 1 {
		t.Errorf("registry Len() = %d, want 1", h.ctrl.registry.Len())
	}

	// Hiding an already hidden window still closes the dialog.
	h.apply(command.HideWindow())
	if h.ctrl.registry.Len() != 0 {
		t.Errorf("registry Len() = %d, want 0", h.ctrl.registry.Len())
	}
}

func TestController_FailedHooksStillReachTerminalState(t *testing.T) {
	h := newHarness(t, Options{})
	h.hooks.showErr = errors.New("no display")
	h.hooks.hidePanic = true

	h.apply(command.ShowWindow())
	h.settle()
	if h.ctrl.State() != Visible {
		t.Fatalf("after failed show: State() = %s, want Visible", h.ctrl.State())
	}

	h.apply(command.HideWindow())
	h.settle()
	if h.ctrl.State() != Hidden {
		t.Fatalf("after panicking hide: State() = %s, want Hidden", h.ctrl.State())
	}
}

func TestController_PanickingFrameHook(t *testing.T) {
	h := newHarness(t, Options{})
	h.hooks.framePanic = true

	h.apply(command.ShowWindow())
	h.settle()
	if h.ctrl.State() != Visible {
		t.Fatalf("after panicking frame: State() = %s, want Visible", h.ctrl.State())
	}

	h.apply(command.ToggleWindow())
	h.settle()
	if h.ctrl.State() != Hidden {
		t.Fatalf("toggle after panicking frame: State() = %s, want Hidden", h.ctrl.State())
	}
	if strings.Join(h.hooks.calls, ",") != "show,hide" {
		t.Errorf("hook calls = %v", h.hooks.calls)
	}
}

func TestController_TooltipAndStayOnTop(t *testing.T) {
	h := newHarness(t, Options{Tooltip: "Expense Tray"})

	var snaps []Snapshot
	h.ctrl.OnChange(func(s Snapshot) { snaps = append(snaps, s) })

	h.apply(command.UpdateTooltip("Today: 42.00"), command.UpdateTooltip("Today: 42.00"))
	h.apply(command.SetStayOnTop(true))

	if len(snaps) != 2 {
		t.Fatalf("got %d snapshots, want 2", len(snaps))
	}
	if snaps[0].Tooltip != "Today: 42.00" || !snaps[1].StayOnTop {
		t.Errorf("snapshots = %+v", snaps)
	}
	if h.ctrl.Snapshot().Tooltip != "Today: 42.00" {
		t.Errorf("Snapshot().Tooltip = %q", h.ctrl.Snapshot().Tooltip)
	}
}

func TestController_FocusLost(t *testing.T) {
	tests := []struct {
		name       string
		opts       Options
		stayOnTop  bool
		openDialog bool
		wantHidden bool
	}{
		{"hides", Options{HideOnFocusLoss: true}, false, false, true},
		{"setting off", Options{HideOnFocusLoss: false}, false, false, false},
		{"stay on top", Options{HideOnFocusLoss: true}, true, false, false},
		{"own dialog focused", Options{HideOnFocusLoss: true}, false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.opts)
			h.apply(command.SetStayOnTop(tt.stayOnTop), command.ShowWindow())
			h.settle()
			if tt.openDialog {
				h.apply(command.QuickAction())
			}

			h.ctrl.FocusLost()
			h.settle()

			if got := h.ctrl.State() == Hidden; got != tt.wantHidden {
				t.Errorf("hidden = %v, want %v", got, tt.wantHidden)
			}
		})
	}
}

func TestController_ToggleRightAfterFocusLossHide(t *testing.T) {
	tests := []struct {
		name        string
		gap         time.Duration
		wantVisible bool
	}{
		{"same click", 120 * time.Millisecond, false},
		{"later click", time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, Options{HideOnFocusLoss: true, FocusGrace: 200 * time.Millisecond})
			h.apply(command.ShowWindow())
			h.settle()

			h.ctrl.FocusLost()
			h.loop.Advance(tt.gap)
			h.apply(command.ToggleWindow())
			h.settle()

			if got := h.ctrl.State() == Visible; got != tt.wantVisible {
				t.Errorf("visible = %v, want %v (state %s)", got, tt.wantVisible, h.ctrl.State())
			}

			// The grace is used up; the next click toggles as usual.
			h.apply(command.ToggleWindow())
			h.settle()
			if got := h.ctrl.State() == Visible; got == tt.wantVisible {
				t.Errorf("second toggle left visible = %v", got)
			}
		})
	}
}

func TestController_TrackedDialogClosesOnHide(t *testing.T) {
	h := newHarness(t, Options{HideOnFocusLoss: true})
	h.apply(command.ShowWindow())
	h.settle()

	prefs := NewDialog("preferences", nil)
	if err := h.ctrl.Track(prefs); err != nil {
		t.Fatalf("Track() error = %v", err)
	}

	h.ctrl.FocusLost()
	if h.ctrl.State() != Visible {
		t.Fatal("focus moving to a tracked dialog hid the window")
	}

	h.apply(command.HideWindow())
	if !prefs.Closed() {
		t.Error("tracked dialog left open after hide")
	}
}

func TestController_FocusLostDuringFadeIn(t *testing.T) {
	h := newHarness(t, Options{HideOnFocusLoss: true})
	h.apply(command.ShowWindow())

	h.ctrl.FocusLost()
	h.settle()

	if h.ctrl.State() != Visible {
		t.Errorf("State() = %s, focus loss during fade-in should be ignored", h.ctrl.State())
	}
}

func TestController_Quit(t *testing.T) {
	h := newHarness(t, Options{})
	buf := silenceLog(t)

	h.apply(command.ToggleWindow(), command.QuickAction())
	h.apply(command.Quit())

	if h.ctrl.registry.Len() != 0 {
		t.Error("dialogs left open after quit")
	}
	if last := h.hooks.calls[len(h.hooks.calls)-1]; last != "quit" {
		t.Errorf("last hook = %s, want quit", last)
	}

	log := buf.String()
	closed := strings.Index(log, "Dialogs closed")
	teardown := strings.Index(log, "Visibility controller torn down")
	if closed < 0 || teardown < closed {
		t.Errorf("quit log order wrong:\n%s", log)
	}

	calls := len(h.hooks.calls)
	h.apply(command.ShowWindow(), command.Quit())
	h.settle()
	if len(h.hooks.calls) != calls {
		t.Errorf("commands after quit ran hooks: %v", h.hooks.calls[calls:])
	}
}

func TestState_String(t *testing.T) {
	for s, want := range map[State]string{
		Hidden:       "Hidden",
		AnimatingIn:  "AnimatingIn",
		Visible:      "Visible",
		AnimatingOut: "AnimatingOut",
		State(9):     "Unknown",
	} {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %s, want %s", int(s), got, want)
		}
	}
}

func TestSnapshot_WindowVisible(t *testing.T) {
	if (Snapshot{State: Hidden}).WindowVisible() || (Snapshot{State: AnimatingOut}).WindowVisible() {
		t.Error("hidden or hiding window reported visible")
	}
	if !(Snapshot{State: AnimatingIn}).WindowVisible() || !(Snapshot{State: Visible}).WindowVisible() {
		t.Error("shown window reported hidden")
	}
}
