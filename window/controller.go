package window

import (
	"fmt"
	"time"

	"github.com/yllada/expense-tray/anim"
	"github.com/yllada/expense-tray/command"
	"github.com/yllada/expense-tray/common"
)

var (
	hiddenFrame  = anim.Frame{Opacity: 0, OffsetY: common.SlideDistance}
	visibleFrame = anim.Frame{Opacity: 1, OffsetY: 0}
)

// Hooks is implemented by the GUI layer. The controller decides when each
// hook runs; the hooks do the actual widget work. All hooks are called on
// the GUI thread.
type Hooks interface {
	// OnShow makes the window visible, before it fades in.
	OnShow() error
	// OnHide withdraws the window, after it has faded out.
	OnHide() error
	// OnFrame renders one animation frame.
	OnFrame(frame anim.Frame)
	// OnQuickAction opens the quick-entry dialog.
	OnQuickAction() (*Dialog, error)
	// OnQuit leaves the GUI main loop.
	OnQuit()
}

// Options configures a Controller.
type Options struct {
	AnimationDuration time.Duration
	StayOnTop         bool
	HideOnFocusLoss   bool
	Tooltip           string
	// FocusGrace is how long after a focus-loss hide a Toggle is taken as
	// the tray click that caused it, and ignored. Zero disables it.
	FocusGrace time.Duration
	// Clock defaults to common.SystemClock.
	Clock common.Clock
}

// Controller is the visibility state machine. It owns the window state; no
// other code reads or writes it except through Apply and Snapshot.
type Controller struct {
	hooks    Hooks
	engine   *anim.Engine
	registry *Registry
	opts     Options

	state     State
	tooltip   string
	stayOnTop bool
	quitting  bool

	// focusHideAt is set when focus loss started the current hide.
	focusHideAt time.Time

	listeners []func(Snapshot)
}

// NewController creates a controller in the Hidden state.
func NewController(hooks Hooks, engine *anim.Engine, registry *Registry, opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = common.SystemClock{}
	}
	return &Controller{
		hooks:     hooks,
		engine:    engine,
		registry:  registry,
		opts:      opts,
		state:     Hidden,
		tooltip:   opts.Tooltip,
		stayOnTop: opts.StayOnTop,
	}
}

// Apply executes one command. Commands arriving after Quit are ignored.
func (c *Controller) Apply(cmd command.Command) {
	if c.quitting {
		common.LogDebug("Ignoring %s after quit", cmd)
		return
	}
	common.LogDebug("Applying %s in state %s", cmd, c.state)

	switch cmd.Kind {
	case command.CmdShowWindow:
		c.show()
	case command.CmdHideWindow:
		c.hide()
	case command.CmdToggleWindow:
		c.toggle()
	case command.CmdQuickAction:
		c.quickAction()
	case command.CmdQuit:
		c.quit()
	case command.CmdUpdateTooltip:
		if cmd.Text != c.tooltip {
			c.tooltip = cmd.Text
			c.notify()
		}
	case command.CmdSetStayOnTop:
		if cmd.Flag != c.stayOnTop {
			c.stayOnTop = cmd.Flag
			common.LogInfo("Stay on top: %t", c.stayOnTop)
			c.notify()
		}
	default:
		common.LogWarn("Unknown command %s", cmd)
	}
}

// State returns the current visibility state.
func (c *Controller) State() State {
	return c.state
}

// Snapshot returns a copy of the observable state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		State:     c.state,
		Tooltip:   c.tooltip,
		StayOnTop: c.stayOnTop,
	}
}

// OnChange registers fn to receive a snapshot after every change.
func (c *Controller) OnChange(fn func(Snapshot)) {
	c.listeners = append(c.listeners, fn)
}

// Track registers a dialog the GUI opened on its own, such as preferences,
// so that it is closed along with the main window.
func (c *Controller) Track(d *Dialog) error {
	return c.registry.Register(d)
}

// FocusLost hides a visible window when the settings ask for it. Focus moving
// to one of our own dialogs does not count.
func (c *Controller) FocusLost() {
	if c.quitting || !c.opts.HideOnFocusLoss || c.stayOnTop {
		return
	}
	if c.state != Visible || c.registry.Len() > 0 {
		return
	}
	common.LogDebug("Main window lost focus, hiding")
	c.hide()
	c.focusHideAt = c.opts.Clock.Now()
}

// settle finishes any running animation so the state is Hidden or Visible.
func (c *Controller) settle() {
	c.engine.Finish()
}

func (c *Controller) toggle() {
	c.settle()
	if c.focusHidRecently() {
		common.LogDebug("Toggle follows a focus-loss hide, keeping the window hidden")
		c.focusHideAt = time.Time{}
		return
	}
	if c.state == Visible {
		c.hide()
	} else {
		c.show()
	}
}

// focusHidRecently reports whether the window is hidden because it lost
// focus less than FocusGrace ago.
func (c *Controller) focusHidRecently() bool {
	if c.opts.FocusGrace <= 0 || c.focusHideAt.IsZero() || c.state != Hidden {
		return false
	}
	return c.opts.Clock.Now().Sub(c.focusHideAt) <= c.opts.FocusGrace
}

func (c *Controller) show() {
	c.settle()
	c.focusHideAt = time.Time{}
	if c.state == Visible {
		return
	}

	c.callHook("show", c.hooks.OnShow)
	c.setState(AnimatingIn)
	c.engine.Animate(hiddenFrame, visibleFrame, c.opts.AnimationDuration, c.frame, func() {
		c.setState(Visible)
	})
}

// hide closes dialogs even when the window is already hidden, since the
// quick-entry dialog can be open without the main window.
func (c *Controller) hide() {
	c.settle()
	if n := c.registry.CloseAll(); n > 0 {
		common.LogDebug("Closed %d dialog(s) on hide", n)
	}
	if c.state == Hidden {
		return
	}

	c.setState(AnimatingOut)
	c.engine.Animate(visibleFrame, hiddenFrame, c.opts.AnimationDuration, c.frame, func() {
		c.callHook("hide", c.hooks.OnHide)
		c.setState(Hidden)
	})
}

func (c *Controller) quickAction() {
	var d *Dialog
	c.callHook("quick action", func() error {
		var err error
		d, err = c.hooks.OnQuickAction()
		return err
	})
	if d == nil {
		return
	}
	if err := c.registry.Register(d); err != nil {
		common.LogWarn("Quick entry dialog not tracked: %v", err)
	}
}

func (c *Controller) quit() {
	c.quitting = true
	c.settle()

	n := c.registry.CloseAll()
	common.LogInfo("Dialogs closed (%d)", n)

	c.listeners = nil
	common.LogInfo("Visibility controller torn down in state %s", c.state)

	c.callHook("quit", func() error {
		c.hooks.OnQuit()
		return nil
	})
}

// callHook runs a GUI hook. A hook that fails or panics is logged; the state
// machine carries on to its next state regardless.
func (c *Controller) callHook(name string, fn func() error) {
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return fn()
	}()
	if err != nil {
		common.LogError("Window %s hook failed: %v", name, err)
	}
}

// frame renders one animation frame through the same guard as other hooks.
func (c *Controller) frame(f anim.Frame) {
	c.callHook("frame", func() error {
		c.hooks.OnFrame(f)
		return nil
	})
}

func (c *Controller) setState(s State) {
	if c.state == s {
		return
	}
	common.LogDebug("Window state %s -> %s", c.state, s)
	c.state = s
	c.notify()
}

func (c *Controller) notify() {
	snap := c.Snapshot()
	for _, fn := range c.listeners {
		fn(snap)
	}
}
