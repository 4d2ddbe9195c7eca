// Package bridge connects the tray listener to the GUI thread. It owns the
// command queue, drains it on a poll tick, feeds the visibility controller,
// relays state snapshots back to the tray, and sequences shutdown.
package bridge

import (
	"github.com/yllada/expense-tray/anim"
	"github.com/yllada/expense-tray/command"
	"github.com/yllada/expense-tray/common"
	"github.com/yllada/expense-tray/config"
	"github.com/yllada/expense-tray/tray"
	"github.com/yllada/expense-tray/window"
)

// Options configures a Bridge.
type Options struct {
	Config *config.Config
	// Platform is the notification-area backend. Nil runs without a tray icon.
	Platform tray.Platform
	Icon     []byte
	Tooltip  string
	// Scheduler defines the GUI thread: every controller call happens inside
	// one of its callbacks.
	Scheduler common.Scheduler
	Clock     common.Clock
	Hooks     window.Hooks
	// OnTrayUnavailable is told, on the GUI thread, why the icon is missing.
	OnTrayUnavailable func(err error)
}

// Bridge is created and started on the GUI thread. Only Sink may be used
// from other goroutines.
type Bridge struct {
	opts       Options
	queue      *command.Queue
	listener   *tray.Listener
	registry   *window.Registry
	controller *window.Controller

	started bool
	stopped bool
	done    chan struct{}
}

// New wires the components together. Nothing runs until Start.
func New(opts Options) *Bridge {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Clock == nil {
		opts.Clock = common.SystemClock{}
	}
	if opts.Tooltip == "" {
		opts.Tooltip = common.AppName
	}
	cfg := opts.Config

	b := &Bridge{
		opts:     opts,
		queue:    command.NewQueue(cfg.QueueCapacity),
		registry: window.NewRegistry(),
		done:     make(chan struct{}),
	}
	b.controller = window.NewController(
		&bridgeHooks{Hooks: opts.Hooks, bridge: b},
		anim.NewEngine(opts.Scheduler, opts.Clock),
		b.registry,
		window.Options{
			AnimationDuration: cfg.AnimationDuration,
			StayOnTop:         cfg.StayOnTop,
			HideOnFocusLoss:   cfg.HideOnFocusLoss,
			Tooltip:           opts.Tooltip,
			FocusGrace:        cfg.ClickWindow + cfg.PollInterval,
			Clock:             opts.Clock,
		},
	)
	return b
}

// Start registers the tray icon and begins the poll tick. A tray failure is
// not fatal: it is logged, reported through OnTrayUnavailable, and the main
// window is shown so the application stays usable.
func (b *Bridge) Start() error {
	if b.started {
		return common.ErrAlreadyStarted
	}
	b.started = true
	cfg := b.opts.Config

	b.controller.OnChange(b.publish)

	showAtStart := !cfg.StartHidden
	if err := b.startTray(); err != nil {
		common.LogError("Tray icon unavailable, continuing without it: %v", err)
		if b.opts.OnTrayUnavailable != nil {
			b.opts.OnTrayUnavailable(err)
		}
		showAtStart = true
	}
	if showAtStart {
		_ = b.queue.Push(command.ShowWindow())
	}

	b.opts.Scheduler.Every(cfg.PollInterval, b.tick)
	common.LogInfo("Command bridge started (poll every %v)", cfg.PollInterval)
	return nil
}

func (b *Bridge) startTray() error {
	if b.opts.Platform == nil {
		return common.ErrTrayUnavailable
	}
	listener := tray.NewListener(b.opts.Platform, tray.Options{
		ClickWindow:     b.opts.Config.ClickWindow,
		ShutdownTimeout: b.opts.Config.ShutdownTimeout,
	})
	if err := listener.Start(b.opts.Icon, b.opts.Tooltip, b.queue); err != nil {
		return err
	}
	b.listener = listener
	return nil
}

// tick drains every pending command and applies it in order.
func (b *Bridge) tick() bool {
	if b.stopped {
		return false
	}
	for _, cmd := range b.queue.Drain() {
		b.controller.Apply(cmd)
		if b.stopped {
			break
		}
	}
	return !b.stopped
}

// publish hands the tray a copy of the controller's state.
func (b *Bridge) publish(s window.Snapshot) {
	if b.listener == nil {
		return
	}
	b.listener.Publish(tray.Status{
		Tooltip:       s.Tooltip,
		WindowVisible: s.WindowVisible(),
	})
}

// shutdown runs after the controller has closed its dialogs. The listener is
// joined before the queue goes away so nothing is pushed into a queue that
// will never be drained again.
func (b *Bridge) shutdown() {
	if b.stopped {
		return
	}
	b.stopped = true

	if b.listener != nil {
		if err := b.listener.Stop(); err != nil {
			common.LogWarn("Continuing shutdown: %v", err)
		}
	}
	b.queue.Close()

	common.LogInfo("Process exit requested")
	if b.opts.Hooks != nil {
		b.opts.Hooks.OnQuit()
	}
	close(b.done)
}

// Sink accepts commands from any goroutine.
func (b *Bridge) Sink() command.Sink {
	return b.queue
}

// Controller returns the visibility controller. GUI thread only.
func (b *Bridge) Controller() *window.Controller {
	return b.controller
}

// Done is closed once shutdown has completed.
func (b *Bridge) Done() <-chan struct{} {
	return b.done
}

// bridgeHooks inserts the bridge's shutdown steps between the controller's
// teardown and the GUI leaving its main loop.
type bridgeHooks struct {
	window.Hooks
	bridge *Bridge
}

func (h *bridgeHooks) OnQuit() {
	h.bridge.shutdown()
}
