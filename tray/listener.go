package tray

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yllada/expense-tray/command"
	"github.com/yllada/expense-tray/common"
)

// Context menu titles.
const (
	menuShow  = "Show window"
	menuHide  = "Hide window"
	menuQuick = "Quick entry"
	menuQuit  = "Quit"
)

// Options configures a Listener.
type Options struct {
	// ClickWindow is the double-click classification window.
	ClickWindow time.Duration
	// ShutdownTimeout bounds how long Stop waits for the native loop.
	ShutdownTimeout time.Duration
	// ReadyTimeout bounds how long Start waits for the icon to register.
	ReadyTimeout time.Duration
	// Clock timestamps clicks. Defaults to common.SystemClock.
	Clock common.Clock
}

func (o *Options) applyDefaults() {
	if o.ClickWindow <= 0 {
		o.ClickWindow = common.DefaultClickWindow
	}
	if o.ShutdownTimeout <= 0 {
		o.ShutdownTimeout = common.DefaultShutdownTimeout
	}
	if o.ReadyTimeout <= 0 {
		o.ReadyTimeout = common.TrayReadyTimeout
	}
	if o.Clock == nil {
		o.Clock = common.SystemClock{}
	}
}

// Status is an immutable copy of what the GUI wants the icon to show.
type Status struct {
	Tooltip       string
	WindowVisible bool
}

// Listener owns the tray icon. The native loop runs on its own locked OS
// thread; classification and command dispatch run on a second goroutine.
// Neither ever calls into the GUI: the only way out is sink.Push.
//
// Start and Stop must be called from the same goroutine.
type Listener struct {
	platform Platform
	opts     Options

	sink       command.Sink
	classifier *Classifier

	clicks  chan time.Time
	refresh chan struct{}
	status  atomic.Pointer[Status]

	toggleItem MenuItem
	quickItem  MenuItem
	quitItem   MenuItem

	started    atomic.Bool
	running    atomic.Bool
	readyMu    sync.Mutex
	abandoned  bool
	stop       chan struct{}
	done       chan struct{}
	nativeDone chan struct{}
	stopOnce   sync.Once
	stopErr    error
}

// NewListener creates a listener for platform. Nothing is registered until
// Start is called.
func NewListener(platform Platform, opts Options) *Listener {
	opts.applyDefaults()
	return &Listener{
		platform:   platform,
		opts:       opts,
		classifier: NewClassifier(opts.ClickWindow),
		clicks:     make(chan time.Time, 16),
		refresh:    make(chan struct{}, 1),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		nativeDone: make(chan struct{}),
	}
}

// Start registers the icon and begins delivering commands to sink.
// A failure is returned as a *PlatformError; the caller is expected to carry
// on without a tray icon.
func (l *Listener) Start(icon []byte, tooltip string, sink command.Sink) error {
	if !l.started.CompareAndSwap(false, true) {
		return common.ErrAlreadyStarted
	}
	l.sink = sink
	l.status.Store(&Status{Tooltip: tooltip})

	if err := l.platform.Probe(); err != nil {
		var pe *PlatformError
		if errors.As(err, &pe) {
			return err
		}
		return &PlatformError{Op: "probe", Err: err}
	}

	ready := make(chan struct{})
	go l.runNative(icon, tooltip, ready)

	select {
	case <-ready:
	case <-l.nativeDone:
		return &PlatformError{Op: "register", Err: errors.New("native loop exited before the icon was ready")}
	case <-time.After(l.opts.ReadyTimeout):
		l.abandon()
		return &PlatformError{Op: "register", Err: fmt.Errorf("%w: icon not ready after %v", common.ErrTrayUnavailable, l.opts.ReadyTimeout)}
	}

	l.running.Store(true)
	go l.loop()

	common.LogInfo("Tray listener started (click window %v)", l.opts.ClickWindow)
	return nil
}

// runNative owns the native message loop. The goroutine stays on one OS
// thread for its whole life because the platform's hidden window and its
// message queue are bound to the thread that created them.
func (l *Listener) runNative(icon []byte, tooltip string, ready chan struct{}) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(l.nativeDone)

	_ = guard("native loop", func() {
		l.platform.Run(
			func() {
				l.onReady(icon, tooltip)
				close(ready)
			},
			func() {
				_ = guard("onExit", func() { common.LogDebug("Tray icon unregistered") })
			},
		)
	})
}

// abandon gives up on a host that did not become ready in time. Holding
// readyMu means a late onReady either finished setup before this Quit or
// sees the flag and registers nothing.
func (l *Listener) abandon() {
	l.readyMu.Lock()
	defer l.readyMu.Unlock()
	l.abandoned = true
	_ = guard("quit", l.platform.Quit)
}

func (l *Listener) onReady(icon []byte, tooltip string) {
	l.readyMu.Lock()
	defer l.readyMu.Unlock()
	if l.abandoned {
		common.LogWarn("Tray host became ready after %v, unregistering", l.opts.ReadyTimeout)
		_ = guard("quit", l.platform.Quit)
		return
	}
	_ = guard("onReady", func() { l.setup(icon, tooltip) })
}

// setup runs on the native thread once the icon host is ready.
func (l *Listener) setup(icon []byte, tooltip string) {
	l.platform.SetIcon(icon)
	l.platform.SetTooltip(tooltip)
	l.platform.SetOnTapped(l.onTapped)

	l.toggleItem = l.platform.AddMenuItem(menuShow, "Show or hide the main window")
	l.quickItem = l.platform.AddMenuItem(menuQuick, "Record an expense")
	l.platform.AddSeparator()
	l.quitItem = l.platform.AddMenuItem(menuQuit, "Quit "+common.AppName)
}

// onTapped is the native click callback. It only timestamps the click and
// hands it over; a full buffer means the user is clicking faster than any
// gesture could be classified, so the click is discarded.
func (l *Listener) onTapped() {
	_ = guard("tap", func() {
		select {
		case l.clicks <- l.opts.Clock.Now():
		default:
			common.LogDebug("Tray click discarded, listener busy")
		}
	})
}

func (l *Listener) loop() {
	defer close(l.done)

	toggleC := clickedCh(l.toggleItem)
	quickC := clickedCh(l.quickItem)
	quitC := clickedCh(l.quitItem)

	var expire <-chan time.Time
	for {
		select {
		case <-l.stop:
			return
		case <-l.nativeDone:
			common.LogWarn("Tray native loop exited unexpectedly")
			return
		case ts := <-l.clicks:
			l.handle(l.classifier.OnClick(ts))
			expire = l.expiry()
		case <-expire:
			l.handle(l.classifier.Expire(l.opts.Clock.Now()))
			expire = l.expiry()
		case <-l.refresh:
			l.applyStatus()
		case <-toggleC:
			if l.status.Load().WindowVisible {
				l.dispatch("menu hide", command.HideWindow())
			} else {
				l.dispatch("menu show", command.ShowWindow())
			}
		case <-quickC:
			l.dispatch("menu quick entry", command.QuickAction())
		case <-quitC:
			l.dispatch("menu quit", command.Quit())
		}
	}
}

// expiry returns a channel that fires when the pending click becomes a
// single click, or nil when nothing is pending.
func (l *Listener) expiry() <-chan time.Time {
	deadline, ok := l.classifier.Deadline()
	if !ok {
		return nil
	}
	return time.After(deadline.Sub(l.opts.Clock.Now()))
}

func (l *Listener) handle(d Decision) {
	switch d {
	case Single:
		l.dispatch("single click", command.ToggleWindow())
	case Double:
		l.dispatch("double click", command.QuickAction())
	}
}

func (l *Listener) dispatch(name string, cmd command.Command) {
	_ = guard(name, func() {
		if err := l.sink.Push(cmd); err != nil {
			common.LogDebug("Tray %s: %v", name, err)
		}
	})
}

func (l *Listener) applyStatus() {
	s := l.status.Load()
	_ = guard("status refresh", func() {
		l.platform.SetTooltip(s.Tooltip)
		if l.toggleItem != nil {
			if s.WindowVisible {
				l.toggleItem.SetTitle(menuHide)
			} else {
				l.toggleItem.SetTitle(menuShow)
			}
		}
	})
}

// Publish hands the listener a new status. The value is copied; the listener
// never sees the caller's memory again. Safe from any goroutine.
func (l *Listener) Publish(s Status) {
	l.status.Store(&s)
	select {
	case l.refresh <- struct{}{}:
	default:
	}
}

// Stop unregisters the icon and waits, at most ShutdownTimeout, for both the
// native loop and the dispatch goroutine to exit. A timeout is logged and
// reported as common.ErrShutdownTimeout; shutdown should continue regardless.
// Stop is idempotent.
func (l *Listener) Stop() error {
	l.stopOnce.Do(func() {
		if l.started.CompareAndSwap(false, true) || !l.running.Load() {
			return
		}

		close(l.stop)
		_ = guard("quit", l.platform.Quit)

		timeout := time.After(l.opts.ShutdownTimeout)
		for _, ch := range []<-chan struct{}{l.done, l.nativeDone} {
			select {
			case <-ch:
			case <-timeout:
				common.LogWarn("Tray listener did not stop within %v, continuing shutdown", l.opts.ShutdownTimeout)
				l.stopErr = common.WrapError(common.ErrShutdownTimeout, "tray listener")
				return
			}
		}
		common.LogInfo("Tray listener stopped")
	})
	return l.stopErr
}

func clickedCh(item MenuItem) <-chan struct{} {
	if item == nil {
		return nil
	}
	return item.Clicked()
}
