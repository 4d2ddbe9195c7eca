package bridge

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/yllada/expense-tray/anim"
	"github.com/yllada/expense-tray/command"
	"github.com/yllada/expense-tray/common"
	"github.com/yllada/expense-tray/config"
	"github.com/yllada/expense-tray/fakeloop"
	"github.com/yllada/expense-tray/tray"
	"github.com/yllada/expense-tray/window"
)

type stubItem struct{ ch chan struct{} }

func (i *stubItem) Clicked() <-chan struct{} { return i.ch }
func (i *stubItem) SetTitle(string) {}

// stubPlatform is a notification area whose native loop blocks until Quit.
type stubPlatform struct {
	probeErr error
	onRun    func()

	mu       sync.Mutex
	onTapped func()
	tooltip  string

	quit     chan struct{}
	quitOnce sync.Once
}

func newStubPlatform() *stubPlatform {
	return &stubPlatform{quit: make(chan struct{})}
}

func (p *stubPlatform) Probe() error { return p.probeErr }

func (p *stubPlatform) Run(onReady, onExit func()) {
	if p.onRun != nil {
		p.onRun()
	}
	onReady()
	<-p.quit
	onExit()
}

func (p *stubPlatform) Quit() { p.quitOnce.Do(func() { close(p.quit) }) }
func (p *stubPlatform) SetIcon([]byte) {}
func (p *stubPlatform) AddSeparator() {}

func (p *stubPlatform) SetTooltip(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tooltip = text
}

func (p *stubPlatform) Tooltip() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tooltip
}

func (p *stubPlatform) SetOnTapped(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onTapped = fn
}

func (p *stubPlatform) AddMenuItem(string, string) tray.MenuItem {
	return &stubItem{ch: make(chan struct{})}
}

func (p *stubPlatform) tap() {
	p.mu.Lock()
	fn := p.onTapped
	p.mu.Unlock()
	fn()
}

// recordingHooks stands in for the GTK layer.
type recordingHooks struct {
	mu      sync.Mutex
	calls   []string
	onCall  func(name string)
	dialogs []*window.Dialog
}

func (h *recordingHooks) record(name string) {
	h.mu.Lock()
	h.calls = append(h.calls, name)
	h.mu.Unlock()
	if h.onCall != nil {
		h.onCall(name)
	}
}

func (h *recordingHooks) OnShow() error { h.record("show"); return nil }
func (h *recordingHooks) OnHide() error { h.record("hide"); return nil }
func (h *recordingHooks) OnFrame(anim.Frame) { h.record("frame") }
func (h *recordingHooks) OnQuit() { h.record("quit") }

func (h *recordingHooks) OnQuickAction() (*window.Dialog, error) {
	h.record("quick")
	d := window.NewDialog("quick entry", func() error {
		h.record("dialog closed")
		return nil
	})
	h.dialogs = append(h.dialogs, d)
	return d, nil
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.ClickWindow = 50 * time.Millisecond
	cfg.PollInterval = 30 * time.Millisecond
	cfg.AnimationDuration = 180 * time.Millisecond
	cfg.ShutdownTimeout = 500 * time.Millisecond
	return cfg
}

func captureLog(t *testing.T) *syncBuffer {
	t.Helper()
	buf := &syncBuffer{}
	prev := common.GetLogger().SetOutput(buf)
	t.Cleanup(func() { common.GetLogger().SetOutput(prev) })
	return buf
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

// waitQueued blocks until the listener goroutine has pushed n commands.
func waitQueued(t *testing.T, b *Bridge, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for b.queue.Len() < n {
		if time.Now().After(deadline) {
			t.Fatalf("queue holds %d commands, want %d", b.queue.Len(), n)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

type stateRecord struct {
	state window.State
	at    time.Time
}

func TestBridge_ClickShowsWindow(t *testing.T) {
	captureLog(t)
	loop := fakeloop.New(time.Unix(0, 0))
	platform := newStubPlatform()
	cfg := testConfig()

	b := New(Options{Config: cfg, Platform: platform, Scheduler: loop, Clock: loop, Hooks: &recordingHooks{}})
	var states []stateRecord
	b.Controller().OnChange(func(s window.Snapshot) {
		states = append(states, stateRecord{s.State, loop.Now()})
	})
	if err := b.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() { b.Sink().Push(command.Quit()); loop.Advance(time.Second) })

	if b.Controller().State() != window.Hidden {
		t.Fatalf("initial state = %s", b.Controller().State())
	}

	platform.tap()
	waitQueued(t, b, 1)

	issued := loop.Now()
	loop.Advance(cfg.AnimationDuration + 2*cfg.PollInterval)

	if len(states) < 2 || states[0].state != window.AnimatingIn || states[1].state != window.Visible {
		t.Fatalf("states = %v, want AnimatingIn then Visible", states)
	}
	elapsed := states[1].at.Sub(issued)
	if elapsed < cfg.AnimationDuration-cfg.PollInterval || elapsed > cfg.AnimationDuration+cfg.PollInterval+common.FrameInterval {
		t.Errorf("Visible after %v, want %v within one poll tick", elapsed, cfg.AnimationDuration)
	}
}

func TestBridge_TooltipReachesTray(t *testing.T) {
	captureLog(t)
	loop := fakeloop.New(time.Unix(0, 0))
	platform := newStubPlatform()

	b := New(Options{Config: testConfig(), Platform: platform, Scheduler: loop, Clock: loop, Hooks: &recordingHooks{}})
	if err := b.Start(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { b.Sink().Push(command.Quit()); loop.Advance(time.Second) })

	_ = b.Sink().Push(command.UpdateTooltip("Today: 18.40"))
	loop.Advance(30 * time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for platform.Tooltip() != "Today: 18.40" {
		if time.Now().After(deadline) {
			t.Fatalf("tooltip = %q", platform.Tooltip())
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func TestBridge_DegradesWithoutTray(t *testing.T) {
	buf := captureLog(t)
	loop := fakeloop.New(time.Unix(0, 0))
	platform := newStubPlatform()
	platform.probeErr = common.ErrTrayUnavailable

	var reported error
	b := New(Options{
		Config:            testConfig(),
		Platform:          platform,
		Scheduler:         loop,
		Clock:             loop,
		Hooks:             &recordingHooks{},
		OnTrayUnavailable: func(err error) { reported = err },
	})
	if err := b.Start(); err != nil {
		t.Fatalf("Start() error = %v, tray failure must not be fatal", err)
	}

	if !errors.Is(reported, common.ErrPlatform) {
		t.Errorf("OnTrayUnavailable got %v", reported)
	}
	if !strings.Contains(buf.String(), "Tray icon unavailable") {
		t.Error("tray failure not logged")
	}

	loop.Advance(time.Second)
	if b.Controller().State() != window.Visible {
		t.Errorf("State() = %s, window should be shown when the tray is missing", b.Controller().State())
	}

	_ = b.Sink().Push(command.Quit())
	loop.Advance(time.Second)
	select {
	case <-b.Done():
	default:
		t.Error("Done() not closed after quit")
	}
}

func TestBridge_StartVisible(t *testing.T) {
	captureLog(t)
	loop := fakeloop.New(time.Unix(0, 0))
	cfg := testConfig()
	cfg.StartHidden = false

	b := New(Options{Config: cfg, Platform: newStubPlatform(), Scheduler: loop, Clock: loop, Hooks: &recordingHooks{}})
	if err := b.Start(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { b.Sink().Push(command.Quit()); loop.Advance(time.Second) })

	loop.Advance(time.Second)
	if b.Controller().State() != window.Visible {
		t.Errorf("State() = %s, want Visible", b.Controller().State())
	}
	if err := b.Start(); !errors.Is(err, common.ErrAlreadyStarted) {
		t.Errorf("second Start() = %v", err)
	}
}

func TestBridge_ShutdownOrder(t *testing.T) {
	buf := captureLog(t)
	loop := fakeloop.New(time.Unix(0, 0))
	hooks := &recordingHooks{}

	b := New(Options{Config: testConfig(), Platform: newStubPlatform(), Scheduler: loop, Clock: loop, Hooks: hooks})
	if err := b.Start(); err != nil {
		t.Fatal(err)
	}

	_ = b.Sink().Push(command.ShowWindow())
	_ = b.Sink().Push(command.QuickAction())
	_ = b.Sink().Push(command.QuickAction())
	loop.Advance(30 * time.Millisecond)
	_ = b.Sink().Push(command.Quit())
	_ = b.Sink().Push(command.HideWindow())
	loop.Advance(time.Second)

	select {
	case <-b.Done():
	default:
		t.Fatal("Done() not closed after quit")
	}

	log := buf.String()
	steps := []string{"Dialogs closed", "Tray listener stopped", "Command queue dropped", "Process exit requested"}
	last := -1
	for _, step := range steps {
		i := strings.Index(log, step)
		if i < 0 {
			t.Fatalf("%q missing from log:\n%s", step, log)
		}
		if i < last {
			t.Fatalf("%q logged out of order:\n%s", step, log)
		}
		last = i
	}

	for _, d := range hooks.dialogs {
		if !d.Closed() {
			t.Error("dialog left open after quit")
		}
	}
	if hooks.calls[len(hooks.calls)-1] != "quit" {
		t.Errorf("last hook = %s, want quit", hooks.calls[len(hooks.calls)-1])
	}
	if loop.Pending() != 0 {
		t.Errorf("%d callbacks still scheduled after quit", loop.Pending())
	}
	if err := b.Sink().Push(command.ShowWindow()); !errors.Is(err, common.ErrQueueClosed) {
		t.Errorf("Push after shutdown = %v, want ErrQueueClosed", err)
	}
}
