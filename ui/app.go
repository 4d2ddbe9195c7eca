package ui

import (
	"os"
	"path/filepath"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/yllada/expense-tray/bridge"
	"github.com/yllada/expense-tray/command"
	"github.com/yllada/expense-tray/common"
	"github.com/yllada/expense-tray/config"
	"github.com/yllada/expense-tray/ledger"
	"github.com/yllada/expense-tray/tray"
)

// Options configures the application.
type Options struct {
	Version    string
	Config     *config.Config
	ConfigPath string
	// TrayIcon overrides the generated icon when non-nil.
	TrayIcon []byte
	// NoTray runs without a notification-area icon.
	NoTray bool
	// Ledger records expenses. Nil disables saving.
	Ledger *ledger.Store
}

// Application represents the main application.
type Application struct {
	app     *adw.Application
	opts    Options
	config  *config.Config
	window  *MainWindow
	bridge  *bridge.Bridge
	watcher *config.Watcher
}

// NewApplication creates a new application.
func NewApplication(opts Options) *Application {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}

	application := &Application{
		app:    adw.NewApplication(common.AppID, gio.ApplicationFlagsNone),
		opts:   opts,
		config: opts.Config,
	}

	application.app.ConnectActivate(application.onActivate)

	return application
}

// Run runs the application
func (a *Application) Run(args []string) int {
	return a.app.Run(args)
}

// onActivate runs on the primary instance, once at startup and again every
// time another launch forwards its activation here.
func (a *Application) onActivate() {
	if a.bridge != nil {
		common.LogInfo("Activated by another instance")
		a.push(command.ToggleWindow())
		return
	}

	a.setupAppIcon()
	LoadStyles()

	// The window is built hidden; only the bridge decides when it shows.
	a.window = NewMainWindow(a)

	var platform tray.Platform
	if !a.opts.NoTray {
		platform = tray.NewSystrayPlatform()
	}
	icon := a.opts.TrayIcon
	if icon == nil {
		icon = GenerateTrayIcon()
	}

	a.bridge = bridge.New(bridge.Options{
		Config:            a.config,
		Platform:          platform,
		Icon:              icon,
		Tooltip:           common.AppName,
		Scheduler:         glibScheduler{},
		Clock:             common.SystemClock{},
		Hooks:             &windowHooks{app: a},
		OnTrayUnavailable: NotifyTrayUnavailable,
	})

	// Keep running while the only window is hidden.
	a.app.Hold()

	if err := a.bridge.Start(); err != nil {
		common.LogError("Failed to start command bridge: %v", err)
		a.app.Release()
		a.app.Quit()
		return
	}

	a.watchConfig()
	a.window.Refresh()
}

// watchConfig relays setting changes made outside the application.
func (a *Application) watchConfig() {
	if a.opts.ConfigPath == "" {
		return
	}
	watcher, err := config.NewWatcher(a.opts.ConfigPath, func(cfg *config.Config) {
		a.push(command.SetStayOnTop(cfg.StayOnTop))
	})
	if err != nil {
		common.LogWarn("Config watcher unavailable: %v", err)
		return
	}
	if err := watcher.Start(); err != nil {
		common.LogWarn("Config watcher unavailable: %v", err)
		return
	}
	a.watcher = watcher
}

// push hands a command to the bridge. Safe from any goroutine once the
// bridge exists.
func (a *Application) push(cmd command.Command) {
	if a.bridge == nil {
		common.LogDebug("Command %s before bridge start, dropped", cmd)
		return
	}
	if err := a.bridge.Sink().Push(cmd); err != nil {
		common.LogDebug("Command %s not queued: %v", cmd, err)
	}
}

// RequestQuit asks the application to shut down in order.
// Safe from any goroutine, including signal handlers.
func (a *Application) RequestQuit() {
	glib.IdleAdd(func() {
		if a.bridge == nil {
			a.app.Quit()
			return
		}
		a.push(command.Quit())
	})
}

// shutdown leaves the main loop. It runs last, after the bridge has stopped
// the tray and dropped its queue.
func (a *Application) shutdown() {
	if a.watcher != nil {
		a.watcher.Stop()
	}
	if a.window != nil {
		a.window.window.Destroy()
	}
	a.app.Release()
	a.app.Quit()
}

// setupAppIcon sets up the application icon
func (a *Application) setupAppIcon() {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return
	}

	iconTheme := gtk.IconThemeGetForDisplay(display)
	if iconTheme == nil {
		return
	}

	// GTK4 looks for theme subdirectories (like "hicolor") inside these paths
	if execPath, err := os.Executable(); err == nil {
		iconTheme.AddSearchPath(filepath.Join(filepath.Dir(execPath), "assets", "icons"))
	}
	if cwd, err := os.Getwd(); err == nil {
		iconTheme.AddSearchPath(filepath.Join(cwd, "assets", "icons"))
	}

	gtk.WindowSetDefaultIconName(common.ConfigDirName)
}

// GetVersion returns the application version
func (a *Application) GetVersion() string {
	return a.opts.Version
}
