// Package common provides shared constants, types, and utilities
// used across the Expense Tray application.
package common

import "time"

// Application metadata.
const (
	// AppID is the unique identifier for the application.
	AppID = "io.github.yllada.ExpenseTray"
	// AppName is the display name of the application.
	AppName = "Expense Tray"
	// ConfigDirName is the name of the configuration directory.
	ConfigDirName = "expense-tray"
)

// File names used by the application.
const (
	ConfigFileName = "config.yaml"
	LogFileName    = "expense-tray.log"
	LedgerFileName = "expenses.db"
)

// Tray and command bridge timing.
const (
	// DefaultClickWindow is the longest gap between two icon clicks that
	// still counts as one double click.
	DefaultClickWindow = 110 * time.Millisecond
	// MinClickWindow and MaxClickWindow bound the configurable click window.
	MinClickWindow = 50 * time.Millisecond
	MaxClickWindow = 500 * time.Millisecond

	// DefaultPollInterval is how often the GUI thread drains the command queue.
	DefaultPollInterval = 30 * time.Millisecond
	// MinPollInterval and MaxPollInterval bound the configurable poll tick.
	MinPollInterval = 10 * time.Millisecond
	MaxPollInterval = 100 * time.Millisecond

	// DefaultQueueCapacity is the number of pending commands kept before the
	// oldest one is dropped.
	DefaultQueueCapacity = 64

	// DefaultShutdownTimeout bounds how long shutdown waits for the tray
	// listener to exit.
	DefaultShutdownTimeout = 2 * time.Second
	// TrayReadyTimeout bounds how long Start waits for the native icon.
	TrayReadyTimeout = 5 * time.Second
)

// Animation constants.
const (
	// DefaultAnimationDuration is the length of the show/hide fade.
	DefaultAnimationDuration = 180 * time.Millisecond
	// FrameInterval is the scheduling period of animation frames (~60 Hz).
	FrameInterval = 16 * time.Millisecond
	// SlideDistance is the vertical travel of the content during a fade, in pixels.
	SlideDistance = 12
)

// UI constants.
const (
	// DefaultWindowWidth is the default main window width.
	DefaultWindowWidth = 420
	// DefaultWindowHeight is the default main window height.
	DefaultWindowHeight = 320
	// DialogMargin is the standard margin for dialog content.
	DialogMargin = 24
	// TrayIconSize is the size of the system tray icon.
	TrayIconSize = 22
)
