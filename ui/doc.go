// Package ui provides the graphical user interface for Expense Tray.
//
// This package implements the GTK4/libadwaita side of the application:
//
//   - Main window with today's total and recent expenses
//   - Quick-entry popup opened by a double click on the tray icon
//   - Preferences and about dialogs
//   - Desktop notifications
//
// # Architecture
//
// The notification-area icon lives in package tray and never touches GTK.
// Its clicks become commands in a queue owned by package bridge, which the
// GTK main loop drains on a timeout source (see glibScheduler). The
// visibility controller in package window decides what happens; this package
// only implements its hooks (windowHooks) and builds widgets.
//
// # Thread Safety
//
// GTK operations must execute on the main thread. Code here either runs in a
// GTK signal handler or a main loop source, or it hands work back with
// glib.IdleAdd after doing blocking I/O on a goroutine:
//
//	go func() {
//	    total, err := store.Today(ctx, time.Now())
//	    glib.IdleAdd(func() {
//	        label.SetText(total.String())
//	    })
//	}()
//
// Other goroutines reach the window only by pushing a command.Command.
//
// # File Organization
//
//   - app.go: Application lifecycle and bridge startup
//   - scheduler.go: Main loop scheduler handed to the bridge
//   - hooks.go: Visibility controller hooks
//   - main_window.go: Main window layout and menu
//   - quick_entry.go: Quick-entry popup
//   - preferences.go: Settings dialog
//   - icons.go: Icon generation for tray
//   - styles.go: CSS styling
//   - notifications.go: Desktop notification integration
package ui
