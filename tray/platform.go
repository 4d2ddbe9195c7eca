// Package tray owns the notification-area icon. A listener goroutine receives
// native click notifications, classifies them into single and double clicks,
// and pushes commands into a command.Sink. It never touches GUI state.
package tray

// Platform is the native notification-area backend.
// Run blocks until Quit is called and may use the calling OS thread for the
// native message loop. All other methods are safe from any goroutine once
// onReady has fired.
type Platform interface {
	// Probe checks that an icon can be registered at all.
	Probe() error
	Run(onReady, onExit func())
	Quit()
	SetIcon(icon []byte)
	SetTooltip(text string)
	// SetOnTapped installs the primary-click handler. The handler runs on a
	// native thread.
	SetOnTapped(fn func())
	AddMenuItem(title, tooltip string) MenuItem
	AddSeparator()
}

// MenuItem is one entry of the icon's context menu.
type MenuItem interface {
	Clicked() <-chan struct{}
	SetTitle(title string)
}
