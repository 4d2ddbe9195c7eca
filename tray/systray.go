package tray

import (
	"fyne.io/systray"
)

// SystrayPlatform drives the real notification area through fyne.io/systray.
type SystrayPlatform struct{}

// NewSystrayPlatform returns the native backend.
func NewSystrayPlatform() *SystrayPlatform {
	return &SystrayPlatform{}
}

// Probe looks for a notification host before systray registers anything.
func (p *SystrayPlatform) Probe() error {
	return probeNotificationHost()
}

func (p *SystrayPlatform) Run(onReady, onExit func()) {
	systray.Run(onReady, onExit)
}

func (p *SystrayPlatform) Quit() {
	systray.Quit()
}

func (p *SystrayPlatform) SetIcon(icon []byte) {
	systray.SetIcon(icon)
}

func (p *SystrayPlatform) SetTooltip(text string) {
	systray.SetTooltip(text)
}

// SetOnTapped replaces the default left-click behaviour (opening the menu)
// with fn. The menu stays reachable through the secondary button.
func (p *SystrayPlatform) SetOnTapped(fn func()) {
	systray.SetOnTapped(fn)
}

func (p *SystrayPlatform) AddMenuItem(title, tooltip string) MenuItem {
	return &systrayMenuItem{item: systray.AddMenuItem(title, tooltip)}
}

func (p *SystrayPlatform) AddSeparator() {
	systray.AddSeparator()
}

type systrayMenuItem struct {
	item *systray.MenuItem
}

func (m *systrayMenuItem) Clicked() <-chan struct{} {
	return m.item.ClickedCh
}

func (m *systrayMenuItem) SetTitle(title string) {
	m.item.SetTitle(title)
}
