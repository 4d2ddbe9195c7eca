package ui

import (
	"errors"

	"github.com/yllada/expense-tray/anim"
	"github.com/yllada/expense-tray/window"
)

var errNoWindow = errors.New("main window not built")

// windowHooks performs the widget work the visibility controller asks for.
// The controller only calls these from the GTK main loop.
type windowHooks struct {
	app *Application
}

func (h *windowHooks) OnShow() error {
	mw := h.app.window
	if mw == nil {
		return errNoWindow
	}
	mw.Refresh()
	mw.window.SetOpacity(0)
	mw.window.SetVisible(true)
	mw.window.Present()
	return nil
}

func (h *windowHooks) OnHide() error {
	mw := h.app.window
	if mw == nil {
		return errNoWindow
	}
	mw.window.SetVisible(false)
	return nil
}

// OnFrame fades the window and slides its content. GTK4 gives no control
// over toplevel placement, so the slide moves the content inside the window.
func (h *windowHooks) OnFrame(f anim.Frame) {
	mw := h.app.window
	if mw == nil {
		return
	}
	mw.window.SetOpacity(f.Opacity)
	mw.content.SetMarginTop(contentMargin + int(f.OffsetY))
}

func (h *windowHooks) OnQuickAction() (*window.Dialog, error) {
	qe := NewQuickEntry(h.app)
	qe.Show()
	return qe.Dialog(), nil
}

func (h *windowHooks) OnQuit() {
	h.app.shutdown()
}
