package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/yllada/expense-tray/command"
	"github.com/yllada/expense-tray/common"
	"github.com/yllada/expense-tray/ledger"
	"github.com/yllada/expense-tray/window"
)

const (
	contentMargin = 18
	recentLimit   = 8
	queryTimeout  = 2 * time.Second
)

// MainWindow represents the main application window.
type MainWindow struct {
	app         *Application
	window      *adw.ApplicationWindow
	headerBar   *adw.HeaderBar
	content     *gtk.Box
	totalLabel  *gtk.Label
	recentList  *gtk.ListBox
	statusLabel *gtk.Label
}

// NewMainWindow creates the main window. It starts hidden; the visibility
// controller decides when it is shown.
func NewMainWindow(app *Application) *MainWindow {
	mw := &MainWindow{
		app: app,
	}

	mw.window = adw.NewApplicationWindow(&app.app.Application)
	mw.window.SetTitle(common.AppName)
	mw.window.SetDefaultSize(common.DefaultWindowWidth, common.DefaultWindowHeight)
	mw.window.SetResizable(false)
	mw.window.SetIconName(common.ConfigDirName)

	// Closing the window only hides it; the app lives on in the tray.
	mw.window.ConnectCloseRequest(func() bool {
		app.push(command.HideWindow())
		return true
	})

	mw.window.NotifyProperty("is-active", func() {
		if !mw.window.IsActive() && app.bridge != nil {
			app.bridge.Controller().FocusLost()
		}
	})

	mw.createLayout()

	return mw
}

// createLayout creates the window layout.
func (mw *MainWindow) createLayout() {
	mw.headerBar = adw.NewHeaderBar()

	addButton := gtk.NewButton()
	addButton.SetIconName("list-add-symbolic")
	addButton.SetTooltipText("Quick entry (Ctrl+N)")
	addButton.ConnectClicked(func() {
		mw.app.push(command.QuickAction())
	})
	mw.headerBar.PackStart(addButton)

	menuButton := gtk.NewMenuButton()
	menuButton.SetIconName("open-menu-symbolic")
	menuButton.SetTooltipText("Menu")
	menuButton.SetMenuModel(mw.createMenu())
	mw.headerBar.PackEnd(menuButton)

	rootBox := gtk.NewBox(gtk.OrientationVertical, 0)
	rootBox.Append(mw.headerBar)

	mw.content = gtk.NewBox(gtk.OrientationVertical, 12)
	mw.content.SetMarginTop(contentMargin)
	mw.content.SetMarginStart(contentMargin)
	mw.content.SetMarginEnd(contentMargin)
	mw.content.SetVExpand(true)

	caption := gtk.NewLabel("Spent today")
	caption.SetXAlign(0)
	caption.AddCSSClass("total-caption")
	mw.content.Append(caption)

	mw.totalLabel = gtk.NewLabel(ledger.Cents(0).String())
	mw.totalLabel.SetXAlign(0)
	mw.totalLabel.AddCSSClass("total-label")
	mw.content.Append(mw.totalLabel)

	mw.recentList = gtk.NewListBox()
	mw.recentList.SetSelectionMode(gtk.SelectionNone)

	scrolled := gtk.NewScrolledWindow()
	scrolled.SetVExpand(true)
	scrolled.SetPolicy(gtk.PolicyNever, gtk.PolicyAutomatic)
	scrolled.SetChild(mw.recentList)
	mw.content.Append(scrolled)

	rootBox.Append(mw.content)
	rootBox.Append(mw.createStatusBar())

	mw.window.SetContent(rootBox)
}

// createMenu creates the application menu.
func (mw *MainWindow) createMenu() *gio.Menu {
	menu := gio.NewMenu()

	entrySection := gio.NewMenu()
	entrySection.Append("Quick Entry", "app.quick")
	menu.AppendSection("", &entrySection.MenuModel)

	settingsSection := gio.NewMenu()
	settingsSection.Append("Preferences", "app.preferences")
	menu.AppendSection("", &settingsSection.MenuModel)

	appSection := gio.NewMenu()
	appSection.Append("About", "app.about")
	appSection.Append("Quit", "app.quit")
	menu.AppendSection("", &appSection.MenuModel)

	mw.setupActions()

	return menu
}

// setupActions configures menu actions.
func (mw *MainWindow) setupActions() {
	app := mw.app.app

	// Quick entry (Ctrl+N)
	quickAction := gio.NewSimpleAction("quick", nil)
	quickAction.ConnectActivate(func(_ *glib.Variant) {
		mw.app.push(command.QuickAction())
	})
	app.AddAction(quickAction)
	app.SetAccelsForAction("app.quick", []string{"<Control>n"})

	// Preferences (Ctrl+,)
	preferencesAction := gio.NewSimpleAction("preferences", nil)
	preferencesAction.ConnectActivate(func(_ *glib.Variant) {
		mw.onPreferences()
	})
	app.AddAction(preferencesAction)
	app.SetAccelsForAction("app.preferences", []string{"<Control>comma"})

	aboutAction := gio.NewSimpleAction("about", nil)
	aboutAction.ConnectActivate(func(_ *glib.Variant) {
		mw.onAbout()
	})
	app.AddAction(aboutAction)

	// Quit (Ctrl+Q) goes through the bridge so shutdown runs in order.
	quitAction := gio.NewSimpleAction("quit", nil)
	quitAction.ConnectActivate(func(_ *glib.Variant) {
		mw.app.push(command.Quit())
	})
	app.AddAction(quitAction)
	app.SetAccelsForAction("app.quit", []string{"<Control>q"})

	// Hide (Escape)
	hideAction := gio.NewSimpleAction("hide", nil)
	hideAction.ConnectActivate(func(_ *glib.Variant) {
		mw.app.push(command.HideWindow())
	})
	app.AddAction(hideAction)
	app.SetAccelsForAction("app.hide", []string{"Escape"})
}

// createStatusBar creates the status bar.
func (mw *MainWindow) createStatusBar() *gtk.Box {
	statusBar := gtk.NewBox(gtk.OrientationHorizontal, 12)
	statusBar.AddCSSClass("status-bar")

	mw.statusLabel = gtk.NewLabel("Ready")
	mw.statusLabel.SetXAlign(0)
	mw.statusLabel.SetHExpand(true)
	statusBar.Append(mw.statusLabel)

	return statusBar
}

// SetStatus updates the status text.
func (mw *MainWindow) SetStatus(text string) {
	if mw.statusLabel != nil {
		mw.statusLabel.SetText(text)
	}
}

// Refresh reloads today's total and the recent entries. The queries run off
// the main loop; widgets are updated back on it.
func (mw *MainWindow) Refresh() {
	store := mw.app.opts.Ledger
	if store == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()

		total, err := store.Today(ctx, time.Now())
		if err != nil {
			common.LogWarn("Failed to load today's total: %v", err)
			return
		}
		recent, err := store.Recent(ctx, recentLimit)
		if err != nil {
			common.LogWarn("Failed to load recent expenses: %v", err)
		}

		mw.app.push(command.UpdateTooltip(ledger.TodaySummary(total)))

		glib.IdleAdd(func() {
			mw.totalLabel.SetText(total.String())
			mw.showRecent(recent)
		})
	}()
}

func (mw *MainWindow) showRecent(expenses []ledger.Expense) {
	for {
		row := mw.recentList.RowAtIndex(0)
		if row == nil {
			break
		}
		mw.recentList.Remove(row)
	}

	if len(expenses) == 0 {
		empty := gtk.NewLabel("No expenses yet. Double-click the tray icon to add one.")
		empty.SetWrap(true)
		empty.AddCSSClass("dim-label")
		empty.SetMarginTop(24)
		mw.recentList.Append(empty)
		return
	}

	for _, e := range expenses {
		row := gtk.NewBox(gtk.OrientationHorizontal, 12)
		row.AddCSSClass("expense-row")

		when := gtk.NewLabel(e.CreatedAt.Format("Jan 2 15:04"))
		when.AddCSSClass("expense-time")
		row.Append(when)

		desc := gtk.NewLabel(e.Description)
		desc.SetXAlign(0)
		desc.SetHExpand(true)
		desc.SetEllipsize(3) // PANGO_ELLIPSIZE_END
		row.Append(desc)

		amount := gtk.NewLabel(e.Amount.String())
		amount.AddCSSClass("expense-amount")
		row.Append(amount)

		mw.recentList.Append(row)
	}
}

// ExpenseAdded reports a saved expense in the status bar and reloads totals.
func (mw *MainWindow) ExpenseAdded(e ledger.Expense) {
	label := e.Amount.String()
	if e.Description != "" {
		label = fmt.Sprintf("%s (%s)", label, e.Description)
	}
	mw.SetStatus("Saved " + label)
	mw.Refresh()
}

// trackDialog ties a secondary window to the visibility controller so it
// closes when the main window hides.
func (mw *MainWindow) trackDialog(title string, w *gtk.Window) {
	if mw.app.bridge == nil {
		return
	}
	d := window.NewDialog(title, func() error {
		w.Close()
		return nil
	})
	w.ConnectCloseRequest(func() bool {
		d.Dismissed()
		return false
	})
	if err := mw.app.bridge.Controller().Track(d); err != nil {
		common.LogWarn("%s dialog not tracked: %v", title, err)
	}
}

func (mw *MainWindow) onPreferences() {
	prefsDialog := NewPreferencesDialog(mw)
	mw.trackDialog("Preferences", prefsDialog.window)
	prefsDialog.Show()
}

func (mw *MainWindow) onAbout() {
	about := gtk.NewAboutDialog()
	about.SetTransientFor(&mw.window.Window)
	about.SetModal(true)

	about.SetProgramName(common.AppName)
	about.SetLogoIconName(common.ConfigDirName)
	about.SetVersion(mw.app.GetVersion())
	about.SetComments("Log expenses from the notification area.\nClick the tray icon to show the window, double-click to add an expense.")
	about.SetLicenseType(gtk.LicenseMITX11)
	about.SetAuthors([]string{"Yadian Llada Lopez <yadian@y3lcorp.com>"})

	mw.trackDialog("About", &about.Window)
	about.Show()
}

// showError displays an error dialog.
func (mw *MainWindow) showError(title, message string) {
	win := gtk.NewWindow()
	win.SetTitle(title)
	win.SetTransientFor(&mw.window.Window)
	win.SetModal(true)
	win.SetDefaultSize(350, 150)
	win.SetResizable(false)

	mainBox := gtk.NewBox(gtk.OrientationVertical, 12)
	mainBox.SetMarginTop(common.DialogMargin)
	mainBox.SetMarginBottom(common.DialogMargin)
	mainBox.SetMarginStart(common.DialogMargin)
	mainBox.SetMarginEnd(common.DialogMargin)
	mainBox.SetHAlign(gtk.AlignCenter)

	icon := gtk.NewImage()
	icon.SetFromIconName("dialog-error-symbolic")
	icon.SetPixelSize(48)
	mainBox.Append(icon)

	titleLabel := gtk.NewLabel(title)
	titleLabel.AddCSSClass("heading")
	mainBox.Append(titleLabel)

	msgLabel := gtk.NewLabel(message)
	msgLabel.SetWrap(true)
	msgLabel.SetMaxWidthChars(40)
	mainBox.Append(msgLabel)

	okBtn := gtk.NewButtonWithLabel("OK")
	okBtn.SetHAlign(gtk.AlignCenter)
	okBtn.SetMarginTop(12)
	okBtn.ConnectClicked(func() {
		win.Close()
	})
	mainBox.Append(okBtn)

	win.SetChild(mainBox)
	mw.trackDialog(title, win)
	win.Show()
}
