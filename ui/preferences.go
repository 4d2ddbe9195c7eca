// Package ui provides the graphical user interface for Expense Tray.
// This file contains the PreferencesDialog component for application settings.
package ui

import (
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/yllada/expense-tray/command"
	"github.com/yllada/expense-tray/common"
	"github.com/yllada/expense-tray/config"
)

// PreferencesDialog represents the preferences dialog.
type PreferencesDialog struct {
	window          *gtk.Window
	mainWindow      *MainWindow
	config          *config.Config
	stayOnTopSwitch *gtk.Switch
	focusSwitch     *gtk.Switch
	startSwitch     *gtk.Switch
}

// NewPreferencesDialog creates a new preferences dialog.
func NewPreferencesDialog(mainWindow *MainWindow) *PreferencesDialog {
	pd := &PreferencesDialog{
		mainWindow: mainWindow,
		config:     mainWindow.app.config,
	}

	pd.build()
	return pd
}

// build constructs the dialog UI.
func (pd *PreferencesDialog) build() {
	pd.window = gtk.NewWindow()
	pd.window.SetTitle("Settings")
	pd.window.SetTransientFor(&pd.mainWindow.window.Window)
	pd.window.SetModal(true)
	pd.window.SetDefaultSize(460, -1)
	pd.window.SetResizable(false)

	rootBox := gtk.NewBox(gtk.OrientationVertical, 0)

	mainBox := gtk.NewBox(gtk.OrientationVertical, 20)
	mainBox.SetMarginTop(common.DialogMargin)
	mainBox.SetMarginBottom(16)
	mainBox.SetMarginStart(common.DialogMargin)
	mainBox.SetMarginEnd(common.DialogMargin)

	// Window behavior
	windowSection := pd.createSection("Window", "window-new-symbolic")
	windowCard := pd.createCard()

	pd.stayOnTopSwitch = gtk.NewSwitch()
	pd.stayOnTopSwitch.SetActive(pd.config.StayOnTop)
	pd.stayOnTopSwitch.SetVAlign(gtk.AlignCenter)
	windowCard.Append(pd.createSettingRow(
		"Stay on Top",
		"Keep the window open when you switch to another application",
		pd.stayOnTopSwitch,
	))

	windowCard.Append(pd.createSeparator())

	pd.focusSwitch = gtk.NewSwitch()
	pd.focusSwitch.SetActive(pd.config.HideOnFocusLoss)
	pd.focusSwitch.SetVAlign(gtk.AlignCenter)
	windowCard.Append(pd.createSettingRow(
		"Hide on Focus Loss",
		"Hide the window when another window takes focus (applies after restart)",
		pd.focusSwitch,
	))

	windowSection.Append(windowCard)
	mainBox.Append(windowSection)

	// Startup
	startupSection := pd.createSection("Startup", "system-run-symbolic")
	startupCard := pd.createCard()

	pd.startSwitch = gtk.NewSwitch()
	pd.startSwitch.SetActive(pd.config.StartHidden)
	pd.startSwitch.SetVAlign(gtk.AlignCenter)
	startupCard.Append(pd.createSettingRow(
		"Start in Tray",
		"Show only the tray icon at launch",
		pd.startSwitch,
	))

	startupSection.Append(startupCard)
	mainBox.Append(startupSection)

	rootBox.Append(mainBox)

	buttonBar := gtk.NewBox(gtk.OrientationHorizontal, 12)
	buttonBar.SetHAlign(gtk.AlignEnd)
	buttonBar.SetMarginTop(16)
	buttonBar.SetMarginBottom(20)
	buttonBar.SetMarginStart(common.DialogMargin)
	buttonBar.SetMarginEnd(common.DialogMargin)

	cancelBtn := gtk.NewButtonWithLabel("Cancel")
	cancelBtn.ConnectClicked(func() {
		pd.window.Close()
	})
	buttonBar.Append(cancelBtn)

	saveBtn := gtk.NewButtonWithLabel("Save")
	saveBtn.AddCSSClass("suggested-action")
	saveBtn.ConnectClicked(func() {
		pd.savePreferences()
		pd.window.Close()
	})
	buttonBar.Append(saveBtn)

	rootBox.Append(buttonBar)

	pd.window.SetChild(rootBox)
}

// createSection creates a section with icon and title.
func (pd *PreferencesDialog) createSection(title string, iconName string) *gtk.Box {
	section := gtk.NewBox(gtk.OrientationVertical, 8)

	headerBox := gtk.NewBox(gtk.OrientationHorizontal, 8)

	icon := gtk.NewImage()
	icon.SetFromIconName(iconName)
	icon.SetPixelSize(18)
	icon.AddCSSClass("dim-label")
	headerBox.Append(icon)

	label := gtk.NewLabel(title)
	label.SetXAlign(0)
	label.AddCSSClass("heading")
	label.AddCSSClass("dim-label")
	headerBox.Append(label)

	section.Append(headerBox)

	return section
}

func (pd *PreferencesDialog) createCard() *gtk.Box {
	card := gtk.NewBox(gtk.OrientationVertical, 0)
	card.AddCSSClass("card")
	card.AddCSSClass("preferences-card")
	return card
}

// createSettingRow creates a row with title, description, and widget.
func (pd *PreferencesDialog) createSettingRow(title string, description string, widget gtk.Widgetter) *gtk.Box {
	row := gtk.NewBox(gtk.OrientationHorizontal, 12)
	row.SetMarginTop(14)
	row.SetMarginBottom(14)
	row.SetMarginStart(16)
	row.SetMarginEnd(16)

	textBox := gtk.NewBox(gtk.OrientationVertical, 4)
	textBox.SetHExpand(true)

	titleLabel := gtk.NewLabel(title)
	titleLabel.SetXAlign(0)
	titleLabel.AddCSSClass("settings-title")
	textBox.Append(titleLabel)

	descLabel := gtk.NewLabel(description)
	descLabel.SetXAlign(0)
	descLabel.AddCSSClass("dim-label")
	descLabel.AddCSSClass("caption")
	descLabel.SetWrap(true)
	descLabel.SetWrapMode(2) // PANGO_WRAP_WORD_CHAR
	textBox.Append(descLabel)

	row.Append(textBox)
	row.Append(widget)

	return row
}

func (pd *PreferencesDialog) createSeparator() *gtk.Separator {
	sep := gtk.NewSeparator(gtk.OrientationHorizontal)
	sep.SetMarginStart(16)
	sep.SetMarginEnd(16)
	return sep
}

// savePreferences writes the settings to disk. Stay-on-top applies at once;
// the others apply on the next start.
func (pd *PreferencesDialog) savePreferences() {
	pd.config.StayOnTop = pd.stayOnTopSwitch.Active()
	pd.config.HideOnFocusLoss = pd.focusSwitch.Active()
	pd.config.StartHidden = pd.startSwitch.Active()

	pd.mainWindow.app.push(command.SetStayOnTop(pd.config.StayOnTop))

	path := pd.mainWindow.app.opts.ConfigPath
	if path == "" {
		return
	}
	if err := pd.config.Save(path); err != nil {
		pd.mainWindow.showError("Error", "Could not save preferences: "+err.Error())
		return
	}

	pd.mainWindow.SetStatus("Settings saved")
}

// Show displays the preferences dialog.
func (pd *PreferencesDialog) Show() {
	pd.window.Show()
}
