package ui

import (
	"context"
	"errors"
	"time"

	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/yllada/expense-tray/common"
	"github.com/yllada/expense-tray/ledger"
	"github.com/yllada/expense-tray/window"
)

var errNoLedger = errors.New("expense ledger unavailable")

// QuickEntry is the small popup opened by a double click on the tray icon.
type QuickEntry struct {
	app      *Application
	window   *gtk.Window
	amount   *gtk.Entry
	note     *gtk.Entry
	errLabel *gtk.Label
	saveBtn  *gtk.Button
	dialog   *window.Dialog
}

// NewQuickEntry builds the quick-entry window.
func NewQuickEntry(app *Application) *QuickEntry {
	qe := &QuickEntry{app: app}
	qe.build()

	qe.dialog = window.NewDialog("Quick entry", func() error {
		qe.window.Close()
		return nil
	})
	qe.window.ConnectCloseRequest(func() bool {
		qe.dialog.Dismissed()
		return false
	})

	return qe
}

func (qe *QuickEntry) build() {
	qe.window = gtk.NewWindow()
	qe.window.SetTitle("Quick Entry")
	qe.window.SetDefaultSize(320, -1)
	qe.window.SetResizable(false)
	qe.window.SetIconName(common.ConfigDirName)

	mainBox := gtk.NewBox(gtk.OrientationVertical, 8)
	mainBox.AddCSSClass("quick-entry")
	mainBox.SetMarginTop(common.DialogMargin)
	mainBox.SetMarginBottom(common.DialogMargin)
	mainBox.SetMarginStart(common.DialogMargin)
	mainBox.SetMarginEnd(common.DialogMargin)

	amountLabel := gtk.NewLabel("Amount")
	amountLabel.SetXAlign(0)
	mainBox.Append(amountLabel)

	qe.amount = gtk.NewEntry()
	qe.amount.SetPlaceholderText("0.00")
	qe.amount.SetInputPurpose(gtk.InputPurposeNumber)
	qe.amount.AddCSSClass("amount")
	qe.amount.ConnectActivate(qe.save)
	mainBox.Append(qe.amount)

	noteLabel := gtk.NewLabel("Description")
	noteLabel.SetXAlign(0)
	mainBox.Append(noteLabel)

	qe.note = gtk.NewEntry()
	qe.note.SetPlaceholderText("Coffee, bus ticket...")
	qe.note.ConnectActivate(qe.save)
	mainBox.Append(qe.note)

	qe.errLabel = gtk.NewLabel("")
	qe.errLabel.SetXAlign(0)
	qe.errLabel.AddCSSClass("error-label")
	qe.errLabel.SetVisible(false)
	mainBox.Append(qe.errLabel)

	buttonBox := gtk.NewBox(gtk.OrientationHorizontal, 12)
	buttonBox.SetHAlign(gtk.AlignEnd)
	buttonBox.SetMarginTop(12)

	cancelBtn := gtk.NewButtonWithLabel("Cancel")
	cancelBtn.ConnectClicked(func() {
		qe.window.Close()
	})
	buttonBox.Append(cancelBtn)

	qe.saveBtn = gtk.NewButtonWithLabel("Save")
	qe.saveBtn.AddCSSClass("suggested-action")
	qe.saveBtn.ConnectClicked(qe.save)
	buttonBox.Append(qe.saveBtn)

	mainBox.Append(buttonBox)
	qe.window.SetChild(mainBox)
}

// save validates the input, then records the expense off the main loop.
func (qe *QuickEntry) save() {
	amount, err := ledger.ParseAmount(qe.amount.Text())
	if err != nil {
		qe.showError("Enter an amount such as 12.50")
		return
	}
	store := qe.app.opts.Ledger
	if store == nil {
		qe.showError(errNoLedger.Error())
		return
	}

	note := qe.note.Text()
	qe.saveBtn.SetSensitive(false)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()

		expense, err := store.Add(ctx, amount, note, time.Now())
		glib.IdleAdd(func() {
			if err != nil {
				common.LogError("Failed to record expense: %v", err)
				if qe.dialog.Closed() {
					NotifyExpenseFailed(err)
					return
				}
				qe.saveBtn.SetSensitive(true)
				qe.showError("Could not save: " + err.Error())
				return
			}
			common.LogInfo("Recorded expense %s", expense.ID)
			if mw := qe.app.window; mw != nil {
				mw.ExpenseAdded(expense)
			}
			qe.dialog.Close()
		})
	}()
}

func (qe *QuickEntry) showError(msg string) {
	qe.errLabel.SetText(msg)
	qe.errLabel.SetVisible(true)
	qe.amount.GrabFocus()
}

// Show presents the window with the amount field focused.
func (qe *QuickEntry) Show() {
	qe.window.Present()
	qe.amount.GrabFocus()
}

// Dialog returns the handle the visibility controller tracks.
func (qe *QuickEntry) Dialog() *window.Dialog {
	return qe.dialog
}
