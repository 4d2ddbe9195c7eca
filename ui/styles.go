// Package ui provides the graphical user interface for Expense Tray.
// This file contains the CSS styles for the main window and dialogs.
package ui

import (
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// Theme-aware styles; colors derive from currentColor where possible so
// dark and light system themes both work.
const appCSS = `
/* Today's total */
.total-label {
    font-size: 28px;
    font-weight: 700;
}

.total-caption {
    opacity: 0.6;
    font-size: 11px;
    text-transform: uppercase;
}

/* Recent expenses */
.expense-row {
    padding: 8px 12px;
    border-bottom: 1px solid alpha(currentColor, 0.08);
}

.expense-amount {
    font-family: monospace;
    font-weight: 600;
    color: #e5a50a;
}

.expense-time {
    opacity: 0.6;
    font-size: 11px;
}

/* Empty State */
.empty-state-icon {
    opacity: 0.4;
}

/* Quick entry */
.quick-entry {
    padding: 4px;
}

.quick-entry entry.amount {
    font-size: 18px;
    font-family: monospace;
}

.quick-entry .error-label {
    color: #e01b24;
    font-size: 11px;
}

/* Preferences cards */
.preferences-card {
    border-radius: 12px;
}

.settings-title {
    font-weight: 500;
}

/* Status Bar */
.status-bar {
    border-top: 1px solid alpha(currentColor, 0.15);
    padding: 6px 12px;
    opacity: 0.8;
}

/* Entry fields */
entry {
    border-radius: 6px;
    min-height: 34px;
}

list {
    background-color: transparent;
}

list > row {
    background-color: transparent;
}
`

// LoadStyles loads the custom CSS styles for the application.
// Should be called during application startup.
func LoadStyles() {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return
	}

	provider := gtk.NewCSSProvider()
	provider.LoadFromString(appCSS)

	gtk.StyleContextAddProviderForDisplay(
		display,
		provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
}
