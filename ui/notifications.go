// Package ui provides the graphical user interface for Expense Tray.
// This file contains the desktop notification helpers.
package ui

import (
	"os/exec"

	"github.com/yllada/expense-tray/common"
)

// NotificationType represents the type of notification
type NotificationType int

const (
	NotificationInfo NotificationType = iota
	NotificationWarning
	NotificationError
)

// Notification represents a system notification
type Notification struct {
	Title   string
	Message string
	Type    NotificationType
	Icon    string
}

// ShowNotification displays a system notification using notify-send.
// It does not block: the process is reaped on a goroutine.
func ShowNotification(n Notification) {
	icon := n.Icon
	if icon == "" {
		switch n.Type {
		case NotificationWarning:
			icon = "dialog-warning"
		case NotificationError:
			icon = "dialog-error"
		default:
			icon = common.ConfigDirName
		}
	}

	urgency := "low"
	switch n.Type {
	case NotificationError:
		urgency = "critical"
	case NotificationWarning:
		urgency = "normal"
	}

	cmd := exec.Command("notify-send",
		"--app-name="+common.AppName,
		"--icon="+icon,
		"--urgency="+urgency,
		n.Title,
		n.Message,
	)

	if err := cmd.Start(); err != nil {
		common.LogWarn("Error showing notification: %v", err)
		return
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			common.LogDebug("notify-send exited: %v", err)
		}
	}()
}

// NotifyTrayUnavailable tells the user the app is running without a tray icon.
func NotifyTrayUnavailable(err error) {
	common.LogDebug("Notifying tray failure: %v", err)
	ShowNotification(Notification{
		Title:   "Tray icon unavailable",
		Message: common.AppName + " could not add its icon to the notification area. The main window stays open instead.",
		Type:    NotificationWarning,
	})
}

// NotifyExpenseFailed reports an expense that could not be recorded.
func NotifyExpenseFailed(err error) {
	ShowNotification(Notification{
		Title:   "Expense not saved",
		Message: err.Error(),
		Type:    NotificationError,
	})
}
