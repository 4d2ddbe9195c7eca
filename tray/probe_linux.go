//go:build linux

package tray

import (
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/yllada/expense-tray/common"
)

const statusNotifierWatcher = "org.kde.StatusNotifierWatcher"

// probeNotificationHost asks the session bus whether a StatusNotifier host
// is running. Without one, systray registers an icon nobody will draw.
func probeNotificationHost() error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return &PlatformError{Op: "probe", Err: fmt.Errorf("session bus: %w", err)}
	}
	defer conn.Close()

	var owner string
	err = conn.BusObject().
		Call("org.freedesktop.DBus.GetNameOwner", 0, statusNotifierWatcher).
		Store(&owner)
	if err != nil {
		return &PlatformError{Op: "probe", Err: fmt.Errorf("%w: %s has no owner", common.ErrTrayUnavailable, statusNotifierWatcher)}
	}

	common.LogDebug("Notification host %s owned by %s", statusNotifierWatcher, owner)
	return nil
}
