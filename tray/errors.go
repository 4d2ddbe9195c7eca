package tray

import (
	"fmt"
	"runtime/debug"

	"github.com/yllada/expense-tray/common"
)

// PlatformError reports a failure to register or unregister the icon.
// It matches both common.ErrPlatform and the underlying cause.
type PlatformError struct {
	Op  string
	Err error
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("tray %s: %v", e.Op, e.Err)
}

func (e *PlatformError) Unwrap() []error {
	return []error{common.ErrPlatform, e.Err}
}

// guard runs fn and converts a panic into a logged error wrapping
// common.ErrCallbackPanic. Every entry point reached from the native
// side goes through here so a bad event never unwinds into the native loop.
func guard(name string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: %v: %w", name, r, common.ErrCallbackPanic)
			common.LogError("Recovered panic in %s: %v\n%s", name, r, debug.Stack())
		}
	}()
	fn()
	return nil
}
