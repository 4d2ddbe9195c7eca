// Package common provides shared constants, types, and utilities
// used across the Expense Tray application.
package common

import "errors"

// Sentinel errors for the tray bridge.
// These can be checked with errors.Is() for proper error handling.
var (
	// Platform errors.
	ErrPlatform        = errors.New("platform error")
	ErrTrayUnavailable = errors.New("notification area unavailable")
	ErrAlreadyStarted  = errors.New("already started")

	// Command queue errors.
	ErrQueueFull   = errors.New("command queue full")
	ErrQueueClosed = errors.New("command queue closed")

	// Lifecycle errors.
	ErrShutdownTimeout = errors.New("shutdown timed out")
	ErrCallbackPanic   = errors.New("panic in native callback")
	ErrDialogClosed    = errors.New("dialog already closed")

	// Configuration errors.
	ErrConfigLoad = errors.New("failed to load configuration")
	ErrConfigSave = errors.New("failed to save configuration")

	// Ledger errors.
	ErrLedgerOpen   = errors.New("failed to open expense ledger")
	ErrInvalidEntry = errors.New("invalid expense entry")
)

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
