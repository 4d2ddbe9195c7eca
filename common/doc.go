// Package common provides shared constants, types, utilities, and interfaces
// used throughout the Expense Tray application.
//
// This package serves as the foundation for cross-cutting concerns:
//
//   - Constants: timing defaults for the tray bridge, animation and UI sizes
//   - Errors: Sentinel errors for consistent error handling across packages
//   - Interfaces: Scheduler and Clock, the GUI-thread timing abstractions
//   - Logger: Leveled logging with optional rotated file output
//
// # Usage
//
//	// Use constants
//	tick := common.DefaultPollInterval
//
//	// Use logger
//	common.LogInfo("Tray listener started with %d menu items", n)
//
//	// Check errors
//	if errors.Is(err, common.ErrPlatform) {
//	    // Continue without a tray icon
//	}
package common
