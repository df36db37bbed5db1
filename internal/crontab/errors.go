package crontab

import "errors"

// Sentinel errors returned by tab open and write operations. Callers match
// them with errors.Is after unwrapping.
var (
	// ErrNotFound indicates the requested tab file does not exist.
	ErrNotFound = errors.New("crontab not found")

	// ErrParse indicates tab content could not be parsed at all.
	ErrParse = errors.New("crontab parse error")

	// ErrPermission indicates the tab file could not be read or written.
	ErrPermission = errors.New("crontab permission denied")

	// ErrNoBacking indicates a write was attempted on a tab that has no
	// engine behind it (e.g. the aggregated read-only view).
	ErrNoBacking = errors.New("tab has no backing engine")
)
