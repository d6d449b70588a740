package health

import "errors"

var (
	// ErrCheckFailed is returned by Run when at least one check failed.
	ErrCheckFailed = errors.New("health: check failed")
	// ErrCheckTimeout marks a check that did not finish in time.
	ErrCheckTimeout = errors.New("health: check timeout")
)
