package compiler

import "errors"

var (
	// ErrLayoutNotFound is returned when the layout file does not exist.
	ErrLayoutNotFound = errors.New("compiler: layout not found")
	// ErrWatchUnsupported is returned by Watch when no root directory is set.
	ErrWatchUnsupported = errors.New("compiler: watching requires a root directory")
)
