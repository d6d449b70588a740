package livereload

import "errors"

// ErrClosed is returned when the hub no longer accepts clients.
var ErrClosed = errors.New("livereload: hub closed")
