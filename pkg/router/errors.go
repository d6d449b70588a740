package router

import "errors"

// ErrFrozen is the panic value when a route is added to a frozen table.
var ErrFrozen = errors.New("router: routes are frozen")
