package logger

import "errors"

var (
	ErrUnknownLevel  = errors.New("logger: unknown level")
	ErrUnknownFormat = errors.New("logger: unknown format")
	ErrSentryInit    = errors.New("logger: sentry init failed")
)
