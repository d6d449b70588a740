package main

import "errors"

var (
	ErrInvalidSet     = errors.New("hyraft: --set expects key=value")
	ErrUnknownLibrary = errors.New("hyraft: unknown library")
	ErrUnknownFormat  = errors.New("hyraft: unknown output format")
)
