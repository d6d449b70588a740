package obfuscator

import "errors"

// ErrUnknownMethod is returned by ParseMethod for unsupported method names.
var ErrUnknownMethod = errors.New("obfuscator: unknown method")
