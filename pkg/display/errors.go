package display

import "errors"

// ErrTemplateNotFound is returned when no template matches a logical name.
var ErrTemplateNotFound = errors.New("display: template not found")
