package renderer

import (
	"errors"

	"github.com/dmitrymomot/hyraft/pkg/display"
	"github.com/dmitrymomot/hyraft/pkg/transmuter"
)

var (
	// ErrEvaluation is returned when transmuter or view-model code fails.
	ErrEvaluation = transmuter.ErrEvaluation
	// ErrRequireNotFound marks a require directive with no library or file behind it.
	// Render logs it and carries on.
	ErrRequireNotFound = errors.New("renderer: required file not found")
	// ErrStyleNotFound is returned by PublicStyles for a missing stylesheet.
	ErrStyleNotFound = errors.New("renderer: stylesheet not found")
	// ErrTemplateNotFound is returned when a template file cannot be located.
	ErrTemplateNotFound = display.ErrTemplateNotFound
)
