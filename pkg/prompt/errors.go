package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrInvalidValue is returned when a preset value fails its widget
	// constraint.
	ErrInvalidValue = errors.New("prompt: invalid value")
	// ErrUnknownField is returned when a preset names a field the selected
	// collection does not have.
	ErrUnknownField = errors.New("prompt: unknown field")
	// ErrNoCollections is returned when there is nothing to select.
	ErrNoCollections = errors.New("prompt: no collections available")
)
