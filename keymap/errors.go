package keymap

import "errors"

// Sentinel errors for binding registration and lookup.
var (
	// ErrNotFound is returned when no binding's trigger equals the given
	// sequence.
	ErrNotFound = errors.New("binding not found")

	// ErrEmptySequence is returned when registering a binding with no
	// trigger symbols.
	ErrEmptySequence = errors.New("empty trigger sequence")

	// ErrNilHandler is returned when registering a binding without a
	// handler.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrUnknownAction is returned when a keymap file names an action the
	// host's action table does not provide.
	ErrUnknownAction = errors.New("unknown action")
)
