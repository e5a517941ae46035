package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Reader Errors.

	// ErrFileOpen indicates an input file could not be opened.
	ErrFileOpen = errors.New("could not open file")

	// ErrMalformedData indicates the token stream ended, or held a non-numeric
	// token, before the declared number of values was read.
	ErrMalformedData = errors.New("malformed data")

	// Steering Errors.

	// ErrPollFailure indicates the steering source returned a non-success status.
	// The worker skips the iteration; it is never fatal.
	ErrPollFailure = errors.New("steering poll failed")

	// ErrUnknownParameter indicates a change was reported for a name no handler claims.
	ErrUnknownParameter = errors.New("unknown parameter")

	// ErrParameterExists indicates a parameter name was registered twice.
	ErrParameterExists = errors.New("parameter already registered")

	// ErrOutOfBounds indicates a steered value lies outside its registered bounds.
	ErrOutOfBounds = errors.New("value out of bounds")

	// ErrAlreadySignalled indicates a completion signal was raised a second time.
	ErrAlreadySignalled = errors.New("completion already signalled")

	// ErrAlreadyAwaited indicates a completion signal was waited on a second time.
	ErrAlreadyAwaited = errors.New("completion already awaited")

	// ErrSessionClosed indicates the steering source has been closed.
	ErrSessionClosed = errors.New("steering session closed")
)
