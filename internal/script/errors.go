package script

import "errors"

// Errors for script execution.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrOperationLimit is returned when a script makes too many document calls.
	ErrOperationLimit = errors.New("script operation limit exceeded")

	// ErrInterrupted is returned when the run context ends before the script.
	ErrInterrupted = errors.New("script interrupted")
)
