package page

import "errors"

// Errors returned by store operations.
var (
	// ErrDuplicateIdentifier indicates a page with the same ID is already stored.
	ErrDuplicateIdentifier = errors.New("duplicate page identifier")

	// ErrUnknownIdentifier indicates no page with the given ID is stored.
	ErrUnknownIdentifier = errors.New("unknown page identifier")
)
