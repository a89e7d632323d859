package manifest

import (
	"errors"
	"fmt"
)

// Errors returned by manifest operations.
var (
	// ErrMalformed indicates manifest data that cannot be decoded.
	ErrMalformed = errors.New("malformed manifest")

	// ErrUnsupportedFormat indicates a format other than toml or json.
	ErrUnsupportedFormat = errors.New("unsupported manifest format")

	// ErrUnsupportedContent indicates a page content handle that is not a PageRef.
	ErrUnsupportedContent = errors.New("unsupported page content")
)

// EntryError reports an invalid page entry.
type EntryError struct {
	Index  int
	Reason string
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("page entry %d: %s", e.Index, e.Reason)
}

// Unwrap returns ErrMalformed.
func (e *EntryError) Unwrap() error {
	return ErrMalformed
}
