package document

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange indicates a position outside the document.
var ErrIndexOutOfRange = errors.New("index out of range")

// IndexError describes an invalid position passed to a document operation.
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0,%d)", e.Op, e.Index, e.Len)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}
