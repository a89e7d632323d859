package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrInvalidConfig indicates a settings source that cannot be decoded.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrValidationFailed indicates a setting with an unacceptable value.
	ErrValidationFailed = errors.New("validation failed")
)

// FieldError describes one invalid setting.
type FieldError struct {
	// Path is the dotted setting path, e.g. "history.maxVersions".
	Path string
	// Value is the rejected value.
	Value any
	// Reason describes the constraint.
	Reason string
	// Suggestion is the closest accepted value, if any is close.
	Suggestion string
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s = %v: %s (did you mean %q?)", e.Path, e.Value, e.Reason, e.Suggestion)
	}
	return fmt.Sprintf("%s = %v: %s", e.Path, e.Value, e.Reason)
}

// Unwrap returns ErrValidationFailed.
func (e *FieldError) Unwrap() error {
	return ErrValidationFailed
}
