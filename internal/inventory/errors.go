package inventory

import (
	"errors"
	"fmt"
)

// Error categories for inventory projection
const (
	// ErrResolutionFailed means no usable access IP exists for an instance
	ErrResolutionFailed = "resolution_failed"

	// ErrInvalidInput represents validation errors in input parameters
	ErrInvalidInput = "invalid_input"
)

// Error represents an error that occurred while projecting instances
// into inventory output.
type Error struct {
	// Category helps with programmatic error handling
	Category string

	// Message provides human-readable details
	Message string

	// Instance identifies the instance involved (if applicable)
	Instance string

	// Underlying is the wrapped cause of this error
	Underlying error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Instance != "" {
		return fmt.Sprintf("%s: %s (instance: %s)", e.Category, e.Message, e.Instance)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

// Unwrap returns the underlying error (for errors.Is/As support)
func (e *Error) Unwrap() error {
	return e.Underlying
}

// NewError creates a new error with the given category and details
func NewError(category, message, instance string, underlying error) *Error {
	return &Error{
		Category:   category,
		Message:    message,
		Instance:   instance,
		Underlying: underlying,
	}
}

// IsErrorCategory checks if an error belongs to a specific error category
func IsErrorCategory(err error, category string) bool {
	if err == nil {
		return false
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Category == category
	}

	return false
}
