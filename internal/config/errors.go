package config

import (
	"errors"
	"fmt"
	"strings"
)

// Error categories for configuration loading
const (
	// ErrMissingCredentials means required environment variables are unset
	ErrMissingCredentials = "missing_credentials"

	// ErrInvalidSettings means the settings file could not be read or decoded
	ErrInvalidSettings = "invalid_settings"
)

// Error describes a configuration problem detected at startup.
type Error struct {
	Category string
	Message  string

	// Variables lists the environment variables involved, if any
	Variables []string

	Underlying error
}

// Error returns the error message
func (e *Error) Error() string {
	if len(e.Variables) > 0 {
		return fmt.Sprintf("%s: %s [%s]", e.Category, e.Message, strings.Join(e.Variables, ", "))
	}
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Underlying
}

// IsErrorCategory checks if an error belongs to a specific error category
func IsErrorCategory(err error, category string) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Category == category
	}
	return false
}
