package openstack

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gophercloud/gophercloud"
)

type ErrorCategory string

// Error categories for OpenStack API failures
const (
	// ErrResourceNotFound is returned when a requested resource doesn't exist
	ErrResourceNotFound ErrorCategory = "resource_not_found"

	// ErrPermissionDenied is returned when authentication or authorization fails
	ErrPermissionDenied ErrorCategory = "permission_denied"

	// ErrNetworkError is returned for network-related errors reaching the API
	ErrNetworkError ErrorCategory = "network_error"

	// ErrConfigurationError is returned when the endpoint or catalog is unusable
	ErrConfigurationError ErrorCategory = "configuration_error"

	// ErrInternalError is returned for unexpected errors
	ErrInternalError ErrorCategory = "internal_error"
)

// Resource types used in error reports
const (
	IdentityResourceType = "identity"
	ComputeResourceType  = "compute"
	ServerResourceType   = "server"
	ImageResourceType    = "image"
)

// Error represents an error that occurred during OpenStack operations.
type Error struct {
	Category     ErrorCategory
	ResourceType string
	ResourceID   string
	Message      string
	Underlying   error
}

// Error returns a formatted error message
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Category, e.Message)
	if e.ResourceID != "" {
		msg = fmt.Sprintf("%s [resource: %s/%s]", msg, e.ResourceType, e.ResourceID)
	} else if e.ResourceType != "" {
		msg = fmt.Sprintf("%s [resource type: %s]", msg, e.ResourceType)
	}
	if e.Underlying != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Underlying)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Underlying
}

// NewError creates a new OpenStack error with the specified details
func NewError(category ErrorCategory, resourceType, resourceID, message string, underlying error) *Error {
	return &Error{
		Category:     category,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Message:      message,
		Underlying:   underlying,
	}
}

// IsErrorCategory checks if an error belongs to a specific error category
func IsErrorCategory(err error, category ErrorCategory) bool {
	var osErr *Error
	if errors.As(err, &osErr) {
		return osErr.Category == category
	}
	return false
}

// ClassifyError maps a gophercloud failure onto an error category.
func ClassifyError(err error, resourceType, resourceID string) *Error {
	if err == nil {
		return nil
	}

	var already *Error
	if errors.As(err, &already) {
		return already
	}

	var (
		unauthorized gophercloud.ErrDefault401
		forbidden    gophercloud.ErrDefault403
		notFound     gophercloud.ErrDefault404
		missingInput gophercloud.ErrMissingInput
		noEndpoint   *gophercloud.ErrEndpointNotFound
	)

	msg := strings.ToLower(err.Error())

	switch {
	case errors.As(err, &notFound):
		return NewError(ErrResourceNotFound, resourceType, resourceID, "Resource not found", err)

	case errors.As(err, &unauthorized), errors.As(err, &forbidden):
		return NewError(ErrPermissionDenied, resourceType, resourceID, "Access denied", err)

	case errors.As(err, &missingInput), errors.As(err, &noEndpoint),
		strings.Contains(msg, "no suitable endpoint"):
		return NewError(ErrConfigurationError, resourceType, resourceID, "OpenStack client configuration error", err)

	case strings.Contains(msg, "no such host"),
		strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "timeout"):
		return NewError(ErrNetworkError, resourceType, resourceID, "Network error while accessing OpenStack API", err)

	default:
		return NewError(ErrInternalError, resourceType, resourceID, "Internal error occurred", err)
	}
}
