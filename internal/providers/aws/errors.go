package aws

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"
)

// ErrorCategory groups EC2 failures by how the caller should react.
type ErrorCategory string

const (
	ErrResourceNotFound   ErrorCategory = "resource_not_found"  // unknown instance or AMI
	ErrPermissionDenied   ErrorCategory = "permission_denied"   // credentials rejected or lacking ec2:Describe*
	ErrThrottling         ErrorCategory = "request_throttled"   // API rate limit hit
	ErrConfigurationError ErrorCategory = "configuration_error" // no region or credentials resolved
	ErrNetworkError       ErrorCategory = "network_error"       // endpoint unreachable
	ErrInternalError      ErrorCategory = "internal_error"
)

// Resource types used in error reports
const (
	EC2ResourceType   = "EC2"
	ImageResourceType = "AMI"
)

// Error is an EC2 failure tagged with the instance source resource it concerns.
type Error struct {
	Category     ErrorCategory
	ResourceType string
	ResourceID   string
	Message      string
	Underlying   error
}

func (e *Error) Error() string {
	if e.ResourceID != "" {
		return fmt.Sprintf("%s: %s [resource: %s/%s]", e.Category, e.Message, e.ResourceType, e.ResourceID)
	}
	if e.ResourceType != "" {
		return fmt.Sprintf("%s: %s [resource type: %s]", e.Category, e.Message, e.ResourceType)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

// NewAWSError builds a categorised EC2 error.
func NewAWSError(category ErrorCategory, resourceType, resourceID, message string, underlying error) *Error {
	return &Error{
		Category:     category,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Message:      message,
		Underlying:   underlying,
	}
}

// IsErrorCategory reports whether err wraps an *Error of category.
func IsErrorCategory(err error, category ErrorCategory) bool {
	var awsErr *Error
	if errors.As(err, &awsErr) {
		return awsErr.Category == category
	}
	return false
}

// ClassifyAWSError classifies an AWS error by its API error code, falling
// back to the message for transport and SDK configuration failures.
func ClassifyAWSError(err error, resourceType, resourceID string) *Error {
	if err == nil {
		return nil
	}

	code := ""
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code = apiErr.ErrorCode()
	}
	msg := err.Error()

	switch {
	// Reference: https://docs.aws.amazon.com/AWSEC2/latest/APIReference/errors-overview.html
	case strings.HasPrefix(code, "InvalidAMIID"), strings.HasPrefix(code, "InvalidInstanceID"):
		return NewAWSError(ErrResourceNotFound, resourceType, resourceID, "Resource not found", err)

	case code == "UnauthorizedOperation", code == "AuthFailure", code == "InvalidClientTokenId":
		return NewAWSError(ErrPermissionDenied, resourceType, resourceID, "Access denied", err)

	case code == "RequestLimitExceeded", code == "Throttling":
		return NewAWSError(ErrThrottling, resourceType, resourceID, "Request throttled", err)

	case contains(msg, "no such host", "connection refused", "timeout"):
		return NewAWSError(ErrNetworkError, resourceType, resourceID,
			"Network error while accessing AWS API", err)

	case contains(msg, "could not find region", "failed to retrieve credentials", "no ec2 imds role found"):
		return NewAWSError(ErrConfigurationError, resourceType, resourceID,
			"AWS SDK configuration error", err)

	default:
		return NewAWSError(ErrInternalError, resourceType, resourceID,
			"Internal error occurred", err)
	}
}

// contains does a case-insensitive match of s against any of substrings
func contains(s string, substrings ...string) bool {
	lower := strings.ToLower(s)
	for _, substr := range substrings {
		if strings.Contains(lower, strings.ToLower(substr)) {
			return true
		}
	}
	return false
}
