// File: internal/common/errors.go
package common

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// APIError represents a standard structure for API errors.
type APIError struct {
	StatusCode int         `json:"-"`
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("APIError: StatusCode=%d, Code=%s, Message=%s", e.StatusCode, e.Code, e.Message)
}

func NewAPIError(statusCode int, code, message string) *APIError {
	return &APIError{StatusCode: statusCode, Code: code, Message: message}
}

// WithDetails returns a copy of the error carrying extra context, so the
// package-level sentinel values are never mutated.
func (e *APIError) WithDetails(details interface{}) *APIError {
	return &APIError{
		StatusCode: e.StatusCode,
		Code:       e.Code,
		Message:    e.Message,
		Details:    details,
	}
}

// Is allows errors.Is to match a detailed copy against its sentinel.
func (e *APIError) Is(target error) bool {
	var apiErr *APIError
	if !errors.As(target, &apiErr) {
		return false
	}
	return e.Code == apiErr.Code
}

var (
	ErrBadRequest     = NewAPIError(http.StatusBadRequest, "BAD_REQUEST", "The request is invalid.")
	ErrUnauthorized   = NewAPIError(http.StatusUnauthorized, "UNAUTHORIZED", "Authentication is required and has failed or has not yet been provided.")
	ErrNotFound       = NewAPIError(http.StatusNotFound, "NOT_FOUND", "The requested resource could not be found.")
	ErrConflict       = NewAPIError(http.StatusConflict, "CONFLICT", "A conflict occurred with the current state of the resource.")
	ErrInternalServer = NewAPIError(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred on the server.")

	// ErrInvalidOrExpiredOTP deliberately collapses "wrong code", "expired
	// code" and "no such account" into one message so callers cannot probe
	// account existence or code freshness.
	ErrInvalidOrExpiredOTP = NewAPIError(http.StatusBadRequest, "INVALID_OR_EXPIRED_OTP", "The verification code is invalid or has expired.")

	// ErrDeliveryFailed signals that the notification channel failed after
	// state was already persisted; the client should resend, not re-register.
	ErrDeliveryFailed = NewAPIError(http.StatusBadGateway, "DELIVERY_FAILED", "The verification email could not be sent. Please request a new code.")

	// ErrProviderData signals that the external identity provider returned an
	// unusable profile.
	ErrProviderData = NewAPIError(http.StatusBadGateway, "PROVIDER_DATA", "The identity provider returned incomplete profile data.")
)

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func NewValidationAPIError(details interface{}) *APIError {
	return &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       "VALIDATION_ERROR",
		Message:    "Input validation failed.",
		Details:    details,
	}
}

// FormatValidationErrors converts validator.ValidationErrors into a map.
func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMap := make(map[string]string)
	for _, e := range errs {
		field := e.Field()
		var message string
		switch e.Tag() {
		case "required":
			message = fmt.Sprintf("The %s field is required.", strings.ToLower(field))
		case "email":
			message = fmt.Sprintf("The %s field must be a valid email address.", strings.ToLower(field))
		case "min":
			message = fmt.Sprintf("The %s field must be at least %s characters long.", strings.ToLower(field), e.Param())
		case "max":
			message = fmt.Sprintf("The %s field may not be greater than %s characters.", strings.ToLower(field), e.Param())
		case "len":
			message = fmt.Sprintf("The %s field must be exactly %s characters long.", strings.ToLower(field), e.Param())
		case "numeric":
			message = fmt.Sprintf("The %s field must contain only digits.", strings.ToLower(field))
		case "datetime":
			message = fmt.Sprintf("The %s field must be a valid date in the format %s.", strings.ToLower(field), e.Param())
		default:
			message = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag.", field, e.Tag())
		}
		errorMap[field] = message
	}
	return errorMap
}
