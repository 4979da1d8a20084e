package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind names a category of the error taxonomy
type ErrorKind string

const (
	KindValidation          ErrorKind = "ValidationError"
	KindConfiguration       ErrorKind = "ConfigurationError"
	KindProviderUnavailable ErrorKind = "ProviderUnavailable"
	KindGateway             ErrorKind = "GatewayError"
	KindVerification        ErrorKind = "VerificationError"
	KindDuplicateUser       ErrorKind = "DuplicateUserError"
	KindUnauthorized        ErrorKind = "Unauthorized"
	KindNotFound            ErrorKind = "NotFound"
	KindRateLimited         ErrorKind = "RateLimited"
)

// AppError represents an application error
type AppError struct {
	Kind    ErrorKind `json:"kind"`
	Code    int       `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
	// Details is merged into the JSON error body (troubleshooting hints, instructions...)
	Details map[string]interface{} `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetails attaches extra response fields and returns the same error
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{}, len(details))
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// NewAppError creates a new AppError
func NewAppError(kind ErrorKind, code int, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewValidationError creates a 400 error for missing or malformed input
func NewValidationError(message string) *AppError {
	return NewAppError(KindValidation, http.StatusBadRequest, message, nil)
}

// NewConfigurationError creates an error for missing vendor credentials
func NewConfigurationError(code int, message string) *AppError {
	return NewAppError(KindConfiguration, code, message, nil)
}

// NewProviderUnavailableError creates a 500 error once every provider is exhausted
func NewProviderUnavailableError(message string, err error) *AppError {
	return NewAppError(KindProviderUnavailable, http.StatusInternalServerError, message, err)
}

// NewGatewayError creates a 500 error for payment vendor failures
func NewGatewayError(message string, err error) *AppError {
	return NewAppError(KindGateway, http.StatusInternalServerError, message, err)
}

// NewVerificationError creates a 400 error for signature mismatches
func NewVerificationError(message string) *AppError {
	return NewAppError(KindVerification, http.StatusBadRequest, message, nil)
}

// NewDuplicateUserError creates a 400 error for an already registered email
func NewDuplicateUserError(message string) *AppError {
	return NewAppError(KindDuplicateUser, http.StatusBadRequest, message, nil)
}

// NewUnauthorizedError creates a 401 error
func NewUnauthorizedError(message string) *AppError {
	return NewAppError(KindUnauthorized, http.StatusUnauthorized, message, nil)
}

// NewNotFoundError creates a 404 error
func NewNotFoundError(message string) *AppError {
	return NewAppError(KindNotFound, http.StatusNotFound, message, nil)
}

// AsAppError returns the AppError in err's chain, if any
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsKind reports whether err carries an AppError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	if appErr := AsAppError(err); appErr != nil {
		return appErr.Kind == kind
	}
	return false
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
