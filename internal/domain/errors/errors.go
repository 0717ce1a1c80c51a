// Package errors provides domain-specific error types.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for domain errors.
const (
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeConfig             = "CONFIG_ERROR"
	ErrCodeQuotaExceeded      = "QUOTA_EXCEEDED"

	// Provider step failures, one per call of the chat pipeline.
	ErrCodeThreadCreationFailed = "THREAD_CREATION_FAILED"
	ErrCodeMessageSendFailed    = "MESSAGE_SEND_FAILED"
	ErrCodeRunCreationFailed    = "RUN_CREATION_FAILED"
	ErrCodeRunFailed            = "RUN_FAILED"
	ErrCodeRunTimeout           = "RUN_TIMEOUT"
	ErrCodeMessagesFetchFailed  = "MESSAGES_FETCH_FAILED"
)

var statusByCode = map[string]int{
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeConfig:             http.StatusServiceUnavailable,
	ErrCodeQuotaExceeded:      http.StatusTooManyRequests,
	ErrCodeRunTimeout:         http.StatusGatewayTimeout,
}

// StatusFor maps an error code to its HTTP status. Unlisted codes are provider failures.
func StatusFor(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusBadGateway
}

// DomainError represents a domain-specific error.
type DomainError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"`
}

// New creates a DomainError whose status follows from code.
func New(code, message string, err error) *DomainError {
	return &DomainError{
		Code:       code,
		Message:    message,
		HTTPStatus: StatusFor(code),
		Err:        err,
	}
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// WithDetails returns e with details attached.
func (e *DomainError) WithDetails(details string) *DomainError {
	e.Details = details
	return e
}

// NewNotFoundError creates a new not found error.
func NewNotFoundError(resource, identifier string) *DomainError {
	return New(ErrCodeNotFound, resource+" not found", nil).WithDetails(identifier)
}

// NewValidationError creates a new validation error.
func NewValidationError(message string, details string) *DomainError {
	return New(ErrCodeValidation, message, nil).WithDetails(details)
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, err error) *DomainError {
	e := New(ErrCodeInternal, message, err)
	if err != nil {
		e.Details = err.Error()
	}
	return e
}

// NewServiceUnavailableError creates a new service unavailable error.
func NewServiceUnavailableError(service string, err error) *DomainError {
	return New(ErrCodeServiceUnavailable, service+" is unavailable", err)
}

// NewConfigError creates an error for a missing or invalid relay configuration.
func NewConfigError(message string) *DomainError {
	return New(ErrCodeConfig, message, nil)
}

// NewQuotaExceededError creates the user-facing error returned once a visitor used up the quota.
func NewQuotaExceededError(message string) *DomainError {
	return New(ErrCodeQuotaExceeded, message, nil)
}

// NewProviderError creates an error for a failed interaction with the assistant provider.
// The message is shown to the visitor, so it never carries a raw provider payload.
func NewProviderError(code, message string, err error) *DomainError {
	return New(code, message, err)
}

// GetDomainError extracts the domain error from an error.
func GetDomainError(err error) (*DomainError, bool) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

// HasCode checks if the error is a domain error with the given code.
func HasCode(err error, code string) bool {
	domainErr, ok := GetDomainError(err)
	return ok && domainErr.Code == code
}
