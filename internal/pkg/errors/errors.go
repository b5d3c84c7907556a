package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/pratik-mahalle/flashalerts/internal/session"
	"github.com/pratik-mahalle/flashalerts/pkg/alerts"
	"github.com/pratik-mahalle/flashalerts/pkg/alerts/render"
)

// AppError represents an application error with additional context
type AppError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	StatusCode int         `json:"-"`
	Internal   error       `json:"-"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Internal)
	}
	return e.Message
}

// Unwrap returns the internal error for errors.Is and errors.As
func (e *AppError) Unwrap() error {
	return e.Internal
}

// Common error codes
const (
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeUnknownOperation   = "UNKNOWN_OPERATION"
	ErrCodeDataFormat         = "DATA_FORMAT"
	ErrCodeSessionRequired    = "SESSION_REQUIRED"
)

// New creates a new AppError
func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Wrap wraps an error with an AppError
func Wrap(err error, code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Internal:   err,
	}
}

// WithDetails adds details to an AppError
func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// Common error constructors

// Internal creates an internal server error
func Internal(message string, err error) *AppError {
	return Wrap(err, ErrCodeInternal, message, http.StatusInternalServerError)
}

// BadRequest creates a bad request error
func BadRequest(message string) *AppError {
	return New(ErrCodeBadRequest, message, http.StatusBadRequest)
}

// NotFound creates a not found error
func NotFound(resource string) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

// ValidationError creates a validation error
func ValidationError(message string, details interface{}) *AppError {
	return New(ErrCodeValidation, message, http.StatusBadRequest).WithDetails(details)
}

// RateLimited creates a rate limited error
func RateLimited(message string) *AppError {
	return New(ErrCodeRateLimited, message, http.StatusTooManyRequests)
}

// UnknownOperation reports a Quick shorthand call with an unsupported shape
func UnknownOperation(err error) *AppError {
	return Wrap(err, ErrCodeUnknownOperation, err.Error(), http.StatusBadRequest)
}

// DataFormat reports malformed alert data
func DataFormat(err error) *AppError {
	return Wrap(err, ErrCodeDataFormat, "malformed alert data", http.StatusBadRequest)
}

// SessionRequired reports an operation that needs an active session
func SessionRequired() *AppError {
	return New(ErrCodeSessionRequired, "an active session is required", http.StatusConflict)
}

// StoreUnavailable reports a session store that does not answer
func StoreUnavailable(driver string, err error) *AppError {
	return Wrap(err, ErrCodeServiceUnavailable, fmt.Sprintf("%s session store unavailable", driver), http.StatusServiceUnavailable)
}

// FromError maps domain errors to an AppError, falling back to an internal error
func FromError(err error) *AppError {
	var appErr *AppError
	switch {
	case stderrors.As(err, &appErr):
		return appErr
	case stderrors.Is(err, alerts.ErrUnknownOperation):
		return UnknownOperation(err)
	case stderrors.Is(err, alerts.ErrDataFormat):
		return DataFormat(err)
	case stderrors.Is(err, render.ErrUnknownDriver):
		return Wrap(err, ErrCodeBadRequest, err.Error(), http.StatusBadRequest)
	case stderrors.Is(err, session.ErrNotFound):
		return NotFound("session")
	default:
		return Internal("internal server error", err)
	}
}
