// Package errors defines the structured error type used across metricsvc.
// Each AppError carries a stable code and the HTTP status it resolves to.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Code is a stable, machine-readable error identifier
type Code string

const (
	CodeInternal        Code = "internal_error"
	CodeInvalidArgument Code = "invalid_argument"
	CodeInvalidConfig   Code = "invalid_config"
	CodeUnknownCounter  Code = "unknown_counter"
	CodeUnavailable     Code = "store_unavailable"
	CodeScrapeRequest   Code = "scrape_request_failed"
	CodeScrapeStatus    Code = "scrape_bad_status"
	CodeScrapeDecode    Code = "scrape_decode_failed"
)

// AppError represents a structured application error
type AppError struct {
	Code       Code
	Message    string
	HTTPStatus int
	cause      error
}

// New creates an internal AppError with the given message.
func New(message string) *AppError {
	return &AppError{Code: CodeInternal, Message: message, HTTPStatus: http.StatusInternalServerError}
}

// NewError creates an AppError with an explicit code and status.
func NewError(code Code, httpStatus int, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.cause
}

// Is matches any AppError with the same code, so sentinels survive WithError.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithError returns a copy of e with cause attached.
func (e *AppError) WithError(cause error) *AppError {
	cp := *e
	cp.cause = cause
	return &cp
}

// WithMessage returns a copy of e with a more specific message.
func (e *AppError) WithMessage(format string, args ...interface{}) *AppError {
	cp := *e
	cp.Message = fmt.Sprintf(format, args...)
	return &cp
}

// ================================================================================
// Predefined Errors
// ================================================================================

var (
	ErrInternalServer   = NewError(CodeInternal, http.StatusInternalServerError, "internal server error")
	ErrInvalidConfig    = NewError(CodeInvalidConfig, http.StatusInternalServerError, "invalid configuration")
	ErrUnknownCounter   = NewError(CodeUnknownCounter, http.StatusInternalServerError, "unknown counter")
	ErrStoreUnavailable = NewError(CodeUnavailable, http.StatusInternalServerError, "counter store unavailable")
	ErrScrapeRequest    = NewError(CodeScrapeRequest, http.StatusBadGateway, "failed to send GET request")
	ErrScrapeStatus     = NewError(CodeScrapeStatus, http.StatusBadGateway, "invalid response status code")
	ErrScrapeDecode     = NewError(CodeScrapeDecode, http.StatusBadGateway, "failed to unmarshal response body")
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// HTTPStatus returns the status an error resolves to, defaulting to 500.
func HTTPStatus(err error) int {
	var appErr *AppError
	if As(err, &appErr) && appErr.HTTPStatus != 0 {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}
