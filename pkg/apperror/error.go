package apperror

import (
	"errors"
	"net/http"
)

type AppError struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
	Err     error    `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

// Validation reports rejected input. Details carries one message per failed field.
func Validation(message string, details []string) *AppError {
	e := New(http.StatusBadRequest, message, nil)
	e.Details = details
	return e
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

// Storage wraps an engine-level failure. The cause is kept for logging only.
func Storage(err error) *AppError {
	return New(http.StatusServiceUnavailable, "Storage unavailable", err)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}

func IsNotFound(err error) bool {
	return hasCode(err, http.StatusNotFound)
}

func IsValidation(err error) bool {
	return hasCode(err, http.StatusBadRequest)
}

func IsStorage(err error) bool {
	return hasCode(err, http.StatusServiceUnavailable)
}

func hasCode(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
