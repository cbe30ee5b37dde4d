package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an AppError so callers can tell user input problems from
// backend failures without comparing message strings.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindPersistence    Kind = "persistence"
	KindProcessing     Kind = "processing"
	KindInputIntegrity Kind = "input_integrity"
	KindConflict       Kind = "conflict"
	KindInternal       Kind = "internal"
)

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
	Err     error  `json:"-"`
	// Details is echoed to the client, e.g. the form model to redisplay.
	Details interface{} `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetails attaches a client-visible payload and returns the same error.
func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Kind:    KindInternal,
		Err:     err,
	}
}

func newKind(kind Kind, code int, message string, err error) *AppError {
	e := New(code, message, err)
	e.Kind = kind
	return e
}

func BadRequest(message string) *AppError {
	return newKind(KindValidation, http.StatusBadRequest, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return newKind(KindConflict, http.StatusConflict, message, nil)
}

func TooLarge(message string) *AppError {
	return newKind(KindValidation, http.StatusRequestEntityTooLarge, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}

// Persistence reports a failed write to the backing store. The message is
// generic and retryable; the cause stays server-side.
func Persistence(err error) *AppError {
	return newKind(KindPersistence, http.StatusServiceUnavailable,
		"Your submission could not be saved. Please try again in a moment.", err)
}

// Processing reports an image decode, encode or write failure.
func Processing(err error) *AppError {
	return newKind(KindProcessing, http.StatusInternalServerError,
		"Your image could not be processed. Please try again.", err)
}

// InputIntegrity reports input that passed the field rules but is unsafe or
// inconsistent, e.g. a title with no usable filename characters.
func InputIntegrity(message string) *AppError {
	return newKind(KindInputIntegrity, http.StatusUnprocessableEntity, message, nil)
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}
