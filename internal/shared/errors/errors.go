package errors

import (
	"errors"
	"fmt"
)

// ErrorType is the category an AppError maps to at the HTTP boundary.
type ErrorType string

const (
	ErrorTypeNotFound         ErrorType = "not_found"
	ErrorTypeValidation       ErrorType = "validation"
	ErrorTypeConflict         ErrorType = "conflict"
	ErrorTypeUnauthorized     ErrorType = "unauthorized"
	ErrorTypeInternal         ErrorType = "internal"
	ErrorTypeMethodNotAllowed ErrorType = "method_not_allowed"
	ErrorTypeExternal         ErrorType = "external"
	// ErrorTypeUnavailable means the simulation is not accepting commands.
	ErrorTypeUnavailable ErrorType = "unavailable"
	ErrorTypeRateLimited ErrorType = "rate_limited"
)

type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newf(t ErrorType, format string, args ...any) error {
	return &AppError{Type: t, Message: fmt.Sprintf(format, args...)}
}

func wrap(t ErrorType, message string, err error) error {
	return &AppError{Type: t, Message: message, Err: err}
}

func NotFoundf(format string, args ...any) error {
	return newf(ErrorTypeNotFound, format, args...)
}

func Validation(message string) error {
	return &AppError{Type: ErrorTypeValidation, Message: message}
}

func Validationf(format string, args ...any) error {
	return newf(ErrorTypeValidation, format, args...)
}

func WrapValidation(message string, err error) error {
	return wrap(ErrorTypeValidation, message, err)
}

// Conflictf reports a command the current game state refuses, such as an
// unaffordable conquest or an unowned planet.
func Conflictf(format string, args ...any) error {
	return newf(ErrorTypeConflict, format, args...)
}

func WrapInternal(message string, err error) error {
	return wrap(ErrorTypeInternal, message, err)
}

func Unauthorized(message string) error {
	return &AppError{Type: ErrorTypeUnauthorized, Message: message}
}

func MethodNotAllowed(method string) error {
	return newf(ErrorTypeMethodNotAllowed, "method %s not allowed", method)
}

func WrapExternal(message string, err error) error {
	return wrap(ErrorTypeExternal, message, err)
}

func WrapUnavailable(message string, err error) error {
	return wrap(ErrorTypeUnavailable, message, err)
}

func RateLimited() error {
	return &AppError{Type: ErrorTypeRateLimited, Message: "rate limit exceeded"}
}

// GetType returns the type of the first AppError in the chain, or
// ErrorTypeInternal when there is none.
func GetType(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}
