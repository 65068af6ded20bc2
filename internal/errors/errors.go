package errors

import (
	"errors"
	"fmt"
)

// Code categorizes an error so callers can react without string matching
type Code string

const (
	// CodeUnknown indicates an unknown error
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument indicates the caller passed an unusable argument
	CodeInvalidArgument Code = "invalid_argument"

	// CodeNotFound indicates a stored record does not exist
	CodeNotFound Code = "not_found"

	// CodeInternal indicates an internal failure (storage, encoding)
	CodeInternal Code = "internal"

	// CodeValidation indicates malformed persisted or imported data
	CodeValidation Code = "validation"

	// CodeInvalidAddress indicates an address that does not resolve to a
	// resource of the expected shape
	CodeInvalidAddress Code = "invalid_address"

	// CodeConflict indicates the operation raced with a pending rest decision
	CodeConflict Code = "conflict"
)

// Error is an application error carrying a code and optional metadata
type Error struct {
	Code    Code
	Message string
	Cause   error
	Meta    map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta attaches a key/value pair and returns the same error
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a new error with a formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps err, preserving the code of an inner *Error
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var inner *Error
	if errors.As(err, &inner) {
		return &Error{
			Code:    inner.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(inner.Meta),
		}
	}

	return &Error{Code: CodeUnknown, Message: message, Cause: err}
}

// Wrapf wraps err with a formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps err and forces the given code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

// NotFoundf creates a formatted not found error
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates a formatted invalid argument error
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// Validationf creates a formatted validation error
func Validationf(format string, args ...any) *Error {
	return Newf(CodeValidation, format, args...)
}

// InvalidAddressf creates a formatted invalid address error
func InvalidAddressf(format string, args ...any) *Error {
	return Newf(CodeInvalidAddress, format, args...)
}

// Conflict creates a conflict error
func Conflict(message string) *Error {
	return New(CodeConflict, message)
}

// Is reports whether err carries the given code
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsNotFound checks for CodeNotFound
func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

// IsValidation checks for CodeValidation
func IsValidation(err error) bool {
	return Is(err, CodeValidation)
}

// IsInvalidAddress checks for CodeInvalidAddress
func IsInvalidAddress(err error) bool {
	return Is(err, CodeInvalidAddress)
}

// IsConflict checks for CodeConflict
func IsConflict(err error) bool {
	return Is(err, CodeConflict)
}

// GetCode returns the code of err, or CodeUnknown
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}
	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
