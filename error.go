package docdex

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	ECONFLICT       = "conflict"        // action cannot be performed (e.g. job already running)
	EDIMENSION      = "dimension"       // vector dimension mismatch
	EINTERNAL       = "internal"        // internal error
	EINVALID        = "invalid"         // validation failed
	ENOTFOUND       = "not_found"       // entity does not exist
	ENOTINITIALIZED = "not_initialized" // store or engine used before initialization
	EUNAVAILABLE    = "unavailable"     // capability disabled or unreachable
)

// Error represents an application error with a machine-readable code and a
// human-readable message. Internal diagnostics are carried by wrapping.
type Error struct {
	// Code is one of the application error codes above.
	Code string

	// Message is a human-readable description safe to show to users.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("docdex error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode returns the code of the error, if available.
// Returns EINTERNAL for non-application errors and "" for nil.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	}
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the human-readable message of the error, if available.
// Returns a generic message for non-application errors and "" for nil.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	}
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper to construct an Error with formatting.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
