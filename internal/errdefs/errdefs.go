// Package errdefs provides structured error types for i3keep.
//
// Every user-facing failure carries a machine-readable Code so the CLI and
// the MCP server can report errors consistently. Errors wrap their cause and
// participate in the standard errors.Is/As chains.
//
// Usage:
//
//	err := errdefs.New(errdefs.CodeSelectionNotFound, "workspace %q not found", name)
//	if errdefs.Is(err, errdefs.CodeSelectionNotFound) {
//	    // handle missing selection
//	}
//
//	// Wrap existing errors
//	err := errdefs.Wrap(errdefs.CodeConnectionFailure, dialErr, "connect to %s", path)
package errdefs

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	// CodeConnectionFailure covers every failure to reach or talk to the
	// window manager, from socket discovery through reply decoding.
	CodeConnectionFailure Code = "CONNECTION_FAILURE"

	// CodeConflictingSelection is returned when both a workspace and an
	// output are requested at once.
	CodeConflictingSelection Code = "CONFLICTING_SELECTION"

	// CodeSelectionNotFound is returned when the requested workspace or
	// output does not exist in the layout tree.
	CodeSelectionNotFound Code = "SELECTION_NOT_FOUND"

	// CodeInvalidInput covers malformed flags, configuration, and documents.
	CodeInvalidInput Code = "INVALID_INPUT"

	// CodeNotFound is returned when an archived layout does not exist.
	CodeNotFound Code = "NOT_FOUND"

	// CodeInternal marks unexpected internal failures.
	CodeInternal Code = "INTERNAL"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
