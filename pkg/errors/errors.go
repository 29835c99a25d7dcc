// Package errors provides structured error types for panelayout.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the engine, CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (malformed drafts, bad directions)
//   - *_NOT_FOUND: Keys or resources absent from a snapshot or store
//   - ROOT_OPERATION, NO_SIBLING: structurally impossible edits
//   - INTERNAL_*: Unexpected internal errors
//
// Size-constraint shortfalls (a resize that cannot be fully applied) are never
// errors; the engine reports them through the applied delta instead.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeKeyNotFound, "key %q not in layout", key)
//	if errors.Is(err, errors.ErrCodeKeyNotFound) {
//	    // Handle structural error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidTree      Code = "INVALID_TREE"
	ErrCodeInvalidDirection Code = "INVALID_DIRECTION"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidKey       Code = "INVALID_KEY"
	ErrCodeDuplicateKey     Code = "DUPLICATE_KEY"
	ErrCodeEmptyTree        Code = "EMPTY_TREE"
	ErrCodeLeftoverSpace    Code = "LEFTOVER_SPACE"

	// Structural errors
	ErrCodeKeyNotFound   Code = "KEY_NOT_FOUND"
	ErrCodeRootOperation Code = "ROOT_OPERATION"
	ErrCodeNoSibling     Code = "NO_SIBLING"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// IsStructural reports whether err refers to the shape of the tree rather
// than to malformed input: missing keys, root edits, or a missing sibling.
func IsStructural(err error) bool {
	switch GetCode(err) {
	case ErrCodeKeyNotFound, ErrCodeRootOperation, ErrCodeNoSibling:
		return true
	}
	return false
}
