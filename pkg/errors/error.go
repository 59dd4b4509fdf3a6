// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid parameters, missing data, type mismatches
//   - Data/Resource errors (200-299): Data not found, query failures, unavailable resources
//   - Import errors (300-399): Delimited-file reading, column mapping, and row parsing errors
//   - Store errors (400-499): Bar store initialization and write errors
//   - Feed errors (500-599): Historical data download and provider errors
//   - Settings errors (600-699): Settings document load and save errors
//   - Export errors (700-799): Artifact export failures
//   - Callback errors (800-899): Callback execution failures
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeInvalidParameter, "invalid parameter value")
//
//	// Create a formatted error
//	err := errors.Newf(errors.ErrCodeDataNotFound, "data not found for symbol %s", symbol)
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeQueryFailed, "failed to execute query", originalErr)
//
//	// Check error code
//	if errors.HasCode(err, errors.ErrCodeDataNotFound) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard errors.As function.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from an error if it's an *Error type.
// Returns ErrCodeUnknown if the error is not an *Error type.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// RowError represents an error tied to a single data row of an import file
// (e.g., a timestamp that does not match the profile layout). Row is the
// 1-based index of the data row, counted after the header.
type RowError struct {
	Row     int    // 1-based data row index
	Column  string // Offending column header, empty when the whole row is at fault
	Message string // Human-readable message
	Cause   error  // Underlying typed error
}

// NewRowError creates a new RowError.
func NewRowError(row int, column, message string, cause error) *RowError {
	return &RowError{
		Row:     row,
		Column:  column,
		Message: message,
		Cause:   cause,
	}
}

// NewRowErrorf creates a new RowError with a formatted message.
func NewRowErrorf(row int, column string, cause error, format string, args ...any) *RowError {
	return &RowError{
		Row:     row,
		Column:  column,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *RowError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("row %d: %s: %v", e.Row, e.Message, e.Cause)
	}

	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// Unwrap returns the underlying error cause, so GetCode and HasCode see
// through a RowError to the typed error beneath it.
func (e *RowError) Unwrap() error {
	return e.Cause
}

// IsRowError checks if an error is a RowError.
// It uses errors.As to check the error chain.
func IsRowError(err error) bool {
	var rowErr *RowError

	return errors.As(err, &rowErr)
}

// RowOf extracts the data row index from an error chain containing a RowError.
// The second return value reports whether a RowError was found.
func RowOf(err error) (int, bool) {
	var rowErr *RowError
	if errors.As(err, &rowErr) {
		return rowErr.Row, true
	}

	return 0, false
}
