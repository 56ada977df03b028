package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorQuery    = 2   // Indicates an OS accounting query failed.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
//
// Returns:
//   - string: The error message string.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
// It allows for the creation of configuration-specific errors with dynamic
// content.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// QueryError reports a failed operating system accounting query. It carries
// the record kind that was requested and the underlying OS error so callers
// can inspect both. A failed query never yields a partial record; the error
// is the whole result.
type QueryError struct {
	// Kind names the accounting record that was requested.
	Kind string
	// Cause is the error reported by the OS query, possibly nil when the
	// failure produced no usable error value.
	Cause error
}

// Error returns a message of the form "<kind> query failed: <reason>".
// The reason is taken from the underlying cause; when no cause is available
// the generic "unknown error" string is used.
//
// Returns:
//   - string: The error message string.
func (e QueryError) Error() string {
	reason := "unknown error"
	if e.Cause != nil {
		reason = e.Cause.Error()
	}
	return fmt.Sprintf("%s query failed: %s", e.Kind, reason)
}

// Unwrap returns the underlying OS error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
//
// Returns:
//   - error: The underlying cause of the QueryError.
func (e QueryError) Unwrap() error { return e.Cause }

// NewQueryError creates a QueryError for the given record kind and cause.
func NewQueryError(kind string, cause error) error {
	return QueryError{Kind: kind, Cause: cause}
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: true if the error is a context error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error to the process exit code the application should
// return. Context cancellation takes priority so a Ctrl-C during a failing
// query still reports as canceled.
//
// Parameters:
//   - err: The error to classify, possibly nil.
//
// Returns:
//   - int: One of the Exit* codes.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if IsContextError(err) {
		return ExitErrorCanceled
	}
	var queryErr QueryError
	if errors.As(err, &queryErr) {
		return ExitErrorQuery
	}
	var configErr ConfigError
	if errors.As(err, &configErr) {
		return ExitErrorConfig
	}
	return ExitErrorGeneric
}
