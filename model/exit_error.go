package model

import (
	"errors"
	"fmt"
)

// ExitError carries the process exit code for a failed command up to main,
// so deferred cleanup still runs before the process exits.
type ExitError struct {
	Code ExitCode
	Err  error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e == nil {
		return ""
	}

	if e.Err == nil {
		return e.Code.String()
	}

	return fmt.Sprintf("%s: %v", e.Code.String(), e.Err)
}

// Unwrap exposes the underlying error.
func (e *ExitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewExitError constructs an ExitError with the provided code and cause.
func NewExitError(code ExitCode, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// NewUsageError reports a command invoked with missing or conflicting input.
func NewUsageError(format string, args ...any) *ExitError {
	return NewExitError(UsageError, fmt.Errorf(format, args...))
}

// ExitCodeFromError extracts an ExitCode from err. Errors that are not an
// ExitError map to UnknownError and are returned as-is for logging.
func ExitCodeFromError(err error) (ExitCode, error) {
	if err == nil {
		return NoError, nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, exitErr.Err
	}
	return UnknownError, err
}
