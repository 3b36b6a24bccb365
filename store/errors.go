package store

import (
	"github.com/pkg/errors"
)

// ErrorKind classifies store failures.
type ErrorKind int

const (
	UnknownError ErrorKind = iota
	// EnvironmentError means the working directory could not be determined.
	EnvironmentError
	// ResolutionError means no candidate data directory qualified for Save.
	ResolutionError
	// IoError means creating, reading or writing a path failed.
	IoError
)

func (k ErrorKind) String() string {
	switch k {
	case EnvironmentError:
		return "environment error"
	case ResolutionError:
		return "resolution error"
	case IoError:
		return "io error"
	default:
		return "unknown error"
	}
}

// Error is returned by every store operation that fails. The message is the
// human readable form handed to callers; Path is set for IoError.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Err.Error()
}

// Unwrap exposes the underlying error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// KindOf reports the kind of a store error, or UnknownError for anything else.
func KindOf(err error) ErrorKind {
	var storeErr *Error
	if errors.As(err, &storeErr) {
		return storeErr.Kind
	}
	return UnknownError
}

var errNoDataDir = errors.New("could not determine data directory location")

func environmentError(cause error) *Error {
	return &Error{
		Kind: EnvironmentError,
		Err:  errors.Wrap(cause, "failed to get current directory"),
	}
}

func resolutionError() *Error {
	return &Error{Kind: ResolutionError, Err: errNoDataDir}
}

func ioError(path string, cause error, format string) *Error {
	return &Error{
		Kind: IoError,
		Path: path,
		Err:  errors.Wrapf(cause, format, path),
	}
}
