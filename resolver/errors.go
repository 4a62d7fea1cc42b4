package resolver

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrParameterNotFound is reported by a Store when a path does not exist.
	ErrParameterNotFound = errors.New("parameter not found")
	// ErrAccessDenied is reported by a Store when the credentials are rejected.
	ErrAccessDenied = errors.New("access denied")
	// ErrUnrecognizedClient is reported by a Store when the client identity is not recognized.
	ErrUnrecognizedClient = errors.New("unrecognized client")

	// ErrResolve matches every *Error returned by Load and Resolve.
	ErrResolve = errors.New("parameter resolution failed")
	// ErrInvalidConfig is returned by New when the configuration is unusable.
	ErrInvalidConfig = errors.New("invalid resolver configuration")
	// ErrNoClient is returned when neither a client nor a client factory is configured.
	ErrNoClient = errors.New("no parameter store client configured")
)

// StoreError carries the backend's own error class name and message next to
// the sentinel that classifies it.
type StoreError struct {
	Class   string
	Message string
	Err     error
}

// NewStoreError wraps sentinel with the backend class and message.
func NewStoreError(sentinel error, class, message string) *StoreError {
	return &StoreError{Class: class, Message: message, Err: sentinel}
}

func (e *StoreError) Error() string {
	return e.Class + ": " + e.Message
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Error is the single error kind returned by the resolver for store failures.
// It renders as "[Class]: message" and wraps the store error.
type Error struct {
	Op      string
	Path    string
	Class   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s]: %s", e.Class, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrResolve) hold for every *Error.
func (e *Error) Is(target error) bool {
	return target == ErrResolve //nolint:errorlint,err113 // identity check on sentinel
}

func classify(op, path string, err error) *Error {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return &Error{Op: op, Path: path, Class: storeErr.Class, Message: storeErr.Message, Err: err}
	}

	return &Error{Op: op, Path: path, Class: errorClass(err), Message: err.Error(), Err: err}
}

// errorClass names the innermost error of a single-wrap chain, so
// fmt.Errorf wrappers do not hide the type of the failure.
func errorClass(err error) string {
	for next := errors.Unwrap(err); next != nil; next = errors.Unwrap(err) {
		err = next
	}

	return strings.TrimPrefix(fmt.Sprintf("%T", err), "*")
}
