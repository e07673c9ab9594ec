// Package errors implements the error taxonomy used across otlpsink.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an AppError into one of the taxonomy buckets from
// spec.md §7. It is not an HTTP status: this module has no HTTP surface.
type Kind string

const (
	// InvalidAttach is a malformed host:port or bad buffer_size option,
	// surfaced synchronously from Attach.
	InvalidAttach Kind = "INVALID_ATTACH"

	// Bind is a gRPC bind/start failure, surfaced synchronously from
	// Receiver.Start. Attach fails cleanly: buffers are destroyed before
	// Attach returns.
	Bind Kind = "BIND"

	// Decode is a malformed OTLP protobuf or JSON payload at request
	// granularity. The handler returns an internal-error gRPC status and
	// writes no rows for that request.
	Decode Kind = "DECODE"

	// Internal marks a structural invariant violation (e.g. a column
	// count mismatch between the schema registry and a buffer). Callers
	// that hit this are expected to panic with it, not return it — see
	// Fatal.
	Internal Kind = "INTERNAL"
)

// AppError is the single error type returned across package boundaries.
type AppError struct {
	Err     error
	Kind    Kind
	Message string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError of the given kind.
func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// Wrap creates an AppError of the given kind wrapping a cause.
func Wrap(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

// NewInvalidAttach builds an InvalidAttach error.
func NewInvalidAttach(message string) *AppError {
	return New(InvalidAttach, message)
}

// NewBind wraps a gRPC bind/start failure.
func NewBind(message string, err error) *AppError {
	return Wrap(Bind, message, err)
}

// NewDecode wraps a decode-time failure.
func NewDecode(message string, err error) *AppError {
	return Wrap(Decode, message, err)
}

// As extracts an *AppError from err, if any.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the Kind of err, or Internal if err is not an AppError.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return Internal
}

// Fatal panics with a *AppError of kind Internal. Used for structural
// invariant violations per spec.md §7 ("Fatal internal... propagate as
// exceptions/panics and crash the attach").
func Fatal(message string) {
	panic(New(Internal, message))
}

// Fatalf panics with a formatted *AppError of kind Internal.
func Fatalf(format string, args ...interface{}) {
	panic(New(Internal, fmt.Sprintf(format, args...)))
}
