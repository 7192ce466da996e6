// Package fault provides the error taxonomy shared by every core operation.
//
// Each failure carries exactly one Kind so that the transport layer can map
// it to a wire status without string matching, plus a human-readable message
// for diagnostics.
package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind string

// Failure kinds, in refusal-priority order.
const (
	// Validation marks malformed or out-of-range input, rejected before any
	// store mutation.
	Validation Kind = "validation"
	// NotFound marks a referenced entity that does not exist.
	NotFound Kind = "not_found"
	// Conflict marks a valid request refused because of entity state
	// (already redeemed, expired).
	Conflict Kind = "conflict"
	// Storage marks an underlying store failure.
	Storage Kind = "storage"
	// Internal marks an unexpected invariant violation.
	Internal Kind = "internal"
)

// Error is a Kind-tagged error. It wraps an optional cause.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap exposes the wrapped cause to errors.Is/As.
func (e *Error) Unwrap() error { return e.cause }

// New creates a Kind-tagged error with a plain message.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

// Newf creates a Kind-tagged error with a formatted message.
func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap tags an existing error with a kind and a message. Returns nil when
// err is nil so call sites can wrap unconditionally.
func Wrap(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: msg, cause: err}
}

// Validationf builds a Validation error.
func Validationf(format string, args ...any) error {
	return Newf(Validation, format, args...)
}

// NotFoundf builds a NotFound error.
func NotFoundf(format string, args ...any) error {
	return Newf(NotFound, format, args...)
}

// Conflictf builds a Conflict error.
func Conflictf(format string, args ...any) error {
	return Newf(Conflict, format, args...)
}

// KindOf returns the kind of err, or Internal when err carries no kind.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Internal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
