// File: services/booking/errors.go
package booking

import (
	"errors"
	"fmt"
)

// ErrorKind tags a booking failure so the boundary layer can translate it
// into a transport response without string matching.
type ErrorKind string

const (
	KindNotFound         ErrorKind = "notFound"
	KindConflict         ErrorKind = "conflict"
	KindPermissionDenied ErrorKind = "permissionDenied"
	KindInvalidState     ErrorKind = "invalidState"
	KindInvalidArgument  ErrorKind = "invalidArgument"
	KindDayNotPublished  ErrorKind = "dayNotPublished"
	KindTransient        ErrorKind = "transientInfra"
	KindInternal         ErrorKind = "internal"
)

// Error is the tagged failure returned by the booking engine and lifecycle
// manager.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a tagged error without a cause.
func NewError(kind ErrorKind, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

// WrapError builds a tagged error around an underlying cause.
func WrapError(kind ErrorKind, msg string, err error) error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf extracts the kind from an error chain; unrecognized errors are
// internal.
func KindOf(err error) ErrorKind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindInternal
}
