package service

import (
	"errors"
	"fmt"
)

// Kind classifies service failures. The HTTP layer maps each kind to a status code.
type Kind int

const (
	// KindInternal covers provider outages and any unexpected failure.
	KindInternal Kind = iota
	// KindInvalidRequest covers malformed input and unknown symbols.
	KindInvalidRequest
)

func (k Kind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid_request"
	default:
		return "internal_error"
	}
}

// Error is the error type returned by StatsService.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// InvalidRequest returns a KindInvalidRequest error.
func InvalidRequest(message string, err error) *Error {
	return &Error{Kind: KindInvalidRequest, Message: message, Err: err}
}

// Internal returns a KindInternal error.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf extracts the Kind of err. Errors that are not *Error are internal.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}
