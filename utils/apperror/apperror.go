package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an application error; the error handler maps kinds to HTTP statuses
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindBadInput
	KindInvalidID
	KindNotFound
	KindConflict
	KindUpstreamBadInput
	KindUpstreamUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindBadInput:
		return "bad_input"
	case KindInvalidID:
		return "invalid_id"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUpstreamBadInput:
		return "upstream_bad_input"
	case KindUpstreamUnavailable:
		return "upstream_unavailable"
	default:
		return "internal"
	}
}

// Error represents application-specific errors with additional context
type Error struct {
	Kind    Kind
	Message string
	// Fields holds per-field messages for validation failures, keyed by JSON field name
	Fields map[string]string
	Err    error
}

// Error implements error interface
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.Err
}

// Validation creates a validation error carrying per-field messages
func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "Validation failed", Fields: fields}
}

func BadInput(format string, args ...any) *Error {
	return &Error{Kind: KindBadInput, Message: fmt.Sprintf(format, args...)}
}

func InvalidID(resource, id string) *Error {
	return &Error{Kind: KindInvalidID, Message: fmt.Sprintf("Invalid %s id: %s", resource, id)}
}

func NotFound(resource, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found with id of %s", resource, id)}
}

func Conflict(message string, err error) *Error {
	return &Error{Kind: KindConflict, Message: message, Err: err}
}

func UpstreamBadInput(message string, err error) *Error {
	return &Error{Kind: KindUpstreamBadInput, Message: message, Err: err}
}

func UpstreamUnavailable(message string, err error) *Error {
	return &Error{Kind: KindUpstreamUnavailable, Message: message, Err: err}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, KindInternal otherwise
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
