// Package apperror classifies service failures so the HTTP layer can render
// them without inspecting message strings.
package apperror

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindValidation         Kind = "validation"
	KindNotFound           Kind = "not_found"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindInvalidToken       Kind = "invalid_token"
	KindConflict           Kind = "conflict"
	KindTooManyRequests    Kind = "too_many_requests"
	KindInternal           Kind = "internal"
)

// Error is the failure value returned by every service operation.
type Error struct {
	Kind    Kind
	Message string // safe to show to the client
	Cause   error  // logged, never rendered
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error by kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// StatusCode maps the kind onto an HTTP status.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindInvalidCredentials, KindInvalidToken:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

func InvalidCredentials(message string) *Error {
	return New(KindInvalidCredentials, message)
}

func InvalidToken(message string) *Error {
	return New(KindInvalidToken, message)
}

func Conflict(message string) *Error {
	return New(KindConflict, message)
}

func TooManyRequests(message string) *Error {
	return New(KindTooManyRequests, message)
}

// Internal wraps an infrastructure failure behind a client-safe message.
func Internal(message string, cause error) *Error {
	return Wrap(KindInternal, message, cause)
}

// KindOf reports the kind of err; unclassified errors count as internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind anywhere in its chain.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
