// Package errs defines the error taxonomy shared by all domain services.
//
// Services return errors classified by Kind; the HTTP layer maps kinds to
// status codes with HTTPStatus. Wrapping with fmt.Errorf("...: %w", err)
// preserves the kind, so classification survives annotation.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for callers.
type Kind int

const (
	KindUnknown      Kind = iota
	KindValidation        // malformed or missing input
	KindNotFound          // referenced entity does not exist
	KindConflict          // blocked by dependent rows or a uniqueness collision
	KindForbidden         // authenticated but not allowed
	KindAuth              // missing/invalid credential
	KindCollaborator      // store, blob, renderer or relay failure
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindForbidden:
		return "forbidden"
	case KindAuth:
		return "auth"
	case KindCollaborator:
		return "collaborator"
	default:
		return "unknown"
	}
}

// Error carries a kind alongside a human-readable message.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...interface{}) error {
	return &Error{Kind: KindForbidden, Msg: fmt.Sprintf(format, args...)}
}

func Auth(format string, args ...interface{}) error {
	return &Error{Kind: KindAuth, Msg: fmt.Sprintf(format, args...)}
}

// Collaborator wraps a failure from an external dependency.
func Collaborator(err error, format string, args ...interface{}) error {
	return &Error{Kind: KindCollaborator, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of err, unwrapping as needed.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// JSON returns the status code and response body for err. Internal detail is
// hidden for collaborator and unknown errors.
func JSON(err error) (int, map[string]string) {
	kind := KindOf(err)
	msg := err.Error()
	if kind == KindCollaborator || kind == KindUnknown {
		msg = "internal server error"
	}
	return HTTPStatus(err), map[string]string{"error": msg, "kind": kind.String()}
}

// HTTPStatus maps an error kind to an HTTP status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
