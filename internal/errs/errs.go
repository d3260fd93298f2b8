// Package errs holds the error taxonomy surfaced to HTTP and CLI callers.
package errs

import (
	"errors"
	"fmt"
	"net/http"

	pkgerrors "github.com/pkg/errors"
)

type Kind int

const (
	KindSite Kind = iota
	KindBadRequest
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad request"
	case KindNotFound:
		return "not found"
	default:
		return "site error"
	}
}

// Error is a classified failure. Message is safe to show to clients,
// the wrapped cause is not.
type Error struct {
	Kind    Kind
	Message string
	Context map[string]any
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Status maps the kind onto an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// With attaches a context value that is returned to JSON callers.
func (e *Error) With(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// StackTrace returns the stack captured when the cause was wrapped, if any.
func (e *Error) StackTrace() string {
	if e.cause == nil {
		return ""
	}
	return fmt.Sprintf("%+v", e.cause)
}

func BadRequest(format string, args ...any) *Error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Site wraps an unexpected failure. The cause keeps a stack trace for development output.
func Site(err error, message string) *Error {
	if message == "" {
		message = "an internal error occurred"
	}
	return &Error{Kind: KindSite, Message: message, cause: pkgerrors.WithStack(err)}
}

// As extracts a classified error from err. Unclassified errors become site errors.
func As(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return Site(err, "")
}

// Status returns the HTTP status for any error.
func Status(err error) int {
	return As(err).Status()
}

func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindNotFound
}

func IsBadRequest(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindBadRequest
}
