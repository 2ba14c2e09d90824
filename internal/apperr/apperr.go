package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error into the HTTP status the API reports it as.
type Kind int

const (
	Validation Kind = iota // malformed or missing input
	Auth                   // missing or invalid credentials/token
	NotFound               // referenced entity absent
	Conflict               // uniqueness violation
	Storage                // persistence failure
)

// Error is the application error carried from repositories and auth up to handlers.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Status maps the error kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case Validation:
		return http.StatusBadRequest
	case Auth:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
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

// As extracts an *Error from err's chain, nil if there is none.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	if appErr := As(err); appErr != nil {
		return appErr.Kind == kind
	}
	return false
}
