// Package apperr defines the typed failures that flow from the repository
// and service layers up to the HTTP boundary.  Each failure carries a kind
// and the human readable message that is returned to clients verbatim.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an application failure.
type Kind int

const (
	// KindNotFound means a referenced entity (or the listing under it) does not resolve.
	KindNotFound Kind = iota + 1
	// KindInvalidInput means a request body failed a shape or type check.
	KindInvalidInput
)

// Error is an expected failure with a client facing message.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// Status maps the failure kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidInput:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// NotFound builds a KindNotFound failure.
func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Msg: msg} }

// InvalidInput builds a KindInvalidInput failure.
func InvalidInput(msg string) *Error { return &Error{Kind: KindInvalidInput, Msg: msg} }

// As unwraps err into an *Error when it is one.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
