package disol_errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	ErrNotFound       = errors.New("not found")
	ErrAlreadyExists  = errors.New("already exists")
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotConfigured  = errors.New("not configured")
	ErrUpstream       = errors.New("upstream request failed")
	ErrMethodNotAllow = errors.New("method not allowed")
)

// Kind classifies an error for the HTTP boundary.
type Kind int

const (
	KindUnhandled Kind = iota
	KindValidation
	KindConfiguration
	KindUpstream
	KindMethodNotAllowed
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindConfiguration:
		return "CONFIGURATION_ERROR"
	case KindUpstream:
		return "UPSTREAM_ERROR"
	case KindMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	default:
		return "INTERNAL_ERROR"
	}
}

// StatusCode is the HTTP status a kind is reported with.
func (k Kind) StatusCode() int {
	switch k {
	case KindValidation, KindConfiguration:
		return http.StatusBadRequest
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified error. Message is what the client sees.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...), Err: ErrInvalidInput}
}

func Configuration(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConfiguration, Message: fmt.Sprintf(format, args...), Err: ErrNotConfigured}
}

// Upstream wraps a failed call to a third-party API.
func Upstream(message string, err error) *Error {
	if err == nil {
		err = ErrUpstream
	}
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

func MethodNotAllowed() *Error {
	return &Error{Kind: KindMethodNotAllowed, Message: ErrMethodNotAllow.Error(), Err: ErrMethodNotAllow}
}

// KindOf reports the kind of err. Errors that are not *Error are unhandled.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnhandled
}

// StatusCode maps any error to its HTTP status.
func StatusCode(err error) int {
	return KindOf(err).StatusCode()
}
