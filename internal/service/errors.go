package service

import (
	"errors"
	"fmt"
)

// Kind classifies a failure returned by the client layer.
type Kind int

const (
	// KindTransport covers network failures and undecodable responses.
	KindTransport Kind = iota + 1

	// KindAuth means the server rejected the credentials (missing, expired, invalid).
	KindAuth

	// KindValidation means the payload or an argument was rejected.
	KindValidation

	// KindNotFound means the requested record does not exist.
	KindNotFound

	// KindRemote is any other unsuccessful envelope.
	KindRemote
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAuth:
		return "auth"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// Error is the failure type returned by the auth service and repositories.
type Error struct {
	Kind Kind
	// Status is the HTTP status code, zero when no response was received.
	Status int
	// Code is the envelope's numeric error code, zero when absent.
	Code    int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds an Error of the given kind.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError classifies an underlying error.
func WrapError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// ErrNoSession is returned by operations that need a stored token when there is none.
var ErrNoSession = NewError(KindAuth, "not logged in")

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// KindOf returns the kind of err, or zero if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
