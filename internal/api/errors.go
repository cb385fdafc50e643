package api

import (
	"errors"
	"fmt"
)

// ErrAuthMissing is returned when a fetch is attempted without a resolved
// credential. Distinct from a remote rejection: the corrective action is to
// configure an account, not to re-authenticate.
var ErrAuthMissing = errors.New("no account credential configured")

// RequestErrorKind classifies transport-level request failures.
type RequestErrorKind int

const (
	// KindHTTPStatus means the server answered with a non-2xx status.
	KindHTTPStatus RequestErrorKind = iota
	// KindTimeout means the request deadline elapsed before a response.
	KindTimeout
	// KindNetwork covers all other transport failures.
	KindNetwork
)

// RequestError is the failure result of the fetch primitive.
type RequestError struct {
	Err    error
	Body   string
	Kind   RequestErrorKind
	Status int
}

func (e *RequestError) Error() string {
	switch e.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("request failed: HTTP %d", e.Status)
	case KindTimeout:
		return "request timed out"
	default:
		return fmt.Sprintf("request failed: %v", e.Err)
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// ParseErrorKind classifies response-body validation failures.
type ParseErrorKind int

const (
	// ParseNotAnObject means the body was not valid JSON or its top-level
	// value was not an object.
	ParseNotAnObject ParseErrorKind = iota
	// ParseMissingField means a required top-level field was absent.
	ParseMissingField
)

// ParseError is the failure result of the defensive response parsers.
type ParseError struct {
	Field string
	Kind  ParseErrorKind
}

func (e *ParseError) Error() string {
	if e.Kind == ParseMissingField {
		return fmt.Sprintf("unexpected response: missing field %q", e.Field)
	}
	return "unexpected response: not an object"
}

// LoginErrorKind classifies login failures by corrective action.
type LoginErrorKind int

const (
	// LoginInvalidCredentials maps HTTP 400, 401 and 422.
	LoginInvalidCredentials LoginErrorKind = iota
	// LoginForbidden maps HTTP 403.
	LoginForbidden
	// LoginRequestFailed covers other non-2xx statuses and transport errors.
	LoginRequestFailed
	// LoginInvalidResponse means the body lacked a usable token.
	LoginInvalidResponse
)

// LoginError is the failure result of the login endpoint.
type LoginError struct {
	Err    error
	Kind   LoginErrorKind
	Status int
}

func (e *LoginError) Error() string {
	switch e.Kind {
	case LoginInvalidCredentials:
		return fmt.Sprintf("login failed: invalid credentials (HTTP %d)", e.Status)
	case LoginForbidden:
		return "login failed: forbidden"
	case LoginInvalidResponse:
		return fmt.Sprintf("login failed: invalid response: %v", e.Err)
	default:
		if e.Status != 0 {
			return fmt.Sprintf("login failed: HTTP %d", e.Status)
		}
		return fmt.Sprintf("login failed: %v", e.Err)
	}
}

func (e *LoginError) Unwrap() error {
	return e.Err
}
