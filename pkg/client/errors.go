package client

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredentials is returned by New when no username or password
	// could be resolved from the arguments or the environment.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrIncompleteDOB is returned by Find when searching by date of birth
	// alone without a full date.
	ErrIncompleteDOB = errors.New("missing part of date of birth")

	// ErrNotLoggedIn is returned by authenticated calls on a client without a session.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrMalformedLogin is wrapped by the APIError returned when the login
	// response is not "<session>,<person>".
	ErrMalformedLogin = errors.New("malformed login response")

	// ErrUnknownRelation is wrapped by LookupError.
	ErrUnknownRelation = errors.New("unknown relation")
)

// ClientError is a configuration or usage error caught before any request is sent.
type ClientError struct {
	Msg string
	Err error
}

func (e *ClientError) Error() string {
	if e.Msg == "" {
		return e.Err.Error()
	}
	return e.Msg
}

func (e *ClientError) Unwrap() error { return e.Err }

// APIError is returned when the service answered with a body the client could
// not use. Body holds the response text verbatim so server-side messages
// reach the caller.
type APIError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d: empty response", e.StatusCode)
	}
	return e.Body
}

func (e *APIError) Unwrap() error { return e.Err }

// EncodingError reports text that cannot be sent in the service's ISO-8859-1 encoding.
// Redacted is set for secret fields, which carry no Value, Rune or Offset.
type EncodingError struct {
	Field    string
	Value    string
	Rune     rune
	Offset   int
	Redacted bool
}

func (e *EncodingError) Error() string {
	if e.Redacted {
		return e.Field + ": contains characters not representable in ISO-8859-1"
	}
	return fmt.Sprintf("%s: character %q at byte %d is not representable in ISO-8859-1", e.Field, e.Rune, e.Offset)
}

// LookupError is returned for relation names outside the fixed set.
type LookupError struct {
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %q", ErrUnknownRelation, e.Name)
}

func (e *LookupError) Unwrap() error { return ErrUnknownRelation }

// IsClientError returns true if err (or any wrapped error) is a ClientError.
func IsClientError(err error) bool {
	var clientErr *ClientError
	return errors.As(err, &clientErr)
}

// IsAPIError returns true if err (or any wrapped error) is an APIError.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
