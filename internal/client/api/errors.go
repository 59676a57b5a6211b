package api

import "errors"

var (
	// ErrUnavailable means no response reached the client (network down,
	// timeout). The message is the fixed advisory shown to users.
	ErrUnavailable = errors.New("network error - please check your connection")

	// ErrUnauthorized means the server signalled the credential is missing,
	// invalid or expired. Receiving it also tears the session down.
	ErrUnauthorized = errors.New("authorization expired")

	// ErrMalformedResponse means the server answered success but the body did
	// not carry the required fields.
	ErrMalformedResponse = errors.New("malformed server response")
)

// ServerError is a non-authorization failure response. Error() returns the
// server-provided message so callers can surface it inline unchanged.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string { return e.Message }
