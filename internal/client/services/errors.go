package services

import "errors"

// ErrInvalidClientID is returned before any server call when a supplied
// client ID is not a UUID.
var ErrInvalidClientID = errors.New("invalid client id")

// RejectionError is a recoverable, user-visible rejection: the sentinel kind
// (shared.ErrAuthenticationRejected, shared.ErrOTPRejected) is matchable with
// errors.Is, while Error() is the message to display inline.
type RejectionError struct {
	Kind    error
	Message string
}

func (e *RejectionError) Error() string { return e.Message }

func (e *RejectionError) Unwrap() error { return e.Kind }
