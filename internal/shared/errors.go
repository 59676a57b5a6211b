// Package shared defines sentinel errors used across healthdesk components.
// Callers should use errors.Is to match these values.
package shared

import "errors"

var (
	// Login challenge errors.
	ErrAuthenticationRejected = errors.New("authentication rejected")
	ErrOTPRejected            = errors.New("otp rejected")
	ErrNoPendingLogin         = errors.New("no pending login")

	// Session store contract violations.
	ErrInvalidSession       = errors.New("invalid session record")
	ErrAlreadyAuthenticated = errors.New("already authenticated")
)
