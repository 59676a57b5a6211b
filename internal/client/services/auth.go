// Package services contains the application services of the healthdesk
// client. This file defines the two-step login challenge flow layered on the
// session store.
package services

import (
	"context"
	"errors"
	"sync"

	"healthdesk/internal/client/api"
	"healthdesk/internal/client/models"
	"healthdesk/internal/client/session"
	"healthdesk/internal/shared"
)

// FlowState tracks progress through the login challenge.
type FlowState string

const (
	FlowAwaitingCredentials FlowState = "awaiting_credentials"
	FlowAwaitingOTP         FlowState = "awaiting_otp"
	FlowCompleted           FlowState = "completed"
)

// The server validates the code; the client only enforces presence and
// length.
const maxOTPLength = 6

// AuthService drives the login → OTP → session lifecycle.
//
// Contract:
//   - SubmitCredentials: step 1; on acceptance the server has dispatched an
//     OTP and the flow records the username as the pending authentication.
//   - SubmitOTP: step 2; requires a pending authentication, otherwise the
//     caller must be sent back to step 1 (shared.ErrNoPendingLogin) and no
//     server call is made.
//   - Logout: tears down the session; idempotent.
//
// The pending username is in-memory transit state only: a process restart
// mid-challenge lands back at FlowAwaitingCredentials.
type AuthService interface {
	State() FlowState
	PendingUsername() string
	SubmitCredentials(ctx context.Context, username, password string) (string, error)
	SubmitOTP(ctx context.Context, otpCode string) (models.Identity, error)
	Abandon()
	Logout(ctx context.Context) error
}

type authService struct {
	api     api.Client
	session *session.Store

	mu      sync.Mutex
	state   FlowState
	pending string
}

// NewAuthService constructs an AuthService bound to the given gateway and
// session store.
func NewAuthService(client api.Client, store *session.Store) AuthService {
	return &authService{api: client, session: store, state: FlowAwaitingCredentials}
}

func (a *authService) State() FlowState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *authService) PendingUsername() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending
}

// SubmitCredentials performs step 1. On success it returns the server's
// advisory message ("OTP has been sent ...") and moves to FlowAwaitingOTP.
// Bad credentials surface as shared.ErrAuthenticationRejected carrying the
// server message; the flow stays at FlowAwaitingCredentials.
func (a *authService) SubmitCredentials(ctx context.Context, username, password string) (string, error) {
	res, err := a.api.Login(ctx, username, password)
	if err != nil {
		var serr *api.ServerError
		if errors.As(err, &serr) {
			return "", &RejectionError{Kind: shared.ErrAuthenticationRejected, Message: serr.Message}
		}
		return "", err
	}

	a.mu.Lock()
	a.pending = username
	a.state = FlowAwaitingOTP
	a.mu.Unlock()

	return res.Message, nil
}

// SubmitOTP performs step 2. Without a pending authentication it resets to
// step 1 and returns shared.ErrNoPendingLogin without touching the server.
// An invalid or expired code surfaces as shared.ErrOTPRejected and the flow
// stays at FlowAwaitingOTP for resubmission.
func (a *authService) SubmitOTP(ctx context.Context, otpCode string) (models.Identity, error) {
	a.mu.Lock()
	pending := a.pending
	if pending == "" || a.state != FlowAwaitingOTP {
		a.pending = ""
		a.state = FlowAwaitingCredentials
		a.mu.Unlock()
		return models.Identity{}, shared.ErrNoPendingLogin
	}
	a.mu.Unlock()

	if otpCode == "" {
		return models.Identity{}, &RejectionError{Kind: shared.ErrOTPRejected, Message: "OTP code is required"}
	}
	if len(otpCode) > maxOTPLength {
		return models.Identity{}, &RejectionError{Kind: shared.ErrOTPRejected, Message: "OTP code must be at most 6 characters"}
	}

	id, err := a.api.VerifyOTP(ctx, pending, otpCode)
	if err != nil {
		var serr *api.ServerError
		if errors.As(err, &serr) {
			return models.Identity{}, &RejectionError{Kind: shared.ErrOTPRejected, Message: serr.Message}
		}
		return models.Identity{}, err
	}

	if err := a.session.CompleteAuthentication(ctx, *id); err != nil {
		return models.Identity{}, err
	}

	a.mu.Lock()
	a.pending = ""
	a.state = FlowCompleted
	a.mu.Unlock()

	return *id, nil
}

// Abandon drops a half-finished challenge and returns to step 1.
func (a *authService) Abandon() {
	a.mu.Lock()
	a.pending = ""
	a.state = FlowAwaitingCredentials
	a.mu.Unlock()
}

// Logout ends the session and resets the flow.
func (a *authService) Logout(ctx context.Context) error {
	a.mu.Lock()
	a.pending = ""
	a.state = FlowAwaitingCredentials
	a.mu.Unlock()
	return a.session.EndSession(ctx)
}
