package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"healthdesk/internal/client/models"
	"healthdesk/internal/client/services"
	"healthdesk/internal/client/session"
	"healthdesk/internal/logging"
	"healthdesk/internal/shared"
)

// stubInputs replaces the interactive input seams with canned values.
// Successive getSimpleText calls consume 'texts' in order.
func stubInputs(t *testing.T, texts []string, password string) func() {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(texts) {
			t.Fatalf("unexpected text prompt #%d", i+1)
		}
		v := texts[i]
		i++
		return v, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(password), nil }
	return func() {
		getSimpleText = origST
		getPassword = origGP
	}
}

type fakeAuthSvc struct {
	state   services.FlowState
	pending string

	credUser string
	credPass string
	credMsg  string
	credErr  error

	otpCodes []string
	otpID    models.Identity
	otpErrs  []error

	abandonCalled bool
	logoutCalled  bool
	logoutErr     error
}

func (f *fakeAuthSvc) State() services.FlowState { return f.state }
func (f *fakeAuthSvc) PendingUsername() string   { return f.pending }
func (f *fakeAuthSvc) SubmitCredentials(_ context.Context, username, password string) (string, error) {
	f.credUser, f.credPass = username, password
	return f.credMsg, f.credErr
}
func (f *fakeAuthSvc) SubmitOTP(_ context.Context, code string) (models.Identity, error) {
	f.otpCodes = append(f.otpCodes, code)
	var err error
	if n := len(f.otpCodes) - 1; n < len(f.otpErrs) {
		err = f.otpErrs[n]
	}
	if err != nil {
		return models.Identity{}, err
	}
	return f.otpID, nil
}
func (f *fakeAuthSvc) Abandon()                          { f.abandonCalled = true }
func (f *fakeAuthSvc) Logout(ctx context.Context) error { f.logoutCalled = true; return f.logoutErr }

func newTestApp(auth services.AuthService) *App {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return &App{
		auth:    auth,
		session: session.NewStore(nil, log),
		reader:  bufio.NewReader(strings.NewReader("")),
	}
}

func TestLogin_Success(t *testing.T) {
	f := &fakeAuthSvc{
		credMsg: "OTP has been sent to your email",
		otpID:   models.Identity{Token: "tok", UserID: 7, Username: "alice", Email: "alice@example.org"},
	}
	a := newTestApp(f)

	restore := stubInputs(t, []string{"alice", "123456"}, "secret")
	defer restore()

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if f.credUser != "alice" || f.credPass != "secret" {
		t.Fatalf("credentials mismatch: %q/%q", f.credUser, f.credPass)
	}
	if len(f.otpCodes) != 1 || f.otpCodes[0] != "123456" {
		t.Fatalf("otp codes: %v", f.otpCodes)
	}
}

func TestLogin_WipesPasswordBuffer(t *testing.T) {
	f := &fakeAuthSvc{
		credMsg: "OTP has been sent to your email",
		otpID:   models.Identity{Token: "tok", UserID: 7, Username: "alice", Email: "alice@example.org"},
	}
	a := newTestApp(f)

	buf := []byte("secret")
	origST, origGP := getSimpleText, getPassword
	texts := []string{"alice", "123456"}
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		v := texts[i]
		i++
		return v, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return buf, nil }
	t.Cleanup(func() { getSimpleText = origST; getPassword = origGP })

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if f.credPass != "secret" {
		t.Fatalf("password not forwarded: %q", f.credPass)
	}
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("password buffer not wiped at %d: %v", i, buf)
		}
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	f := &fakeAuthSvc{
		credErr: &services.RejectionError{Kind: shared.ErrAuthenticationRejected, Message: "Invalid credentials"},
	}
	a := newTestApp(f)

	restore := stubInputs(t, []string{"alice"}, "wrong")
	defer restore()

	err := a.Login(context.Background())
	if !errors.Is(err, shared.ErrAuthenticationRejected) {
		t.Fatalf("want rejection, got %v", err)
	}
	if len(f.otpCodes) != 0 {
		t.Fatalf("OTP submitted after rejected credentials: %v", f.otpCodes)
	}
}

func TestLogin_OTPRejectedThenAccepted(t *testing.T) {
	f := &fakeAuthSvc{
		credMsg: "OTP has been sent to your email",
		otpID:   models.Identity{Token: "tok", UserID: 7, Username: "alice", Email: "alice@example.org"},
		otpErrs: []error{
			&services.RejectionError{Kind: shared.ErrOTPRejected, Message: "Invalid or expired OTP"},
			nil,
		},
	}
	a := newTestApp(f)

	restore := stubInputs(t, []string{"alice", "000000", "123456"}, "secret")
	defer restore()

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if len(f.otpCodes) != 2 {
		t.Fatalf("want 2 OTP submissions, got %v", f.otpCodes)
	}
}

func TestLogin_EmptyOTPCancels(t *testing.T) {
	f := &fakeAuthSvc{credMsg: "OTP has been sent to your email"}
	a := newTestApp(f)

	restore := stubInputs(t, []string{"alice", ""}, "secret")
	defer restore()

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if !f.abandonCalled {
		t.Fatalf("Abandon not called")
	}
	if len(f.otpCodes) != 0 {
		t.Fatalf("OTP submitted after cancel: %v", f.otpCodes)
	}
}

func TestLogin_NoPendingResets(t *testing.T) {
	f := &fakeAuthSvc{
		credMsg: "OTP has been sent to your email",
		otpErrs: []error{shared.ErrNoPendingLogin},
	}
	a := newTestApp(f)

	restore := stubInputs(t, []string{"alice", "123456"}, "secret")
	defer restore()

	err := a.Login(context.Background())
	if !errors.Is(err, shared.ErrNoPendingLogin) {
		t.Fatalf("want ErrNoPendingLogin, got %v", err)
	}
}

func TestLogout(t *testing.T) {
	f := &fakeAuthSvc{}
	a := newTestApp(f)
	if err := a.Logout(context.Background()); err != nil {
		t.Fatalf("Logout err: %v", err)
	}
	if !f.logoutCalled {
		t.Fatalf("Logout not forwarded")
	}
}

func TestLogout_ErrorPropagates(t *testing.T) {
	f := &fakeAuthSvc{logoutErr: errors.New("teardown-fail")}
	a := newTestApp(f)
	if err := a.Logout(context.Background()); err == nil {
		t.Fatalf("want error from Logout")
	}
}
