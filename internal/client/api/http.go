package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"healthdesk/internal/client/models"
)

// AuthScheme is the credential-scheme prefix of the Authorization header.
const AuthScheme = "Token"

// TokenSource supplies the current bearer token; an empty string means
// unauthenticated. The session store satisfies this interface.
type TokenSource interface {
	Token() string
}

// HTTPClient is the single egress point for all API calls. Every request is
// stamped with the Authorization header derived from the token source, and
// every response is classified by mapResponse. Requests are never blocked
// client-side for lacking a token; the server's rejection is handled like any
// other authorization failure.
type HTTPClient struct {
	baseURL       string
	http          *http.Client
	tokens        TokenSource
	onAuthFailure func()
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying http.Client (used by tests).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *HTTPClient) {
		cl.http = c
	}
}

// WithTokenSource wires the source of the bearer token.
func WithTokenSource(ts TokenSource) Option {
	return func(cl *HTTPClient) {
		cl.tokens = ts
	}
}

// WithAuthFailureHandler registers the hook invoked when the server signals
// an authorization failure, before the error is propagated to the caller.
func WithAuthFailureHandler(fn func()) Option {
	return func(cl *HTTPClient) {
		cl.onAuthFailure = fn
	}
}

func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetAuthFailureHandler allows wiring the hook after construction, which
// breaks the construction cycle between the gateway and the session store.
func (c *HTTPClient) SetAuthFailureHandler(fn func()) {
	c.onAuthFailure = fn
}

// SetTokenSource wires the token source after construction.
func (c *HTTPClient) SetTokenSource(ts TokenSource) {
	c.tokens = ts
}

// do issues one request and decodes a 2xx response body into out (when out is
// non-nil). All error classification lives here so no call site interprets
// failures on its own.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if t := c.tokens.Token(); t != "" {
			req.Header.Set("Authorization", AuthScheme+" "+t)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return ErrUnavailable
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return ErrUnavailable
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		if c.onAuthFailure != nil {
			c.onAuthFailure()
		}
		return ErrUnauthorized
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &ServerError{StatusCode: resp.StatusCode, Message: serverMessage(data, resp.StatusCode)}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return ErrMalformedResponse
		}
	}
	return nil
}

// serverMessage extracts a human-readable message from a failure body. The
// backend answers with {"message": ...}, {"detail": ...} or DRF-style
// {"non_field_errors": [...]} depending on the endpoint.
func serverMessage(data []byte, status int) string {
	var body struct {
		Message        string   `json:"message"`
		Detail         string   `json:"detail"`
		NonFieldErrors []string `json:"non_field_errors"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		switch {
		case body.Message != "":
			return body.Message
		case body.Detail != "":
			return body.Detail
		case len(body.NonFieldErrors) > 0:
			return body.NonFieldErrors[0]
		}
	}
	return http.StatusText(status)
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	req := map[string]string{"username": username, "password": password}
	var res LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login/", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) VerifyOTP(ctx context.Context, username, otpCode string) (*models.Identity, error) {
	req := map[string]string{"username": username, "otp_code": otpCode}
	var id models.Identity
	if err := c.do(ctx, http.MethodPost, "/auth/verify-otp/", req, &id); err != nil {
		return nil, err
	}
	if !id.Complete() {
		return nil, ErrMalformedResponse
	}
	return &id, nil
}

func (c *HTTPClient) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/dashboard/", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *HTTPClient) ListClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := c.do(ctx, http.MethodGet, "/clients/", nil, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (c *HTTPClient) SearchClients(ctx context.Context, query string, programID int64) ([]models.Client, error) {
	req := map[string]any{"query": query}
	if programID != 0 {
		req["program_id"] = programID
	}
	var clients []models.Client
	if err := c.do(ctx, http.MethodPost, "/clients/search/", req, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (c *HTTPClient) GetClient(ctx context.Context, id string) (*models.Client, error) {
	var client models.Client
	if err := c.do(ctx, http.MethodGet, "/clients/"+id+"/", nil, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (c *HTTPClient) GetClientProfile(ctx context.Context, id string) (*models.ClientProfile, error) {
	var profile models.ClientProfile
	if err := c.do(ctx, http.MethodGet, "/clients/"+id+"/profile/", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *HTTPClient) CreateClient(ctx context.Context, client *models.Client) (*models.Client, error) {
	var created models.Client
	if err := c.do(ctx, http.MethodPost, "/clients/", client, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *HTTPClient) UpdateClient(ctx context.Context, id string, client *models.Client) (*models.Client, error) {
	var updated models.Client
	if err := c.do(ctx, http.MethodPut, "/clients/"+id+"/", client, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *HTTPClient) DeleteClient(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/clients/"+id+"/", nil, nil)
}

func (c *HTTPClient) EnrollClient(ctx context.Context, id string, programID int64, notes string) (*models.Enrollment, error) {
	req := map[string]any{"program_id": programID, "notes": notes}
	var enrollment models.Enrollment
	if err := c.do(ctx, http.MethodPost, "/clients/"+id+"/enroll/", req, &enrollment); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (c *HTTPClient) ListPrograms(ctx context.Context) ([]models.HealthProgram, error) {
	var programs []models.HealthProgram
	if err := c.do(ctx, http.MethodGet, "/programs/", nil, &programs); err != nil {
		return nil, err
	}
	return programs, nil
}

func (c *HTTPClient) CreateProgram(ctx context.Context, p *models.HealthProgram) (*models.HealthProgram, error) {
	var created models.HealthProgram
	if err := c.do(ctx, http.MethodPost, "/programs/", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
