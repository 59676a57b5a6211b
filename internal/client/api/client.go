package api

import (
	"context"

	"healthdesk/internal/client/models"
)

// LoginResult is the body of a successful first-step login: the server has
// dispatched an OTP, no token is issued yet.
type LoginResult struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

// Client is the full surface of the remote health-program management API.
//
// Errors returned by implementations are classified into exactly three
// shapes, matchable with errors.Is / errors.As:
//   - ErrUnavailable: transport failure, no response received.
//   - ErrUnauthorized: the server rejected the credential; the configured
//     auth-failure hook has already run.
//   - *ServerError: any other failure response, carrying the server message.
type Client interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	VerifyOTP(ctx context.Context, username, otpCode string) (*models.Identity, error)

	DashboardStats(ctx context.Context) (*models.DashboardStats, error)

	ListClients(ctx context.Context) ([]models.Client, error)
	SearchClients(ctx context.Context, query string, programID int64) ([]models.Client, error)
	GetClient(ctx context.Context, id string) (*models.Client, error)
	GetClientProfile(ctx context.Context, id string) (*models.ClientProfile, error)
	CreateClient(ctx context.Context, c *models.Client) (*models.Client, error)
	UpdateClient(ctx context.Context, id string, c *models.Client) (*models.Client, error)
	DeleteClient(ctx context.Context, id string) error
	EnrollClient(ctx context.Context, id string, programID int64, notes string) (*models.Enrollment, error)

	ListPrograms(ctx context.Context) ([]models.HealthProgram, error)
	CreateProgram(ctx context.Context, p *models.HealthProgram) (*models.HealthProgram, error)
}
