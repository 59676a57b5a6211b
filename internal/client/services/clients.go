package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"healthdesk/internal/client/api"
	"healthdesk/internal/client/models"
)

// ClientService covers the client (patient) CRUD and enrollment operations.
// It validates IDs before issuing calls; everything else, including duplicate
// enrollment rejection, is the server's call and its message is surfaced
// unchanged.
type ClientService interface {
	List(ctx context.Context) ([]models.Client, error)
	Search(ctx context.Context, query string, programID int64) ([]models.Client, error)
	Get(ctx context.Context, id string) (*models.Client, error)
	Profile(ctx context.Context, id string) (*models.ClientProfile, error)
	Register(ctx context.Context, c *models.Client) (*models.Client, error)
	Update(ctx context.Context, id string, c *models.Client) (*models.Client, error)
	Delete(ctx context.Context, id string) error
	Enroll(ctx context.Context, id string, programID int64, notes string) (*models.Enrollment, error)
}

type clientService struct {
	api api.Client
}

func NewClientService(client api.Client) ClientService {
	return &clientService{api: client}
}

func checkClientID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidClientID, id)
	}
	return nil
}

func (s *clientService) List(ctx context.Context) ([]models.Client, error) {
	return s.api.ListClients(ctx)
}

func (s *clientService) Search(ctx context.Context, query string, programID int64) ([]models.Client, error) {
	return s.api.SearchClients(ctx, query, programID)
}

func (s *clientService) Get(ctx context.Context, id string) (*models.Client, error) {
	if err := checkClientID(id); err != nil {
		return nil, err
	}
	return s.api.GetClient(ctx, id)
}

func (s *clientService) Profile(ctx context.Context, id string) (*models.ClientProfile, error) {
	if err := checkClientID(id); err != nil {
		return nil, err
	}
	return s.api.GetClientProfile(ctx, id)
}

func (s *clientService) Register(ctx context.Context, c *models.Client) (*models.Client, error) {
	return s.api.CreateClient(ctx, c)
}

func (s *clientService) Update(ctx context.Context, id string, c *models.Client) (*models.Client, error) {
	if err := checkClientID(id); err != nil {
		return nil, err
	}
	return s.api.UpdateClient(ctx, id, c)
}

func (s *clientService) Delete(ctx context.Context, id string) error {
	if err := checkClientID(id); err != nil {
		return err
	}
	return s.api.DeleteClient(ctx, id)
}

func (s *clientService) Enroll(ctx context.Context, id string, programID int64, notes string) (*models.Enrollment, error) {
	if err := checkClientID(id); err != nil {
		return nil, err
	}
	return s.api.EnrollClient(ctx, id, programID, notes)
}
