package services

import (
	"context"
	"errors"

	"healthdesk/internal/client/api"
	"healthdesk/internal/client/models"
)

var ErrProgramIncomplete = errors.New("program name and code are required")

// ProgramService covers health-program listing and creation.
type ProgramService interface {
	List(ctx context.Context) ([]models.HealthProgram, error)
	Create(ctx context.Context, p *models.HealthProgram) (*models.HealthProgram, error)
}

// DashboardService fetches the aggregate statistics for the landing view.
type DashboardService interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

type programService struct {
	api api.Client
}

func NewProgramService(client api.Client) ProgramService {
	return &programService{api: client}
}

func (s *programService) List(ctx context.Context) ([]models.HealthProgram, error) {
	return s.api.ListPrograms(ctx)
}

func (s *programService) Create(ctx context.Context, p *models.HealthProgram) (*models.HealthProgram, error) {
	if p.Name == "" || p.Code == "" {
		return nil, ErrProgramIncomplete
	}
	return s.api.CreateProgram(ctx, p)
}

type dashboardService struct {
	api api.Client
}

func NewDashboardService(client api.Client) DashboardService {
	return &dashboardService{api: client}
}

func (s *dashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	return s.api.DashboardStats(ctx)
}
