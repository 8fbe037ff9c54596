package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rkulagin/ganttcal/internal/repository"
)

// DateLayout is the calendar date format used at external boundaries.
const DateLayout = "2006-01-02"

// Service handles project operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	ID        string
	Name      string
	StartDate string // YYYY-MM-DD
}

// Create creates a new project.
func (s *Service) Create(ctx context.Context, tenantID string, req CreateRequest) (*Project, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}

	start, err := ParseDate(req.StartDate)
	if err != nil {
		return nil, ErrInvalidStartDate
	}

	id := req.ID
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}

	proj := &Project{
		ID:        id,
		TenantID:  tenantID,
		Name:      req.Name,
		StartDate: start,
		Status:    StatusPlanning,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, tenantID, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	return proj, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, tenantID, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// List returns project summaries.
func (s *Service) List(ctx context.Context, tenantID string) ([]ProjectSummary, error) {
	return s.repo.List(ctx, tenantID)
}

// SetStatus updates the project scheduling status.
func (s *Service) SetStatus(ctx context.Context, tenantID, id string, status Status) error {
	if err := s.repo.UpdateStatus(ctx, tenantID, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("updating project status: %w", err)
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD date at UTC midnight.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(value), time.UTC)
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}
