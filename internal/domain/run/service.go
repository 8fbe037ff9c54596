package run

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rkulagin/ganttcal/internal/repository"
)

// Service handles scheduling run bookkeeping.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new run service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Begin registers a new running run for the project. It fails with
// ErrRunInProgress when another run is still active, which is how
// concurrent calculations against the same project are serialized.
func (s *Service) Begin(ctx context.Context, tenantID, projectID string) (*Run, error) {
	if projectID == "" {
		return nil, ErrInvalidInput
	}

	active, err := s.repo.GetActive(ctx, tenantID, projectID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("checking active run: %w", err)
	}
	if active != nil {
		return nil, ErrRunInProgress
	}

	r := &Run{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		ProjectID: projectID,
		Status:    StatusRunning,
		StartedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, tenantID, r); err != nil {
		return nil, fmt.Errorf("creating run: %w", err)
	}
	return r, nil
}

// Finish closes a run with a terminal status and a short summary.
func (s *Service) Finish(ctx context.Context, tenantID, id string, status Status, summary string) error {
	if status != StatusCompleted && status != StatusFailed {
		return ErrInvalidInput
	}
	if err := s.repo.Finish(ctx, tenantID, id, status, summary); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRunNotFound
		}
		return fmt.Errorf("finishing run: %w", err)
	}
	return nil
}

// History returns recent runs for a project, newest first.
func (s *Service) History(ctx context.Context, tenantID, projectID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListByProject(ctx, tenantID, projectID, limit)
}
