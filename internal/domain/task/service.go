package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rkulagin/ganttcal/internal/repository"
)

// Service handles task operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new task service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateRequest defines task creation inputs.
type CreateRequest struct {
	ID           int64 // optional; assigned by storage when zero
	ProjectID    string
	Name         string
	Duration     int
	IsGroup      bool
	Parallel     bool
	Predecessors []int64
	ParentID     *int64
	Position     string
}

// Create creates a new task. A parent reference must point at an existing
// group task in the same project.
func (s *Service) Create(ctx context.Context, tenantID string, req CreateRequest) (*Task, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		parent, err := s.Get(ctx, tenantID, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if !parent.IsGroup {
			return nil, ErrParentNotGroup
		}
		if parent.ProjectID != req.ProjectID {
			return nil, ErrInvalidInput
		}
	}

	t := &Task{
		ID:           req.ID,
		TenantID:     tenantID,
		ProjectID:    req.ProjectID,
		Name:         strings.TrimSpace(req.Name),
		Duration:     req.Duration,
		IsGroup:      req.IsGroup,
		Parallel:     req.Parallel,
		Predecessors: DedupePredecessors(req.ID, req.Predecessors),
		ParentID:     req.ParentID,
		Position:     strings.TrimSpace(req.Position),
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, tenantID, t); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	return t, nil
}

// Get fetches a task by ID.
func (s *Service) Get(ctx context.Context, tenantID string, id int64) (*Task, error) {
	t, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("getting task: %w", err)
	}
	return t, nil
}

// ListByProject returns all tasks for a project.
func (s *Service) ListByProject(ctx context.Context, tenantID, projectID string) ([]Task, error) {
	return s.repo.ListByProject(ctx, tenantID, projectID)
}

// AddDependency records an explicit dependency edge. Both ends must exist
// and self-dependencies are rejected.
func (s *Service) AddDependency(ctx context.Context, tenantID string, edge DependencyEdge) error {
	if edge.TaskID == edge.PredecessorID {
		return ErrSelfDependency
	}
	if _, err := s.Get(ctx, tenantID, edge.TaskID); err != nil {
		return err
	}
	if _, err := s.Get(ctx, tenantID, edge.PredecessorID); err != nil {
		return err
	}
	if err := s.repo.AddDependency(ctx, tenantID, edge); err != nil {
		return fmt.Errorf("adding dependency: %w", err)
	}
	return nil
}
