package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/rkulagin/ganttcal/internal/repository"
)

// Service handles employee operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new employee service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateRequest defines employee creation inputs.
type CreateRequest struct {
	Name     string
	Position string
	DaysOff  []int
}

// Create creates a new employee.
func (s *Service) Create(ctx context.Context, tenantID string, req CreateRequest) (*Employee, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}
	daysOff, err := NormalizeDaysOff(req.DaysOff)
	if err != nil {
		return nil, err
	}

	emp := &Employee{
		TenantID:  tenantID,
		Name:      strings.TrimSpace(req.Name),
		Position:  strings.TrimSpace(req.Position),
		DaysOff:   daysOff,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, tenantID, emp); err != nil {
		return nil, fmt.Errorf("creating employee: %w", err)
	}
	return emp, nil
}

// Get fetches an employee by ID.
func (s *Service) Get(ctx context.Context, tenantID string, id int64) (*Employee, error) {
	emp, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("getting employee: %w", err)
	}
	return emp, nil
}

// List returns employee summaries.
func (s *Service) List(ctx context.Context, tenantID string) ([]EmployeeSummary, error) {
	return s.repo.List(ctx, tenantID)
}

// NormalizeDaysOff validates weekday numbers and returns them sorted with
// duplicates removed. An empty set is valid (the employee works every day).
func NormalizeDaysOff(daysOff []int) ([]int, error) {
	seen := make(map[int]bool, len(daysOff))
	out := make([]int, 0, len(daysOff))
	for _, d := range daysOff {
		if d < 1 || d > 7 {
			return nil, ErrInvalidDayOff
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Ints(out)
	return out, nil
}
