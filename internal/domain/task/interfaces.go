package task

import (
	"context"
	"time"
)

// Repository provides persistence for tasks and dependency edges.
type Repository interface {
	Create(ctx context.Context, tenantID string, t *Task) error
	Get(ctx context.Context, tenantID string, id int64) (*Task, error)
	ListByProject(ctx context.Context, tenantID, projectID string) ([]Task, error)
	UpdateDates(ctx context.Context, tenantID string, id int64, start, end time.Time) error
	UpdateAssignment(ctx context.Context, tenantID string, id int64, employeeID *int64) error
	UpdateDuration(ctx context.Context, tenantID string, id int64, duration int) error
	AddDependency(ctx context.Context, tenantID string, edge DependencyEdge) error
	ListDependencies(ctx context.Context, tenantID, projectID string) ([]DependencyEdge, error)
}
