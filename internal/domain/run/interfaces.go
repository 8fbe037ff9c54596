package run

import "context"

// Repository provides persistence for scheduling runs.
type Repository interface {
	Create(ctx context.Context, tenantID string, r *Run) error
	Get(ctx context.Context, tenantID, id string) (*Run, error)
	GetActive(ctx context.Context, tenantID, projectID string) (*Run, error)
	Finish(ctx context.Context, tenantID, id string, status Status, summary string) error
	ListByProject(ctx context.Context, tenantID, projectID string, limit int) ([]Run, error)
}
