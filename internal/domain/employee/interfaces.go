package employee

import "context"

// Repository provides persistence for employees.
type Repository interface {
	Create(ctx context.Context, tenantID string, emp *Employee) error
	Get(ctx context.Context, tenantID string, id int64) (*Employee, error)
	GetByName(ctx context.Context, tenantID, name string) (*Employee, error)
	List(ctx context.Context, tenantID string) ([]EmployeeSummary, error)
	ListByPosition(ctx context.Context, tenantID, position string) ([]Employee, error)
	ListAll(ctx context.Context, tenantID string) ([]Employee, error)
}
