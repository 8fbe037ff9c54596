package mocks

import (
	"context"
	"time"

	"github.com/rkulagin/ganttcal/internal/domain/activity"
	"github.com/rkulagin/ganttcal/internal/domain/employee"
	"github.com/rkulagin/ganttcal/internal/domain/project"
	"github.com/rkulagin/ganttcal/internal/domain/run"
	"github.com/rkulagin/ganttcal/internal/domain/task"
	"github.com/stretchr/testify/mock"
)

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, tenantID string, proj *project.Project) error {
	args := m.Called(ctx, tenantID, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, tenantID, id string) (*project.Project, error) {
	args := m.Called(ctx, tenantID, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context, tenantID string) ([]project.ProjectSummary, error) {
	args := m.Called(ctx, tenantID)
	if list, ok := args.Get(0).([]project.ProjectSummary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) UpdateStatus(ctx context.Context, tenantID, id string, status project.Status) error {
	args := m.Called(ctx, tenantID, id, status)
	return args.Error(0)
}

// EmployeeRepository is a mock for employee.Repository.
type EmployeeRepository struct {
	mock.Mock
}

func (m *EmployeeRepository) Create(ctx context.Context, tenantID string, emp *employee.Employee) error {
	args := m.Called(ctx, tenantID, emp)
	return args.Error(0)
}

func (m *EmployeeRepository) Get(ctx context.Context, tenantID string, id int64) (*employee.Employee, error) {
	args := m.Called(ctx, tenantID, id)
	if emp, ok := args.Get(0).(*employee.Employee); ok {
		return emp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EmployeeRepository) GetByName(ctx context.Context, tenantID, name string) (*employee.Employee, error) {
	args := m.Called(ctx, tenantID, name)
	if emp, ok := args.Get(0).(*employee.Employee); ok {
		return emp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EmployeeRepository) List(ctx context.Context, tenantID string) ([]employee.EmployeeSummary, error) {
	args := m.Called(ctx, tenantID)
	if list, ok := args.Get(0).([]employee.EmployeeSummary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EmployeeRepository) ListByPosition(ctx context.Context, tenantID, position string) ([]employee.Employee, error) {
	args := m.Called(ctx, tenantID, position)
	if list, ok := args.Get(0).([]employee.Employee); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EmployeeRepository) ListAll(ctx context.Context, tenantID string) ([]employee.Employee, error) {
	args := m.Called(ctx, tenantID)
	if list, ok := args.Get(0).([]employee.Employee); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// TaskRepository is a mock for task.Repository.
type TaskRepository struct {
	mock.Mock
}

func (m *TaskRepository) Create(ctx context.Context, tenantID string, t *task.Task) error {
	args := m.Called(ctx, tenantID, t)
	return args.Error(0)
}

func (m *TaskRepository) Get(ctx context.Context, tenantID string, id int64) (*task.Task, error) {
	args := m.Called(ctx, tenantID, id)
	if t, ok := args.Get(0).(*task.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) ListByProject(ctx context.Context, tenantID, projectID string) ([]task.Task, error) {
	args := m.Called(ctx, tenantID, projectID)
	if list, ok := args.Get(0).([]task.Task); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) UpdateDates(ctx context.Context, tenantID string, id int64, start, end time.Time) error {
	args := m.Called(ctx, tenantID, id, start, end)
	return args.Error(0)
}

func (m *TaskRepository) UpdateAssignment(ctx context.Context, tenantID string, id int64, employeeID *int64) error {
	args := m.Called(ctx, tenantID, id, employeeID)
	return args.Error(0)
}

func (m *TaskRepository) UpdateDuration(ctx context.Context, tenantID string, id int64, duration int) error {
	args := m.Called(ctx, tenantID, id, duration)
	return args.Error(0)
}

func (m *TaskRepository) AddDependency(ctx context.Context, tenantID string, edge task.DependencyEdge) error {
	args := m.Called(ctx, tenantID, edge)
	return args.Error(0)
}

func (m *TaskRepository) ListDependencies(ctx context.Context, tenantID, projectID string) ([]task.DependencyEdge, error) {
	args := m.Called(ctx, tenantID, projectID)
	if list, ok := args.Get(0).([]task.DependencyEdge); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// RunRepository is a mock for run.Repository.
type RunRepository struct {
	mock.Mock
}

func (m *RunRepository) Create(ctx context.Context, tenantID string, r *run.Run) error {
	args := m.Called(ctx, tenantID, r)
	return args.Error(0)
}

func (m *RunRepository) Get(ctx context.Context, tenantID, id string) (*run.Run, error) {
	args := m.Called(ctx, tenantID, id)
	if r, ok := args.Get(0).(*run.Run); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RunRepository) GetActive(ctx context.Context, tenantID, projectID string) (*run.Run, error) {
	args := m.Called(ctx, tenantID, projectID)
	if r, ok := args.Get(0).(*run.Run); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RunRepository) Finish(ctx context.Context, tenantID, id string, status run.Status, summary string) error {
	args := m.Called(ctx, tenantID, id, status, summary)
	return args.Error(0)
}

func (m *RunRepository) ListByProject(ctx context.Context, tenantID, projectID string, limit int) ([]run.Run, error) {
	args := m.Called(ctx, tenantID, projectID, limit)
	if list, ok := args.Get(0).([]run.Run); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, tenantID string, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, tenantID, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, tenantID string, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, tenantID, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
