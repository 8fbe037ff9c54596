package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rkulagin/ganttcal/internal/domain/project"
	"github.com/rkulagin/ganttcal/internal/domain/task"
	"github.com/rkulagin/ganttcal/internal/repository"
)

// TaskRepository implements task.Repository for SQLite
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func encodeDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return project.FormatDate(*t)
}

func decodeDate(raw sql.NullString) (*time.Time, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	t, err := project.ParseDate(raw.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create creates a new task and fills in the generated ID
func (r *TaskRepository) Create(ctx context.Context, tenantID string, t *task.Task) error {
	query := `
		INSERT INTO tasks (
			tenant_id, project_id, name, duration, is_group, parallel,
			predecessors, parent_id, employee_id, position, start_date, end_date, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		tenantID,
		t.ProjectID,
		t.Name,
		t.Duration,
		t.IsGroup,
		t.Parallel,
		task.FormatPredecessors(t.Predecessors),
		t.ParentID,
		t.EmployeeID,
		t.Position,
		encodeDate(t.StartDate),
		encodeDate(t.EndDate),
		t.CreatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create task: %w", err)
	}

	t.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get task id: %w", err)
	}
	t.TenantID = tenantID

	return nil
}

// Get retrieves a task by ID
func (r *TaskRepository) Get(ctx context.Context, tenantID string, id int64) (*task.Task, error) {
	query := `
		SELECT
			id, tenant_id, project_id, name, duration, is_group, parallel,
			predecessors, parent_id, employee_id, position, start_date, end_date, created_at
		FROM tasks
		WHERE id = ? AND tenant_id = ?
	`

	var t task.Task
	var predecessors string
	var startDate, endDate sql.NullString
	err := r.db.QueryRowContext(ctx, query, id, tenantID).Scan(
		&t.ID,
		&t.TenantID,
		&t.ProjectID,
		&t.Name,
		&t.Duration,
		&t.IsGroup,
		&t.Parallel,
		&predecessors,
		&t.ParentID,
		&t.EmployeeID,
		&t.Position,
		&startDate,
		&endDate,
		&t.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	t.Predecessors = task.ParsePredecessors(predecessors)
	if t.StartDate, err = decodeDate(startDate); err != nil {
		return nil, fmt.Errorf("failed to parse task start date: %w", err)
	}
	if t.EndDate, err = decodeDate(endDate); err != nil {
		return nil, fmt.Errorf("failed to parse task end date: %w", err)
	}

	return &t, nil
}

// ListByProject returns all tasks of a project ordered by ID
func (r *TaskRepository) ListByProject(ctx context.Context, tenantID, projectID string) ([]task.Task, error) {
	query := `
		SELECT
			id, tenant_id, project_id, name, duration, is_group, parallel,
			predecessors, parent_id, employee_id, position, start_date, end_date, created_at
		FROM tasks
		WHERE project_id = ? AND tenant_id = ?
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		var t task.Task
		var predecessors string
		var startDate, endDate sql.NullString
		err := rows.Scan(
			&t.ID,
			&t.TenantID,
			&t.ProjectID,
			&t.Name,
			&t.Duration,
			&t.IsGroup,
			&t.Parallel,
			&predecessors,
			&t.ParentID,
			&t.EmployeeID,
			&t.Position,
			&startDate,
			&endDate,
			&t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		t.Predecessors = task.ParsePredecessors(predecessors)
		if t.StartDate, err = decodeDate(startDate); err != nil {
			return nil, fmt.Errorf("failed to parse task start date: %w", err)
		}
		if t.EndDate, err = decodeDate(endDate); err != nil {
			return nil, fmt.Errorf("failed to parse task end date: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	return tasks, nil
}

// UpdateDates sets the computed calendar dates of a task
func (r *TaskRepository) UpdateDates(ctx context.Context, tenantID string, id int64, start, end time.Time) error {
	query := `
		UPDATE tasks
		SET start_date = ?, end_date = ?
		WHERE id = ? AND tenant_id = ?
	`
	return r.exec(ctx, query, project.FormatDate(start), project.FormatDate(end), id, tenantID)
}

// UpdateAssignment sets or clears the task's assigned employee
func (r *TaskRepository) UpdateAssignment(ctx context.Context, tenantID string, id int64, employeeID *int64) error {
	query := `
		UPDATE tasks
		SET employee_id = ?
		WHERE id = ? AND tenant_id = ?
	`
	return r.exec(ctx, query, employeeID, id, tenantID)
}

// UpdateDuration sets a task's nominal duration
func (r *TaskRepository) UpdateDuration(ctx context.Context, tenantID string, id int64, duration int) error {
	query := `
		UPDATE tasks
		SET duration = ?
		WHERE id = ? AND tenant_id = ?
	`
	return r.exec(ctx, query, duration, id, tenantID)
}

func (r *TaskRepository) exec(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to update task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// AddDependency records a dependency edge; duplicates are ignored
func (r *TaskRepository) AddDependency(ctx context.Context, tenantID string, edge task.DependencyEdge) error {
	query := `
		INSERT OR IGNORE INTO dependencies (tenant_id, task_id, predecessor_id)
		VALUES (?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, tenantID, edge.TaskID, edge.PredecessorID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to add dependency: %w", err)
	}

	return nil
}

// ListDependencies returns all dependency edges between tasks of a project
func (r *TaskRepository) ListDependencies(ctx context.Context, tenantID, projectID string) ([]task.DependencyEdge, error) {
	query := `
		SELECT d.task_id, d.predecessor_id
		FROM dependencies d
		JOIN tasks t ON t.id = d.task_id AND t.tenant_id = d.tenant_id
		WHERE d.tenant_id = ? AND t.project_id = ?
		ORDER BY d.task_id, d.predecessor_id
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list dependencies: %w", err)
	}
	defer rows.Close()

	var edges []task.DependencyEdge
	for rows.Next() {
		var edge task.DependencyEdge
		if err := rows.Scan(&edge.TaskID, &edge.PredecessorID); err != nil {
			return nil, fmt.Errorf("failed to scan dependency: %w", err)
		}
		edges = append(edges, edge)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dependency rows: %w", err)
	}

	return edges, nil
}
