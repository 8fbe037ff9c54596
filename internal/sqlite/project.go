package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rkulagin/ganttcal/internal/domain/project"
	"github.com/rkulagin/ganttcal/internal/repository"
)

// ProjectRepository implements project.Repository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, tenantID string, proj *project.Project) error {
	query := `
		INSERT INTO projects (id, tenant_id, name, start_date, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		proj.ID,
		tenantID,
		proj.Name,
		project.FormatDate(proj.StartDate),
		proj.Status,
		proj.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, tenantID, id string) (*project.Project, error) {
	query := `
		SELECT id, tenant_id, name, start_date, status, created_at
		FROM projects
		WHERE id = ? AND tenant_id = ?
	`

	var proj project.Project
	var startDate string
	err := r.db.QueryRowContext(ctx, query, id, tenantID).Scan(
		&proj.ID,
		&proj.TenantID,
		&proj.Name,
		&startDate,
		&proj.Status,
		&proj.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	proj.StartDate, err = project.ParseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse project start date: %w", err)
	}

	return &proj, nil
}

// List returns all projects for a tenant with summary information
func (r *ProjectRepository) List(ctx context.Context, tenantID string) ([]project.ProjectSummary, error) {
	query := `
		SELECT
			p.id,
			p.name,
			p.start_date,
			p.status,
			p.created_at,
			COUNT(DISTINCT CASE WHEN t.is_group = 0 THEN t.id END) as task_count,
			COUNT(DISTINCT CASE WHEN t.is_group = 1 THEN t.id END) as group_count
		FROM projects p
		LEFT JOIN tasks t ON t.project_id = p.id AND t.tenant_id = p.tenant_id
		WHERE p.tenant_id = ?
		GROUP BY p.id, p.name, p.start_date, p.status, p.created_at
		ORDER BY p.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var summaries []project.ProjectSummary
	for rows.Next() {
		var summary project.ProjectSummary
		var startDate string
		err := rows.Scan(
			&summary.ID,
			&summary.Name,
			&startDate,
			&summary.Status,
			&summary.CreatedAt,
			&summary.TaskCount,
			&summary.GroupCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project summary: %w", err)
		}
		summary.StartDate, err = project.ParseDate(startDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse project start date: %w", err)
		}
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return summaries, nil
}

// UpdateStatus sets the project scheduling status
func (r *ProjectRepository) UpdateStatus(ctx context.Context, tenantID, id string, status project.Status) error {
	query := `
		UPDATE projects
		SET status = ?
		WHERE id = ? AND tenant_id = ?
	`

	result, err := r.db.ExecContext(ctx, query, status, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to update project status: %w", err)
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
