package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rkulagin/ganttcal/internal/domain/run"
	"github.com/rkulagin/ganttcal/internal/repository"
)

// RunRepository implements run.Repository for SQLite
type RunRepository struct {
	db *DB
}

// NewRunRepository creates a new RunRepository
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create creates a new scheduling run
func (r *RunRepository) Create(ctx context.Context, tenantID string, rn *run.Run) error {
	query := `
		INSERT INTO runs (id, tenant_id, project_id, status, summary, started_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		rn.ID,
		tenantID,
		rn.ProjectID,
		rn.Status,
		rn.Summary,
		rn.StartedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create run: %w", err)
	}

	return nil
}

// Get retrieves a run by ID
func (r *RunRepository) Get(ctx context.Context, tenantID, id string) (*run.Run, error) {
	query := `
		SELECT id, tenant_id, project_id, status, summary, started_at, finished_at
		FROM runs
		WHERE id = ? AND tenant_id = ?
	`
	return scanRun(r.db.QueryRowContext(ctx, query, id, tenantID))
}

// GetActive returns the running run for a project, if any
func (r *RunRepository) GetActive(ctx context.Context, tenantID, projectID string) (*run.Run, error) {
	query := `
		SELECT id, tenant_id, project_id, status, summary, started_at, finished_at
		FROM runs
		WHERE tenant_id = ? AND project_id = ? AND status = 'running'
		ORDER BY started_at DESC
		LIMIT 1
	`
	return scanRun(r.db.QueryRowContext(ctx, query, tenantID, projectID))
}

func scanRun(row *sql.Row) (*run.Run, error) {
	var rn run.Run
	var finishedAt sql.NullTime
	err := row.Scan(
		&rn.ID,
		&rn.TenantID,
		&rn.ProjectID,
		&rn.Status,
		&rn.Summary,
		&rn.StartedAt,
		&finishedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	if finishedAt.Valid {
		rn.FinishedAt = &finishedAt.Time
	}
	return &rn, nil
}

// Finish marks a run terminal with its outcome summary
func (r *RunRepository) Finish(ctx context.Context, tenantID, id string, status run.Status, summary string) error {
	query := `
		UPDATE runs
		SET status = ?, summary = ?, finished_at = ?
		WHERE id = ? AND tenant_id = ?
	`

	result, err := r.db.ExecContext(ctx, query, status, summary, time.Now(), id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
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

// ListByProject returns the most recent runs for a project
func (r *RunRepository) ListByProject(ctx context.Context, tenantID, projectID string, limit int) ([]run.Run, error) {
	query := `
		SELECT id, tenant_id, project_id, status, summary, started_at, finished_at
		FROM runs
		WHERE tenant_id = ? AND project_id = ?
		ORDER BY started_at DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID, projectID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []run.Run
	for rows.Next() {
		var rn run.Run
		var finishedAt sql.NullTime
		err := rows.Scan(
			&rn.ID,
			&rn.TenantID,
			&rn.ProjectID,
			&rn.Status,
			&rn.Summary,
			&rn.StartedAt,
			&finishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if finishedAt.Valid {
			rn.FinishedAt = &finishedAt.Time
		}
		runs = append(runs, rn)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run rows: %w", err)
	}

	return runs, nil
}
