package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/rkulagin/ganttcal/internal/domain/employee"
	"github.com/rkulagin/ganttcal/internal/repository"
)

// EmployeeRepository implements employee.Repository for SQLite
type EmployeeRepository struct {
	db *DB
}

// NewEmployeeRepository creates a new EmployeeRepository
func NewEmployeeRepository(db *DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func encodeDaysOff(days []int) string {
	if len(days) == 0 {
		return ""
	}
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}

func decodeDaysOff(raw string) []int {
	if raw == "" {
		return nil
	}
	var days []int
	for _, part := range strings.Split(raw, ",") {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	return days
}

// Create creates a new employee and fills in the generated ID
func (r *EmployeeRepository) Create(ctx context.Context, tenantID string, emp *employee.Employee) error {
	query := `
		INSERT INTO employees (tenant_id, name, position, days_off, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		tenantID,
		emp.Name,
		emp.Position,
		encodeDaysOff(emp.DaysOff),
		emp.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create employee: %w", err)
	}

	emp.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get employee id: %w", err)
	}
	emp.TenantID = tenantID

	return nil
}

// Get retrieves an employee by ID
func (r *EmployeeRepository) Get(ctx context.Context, tenantID string, id int64) (*employee.Employee, error) {
	query := `
		SELECT id, tenant_id, name, position, days_off, created_at
		FROM employees
		WHERE id = ? AND tenant_id = ?
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id, tenantID))
}

// GetByName retrieves an employee by name
func (r *EmployeeRepository) GetByName(ctx context.Context, tenantID, name string) (*employee.Employee, error) {
	query := `
		SELECT id, tenant_id, name, position, days_off, created_at
		FROM employees
		WHERE name = ? AND tenant_id = ?
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, name, tenantID))
}

func (r *EmployeeRepository) scanOne(row *sql.Row) (*employee.Employee, error) {
	var emp employee.Employee
	var daysOff string
	err := row.Scan(
		&emp.ID,
		&emp.TenantID,
		&emp.Name,
		&emp.Position,
		&daysOff,
		&emp.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	emp.DaysOff = decodeDaysOff(daysOff)
	return &emp, nil
}

// List returns employee summaries with assigned task counts
func (r *EmployeeRepository) List(ctx context.Context, tenantID string) ([]employee.EmployeeSummary, error) {
	query := `
		SELECT
			e.id,
			e.name,
			e.position,
			e.days_off,
			COUNT(t.id) as assigned_tasks
		FROM employees e
		LEFT JOIN tasks t ON t.employee_id = e.id AND t.tenant_id = e.tenant_id
		WHERE e.tenant_id = ?
		GROUP BY e.id, e.name, e.position, e.days_off
		ORDER BY e.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var summaries []employee.EmployeeSummary
	for rows.Next() {
		var summary employee.EmployeeSummary
		var daysOff string
		err := rows.Scan(
			&summary.ID,
			&summary.Name,
			&summary.Position,
			&daysOff,
			&summary.AssignedTasks,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee summary: %w", err)
		}
		summary.DaysOff = decodeDaysOff(daysOff)
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employee rows: %w", err)
	}

	return summaries, nil
}

// ListByPosition returns all employees holding the given position
func (r *EmployeeRepository) ListByPosition(ctx context.Context, tenantID, position string) ([]employee.Employee, error) {
	query := `
		SELECT id, tenant_id, name, position, days_off, created_at
		FROM employees
		WHERE tenant_id = ? AND position = ?
		ORDER BY id ASC
	`
	return r.list(ctx, query, tenantID, position)
}

// ListAll returns all employees for a tenant
func (r *EmployeeRepository) ListAll(ctx context.Context, tenantID string) ([]employee.Employee, error) {
	query := `
		SELECT id, tenant_id, name, position, days_off, created_at
		FROM employees
		WHERE tenant_id = ?
		ORDER BY id ASC
	`
	return r.list(ctx, query, tenantID)
}

func (r *EmployeeRepository) list(ctx context.Context, query string, args ...any) ([]employee.Employee, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		var daysOff string
		err := rows.Scan(
			&emp.ID,
			&emp.TenantID,
			&emp.Name,
			&emp.Position,
			&daysOff,
			&emp.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		emp.DaysOff = decodeDaysOff(daysOff)
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employee rows: %w", err)
	}

	return employees, nil
}
