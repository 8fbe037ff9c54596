package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rkulagin/ganttcal/internal/domain/employee"
	"github.com/rkulagin/ganttcal/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestEmployeeRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEmployeeRepository(db)
	ctx := context.Background()

	emp := &employee.Employee{
		Name:      "Alice",
		Position:  "developer",
		DaysOff:   []int{6, 7},
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, "tenant1", emp))
	require.NotZero(t, emp.ID, "generated ID is filled in")

	got, err := repo.Get(ctx, "tenant1", emp.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice", got.Name)
	require.Equal(t, "developer", got.Position)
	require.Equal(t, []int{6, 7}, got.DaysOff)
}

func TestEmployeeRepository_DuplicateNameConflict(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEmployeeRepository(db)
	ctx := context.Background()

	first := &employee.Employee{Name: "Bob", CreatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, "tenant1", first))

	dup := &employee.Employee{Name: "Bob", CreatedAt: time.Now()}
	err := repo.Create(ctx, "tenant1", dup)
	require.ErrorIs(t, err, repository.ErrConflict)
}

func TestEmployeeRepository_GetByName(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEmployeeRepository(db)
	ctx := context.Background()

	emp := &employee.Employee{Name: "Carol", Position: "designer", CreatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, "tenant1", emp))

	got, err := repo.GetByName(ctx, "tenant1", "Carol")
	require.NoError(t, err)
	require.Equal(t, emp.ID, got.ID)

	_, err = repo.GetByName(ctx, "tenant1", "Nobody")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEmployeeRepository_ListByPosition(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEmployeeRepository(db)
	ctx := context.Background()

	for _, spec := range []struct {
		name     string
		position string
	}{
		{"Dev One", "developer"},
		{"Designer", "designer"},
		{"Dev Two", "developer"},
	} {
		emp := &employee.Employee{Name: spec.name, Position: spec.position, CreatedAt: time.Now()}
		require.NoError(t, repo.Create(ctx, "tenant1", emp))
	}

	devs, err := repo.ListByPosition(ctx, "tenant1", "developer")
	require.NoError(t, err)
	require.Len(t, devs, 2)
	require.Equal(t, "Dev One", devs[0].Name)
	require.Equal(t, "Dev Two", devs[1].Name)

	all, err := repo.ListAll(ctx, "tenant1")
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestEmployeeRepository_ListCountsAssignments(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEmployeeRepository(db)
	ctx := context.Background()

	emp := &employee.Employee{Name: "Dana", Position: "developer", CreatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, "tenant1", emp))

	_, err := db.ExecContext(ctx,
		`INSERT INTO projects (id, tenant_id, name, start_date, status) VALUES (?, ?, ?, ?, ?)`,
		"p1", "tenant1", "Project", "2026-01-05", "planning")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx,
		`INSERT INTO tasks (tenant_id, project_id, name, duration, employee_id) VALUES (?, ?, ?, ?, ?)`,
		"tenant1", "p1", "Task", 2, emp.ID)
	require.NoError(t, err)

	summaries, err := repo.List(ctx, "tenant1")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, 1, summaries[0].AssignedTasks)
}
