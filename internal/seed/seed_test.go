package seed

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/rkulagin/ganttcal/internal/domain/employee"
	"github.com/rkulagin/ganttcal/internal/domain/project"
	"github.com/rkulagin/ganttcal/internal/domain/task"
	"github.com/rkulagin/ganttcal/internal/sqlite"
	"github.com/stretchr/testify/require"
)

const seedDoc = `
employees:
  - name: Alice
    position: developer
    days_off: [6, 7]
  - name: Bob
    position: designer

projects:
  - name: Launch
    start_date: "2026-01-05"
    tasks:
      - ref: design
        name: Design
        duration: 3
        position: designer
      - ref: build
        name: Build
        duration: 5
        position: developer
        after: [design]
      - ref: rollout
        name: Rollout
        duration: 2
        group: true
      - name: Deploy
        duration: 1
        parent: rollout
      - name: Announce
        duration: 1
        parent: rollout
        parallel: true
`

type testLoader struct {
	loader    *Loader
	projects  *project.Service
	employees *employee.Service
	tasks     *task.Service
	taskRepo  *sqlite.TaskRepository
}

func newTestLoader(t *testing.T) *testLoader {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	taskRepo := sqlite.NewTaskRepository(db)
	projects := project.NewService(sqlite.NewProjectRepository(db), logger)
	employees := employee.NewService(sqlite.NewEmployeeRepository(db), logger)
	tasks := task.NewService(taskRepo, logger)

	return &testLoader{
		loader:    NewLoader(projects, employees, tasks, logger),
		projects:  projects,
		employees: employees,
		tasks:     tasks,
		taskRepo:  taskRepo,
	}
}

func TestParse(t *testing.T) {
	f, err := Parse([]byte(seedDoc))
	require.NoError(t, err)
	require.Len(t, f.Employees, 2)
	require.Len(t, f.Projects, 1)
	require.Len(t, f.Projects[0].Tasks, 5)
	require.Equal(t, []string{"design"}, f.Projects[0].Tasks[1].After)
}

func TestParse_ChildBeforeParent(t *testing.T) {
	doc := `
projects:
  - name: Broken
    start_date: "2026-01-05"
    tasks:
      - name: Child
        duration: 1
        parent: phase
      - ref: phase
        name: Phase
        duration: 1
        group: true
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)
	require.Contains(t, err.Error(), "declared before its parent")
}

func TestParse_DuplicateRef(t *testing.T) {
	doc := `
projects:
  - name: Broken
    start_date: "2026-01-05"
    tasks:
      - ref: a
        name: One
        duration: 1
      - ref: a
        name: Two
        duration: 1
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate task ref")
}

func TestApply(t *testing.T) {
	tl := newTestLoader(t)
	ctx := context.Background()

	f, err := Parse([]byte(seedDoc))
	require.NoError(t, err)
	require.NoError(t, tl.loader.Apply(ctx, "tenant1", f))

	employees, err := tl.employees.List(ctx, "tenant1")
	require.NoError(t, err)
	require.Len(t, employees, 2)

	projects, err := tl.projects.List(ctx, "tenant1")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, "Launch", projects[0].Name)

	tasks, err := tl.tasks.ListByProject(ctx, "tenant1", projects[0].ID)
	require.NoError(t, err)
	require.Len(t, tasks, 5)

	// The after clause became a dependency edge
	edges, err := tl.taskRepo.ListDependencies(ctx, "tenant1", projects[0].ID)
	require.NoError(t, err)
	require.Len(t, edges, 1)

	// Children point at the seeded group
	var group *task.Task
	for i := range tasks {
		if tasks[i].IsGroup {
			group = &tasks[i]
		}
	}
	require.NotNil(t, group)
	var childCount int
	for i := range tasks {
		if tasks[i].ParentID != nil && *tasks[i].ParentID == group.ID {
			childCount++
		}
	}
	require.Equal(t, 2, childCount)
}

func TestApply_Idempotent(t *testing.T) {
	tl := newTestLoader(t)
	ctx := context.Background()

	f, err := Parse([]byte(seedDoc))
	require.NoError(t, err)
	require.NoError(t, tl.loader.Apply(ctx, "tenant1", f))
	require.NoError(t, tl.loader.Apply(ctx, "tenant1", f))

	employees, err := tl.employees.List(ctx, "tenant1")
	require.NoError(t, err)
	require.Len(t, employees, 2, "second apply creates nothing")

	projects, err := tl.projects.List(ctx, "tenant1")
	require.NoError(t, err)
	require.Len(t, projects, 1)
}
