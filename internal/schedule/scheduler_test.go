package schedule

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rkulagin/ganttcal/internal/domain/activity"
	"github.com/rkulagin/ganttcal/internal/domain/employee"
	"github.com/rkulagin/ganttcal/internal/domain/project"
	"github.com/rkulagin/ganttcal/internal/domain/run"
	"github.com/rkulagin/ganttcal/internal/domain/task"
	"github.com/rkulagin/ganttcal/internal/sqlite"
	"github.com/stretchr/testify/require"
)

const testTenant = "tenant1"

type testEnv struct {
	svc       *Service
	projects  *sqlite.ProjectRepository
	tasks     *sqlite.TaskRepository
	employees *sqlite.EmployeeRepository
	runs      *run.Service
	activity  *activity.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	env := &testEnv{
		projects:  sqlite.NewProjectRepository(db),
		tasks:     sqlite.NewTaskRepository(db),
		employees: sqlite.NewEmployeeRepository(db),
		runs:      run.NewService(sqlite.NewRunRepository(db), logger),
		activity:  activity.NewService(sqlite.NewActivityRepository(db), logger),
	}
	env.svc = NewService(env.projects, env.tasks, env.employees, env.runs, env.activity, logger)
	return env
}

func (env *testEnv) addProject(t *testing.T, startDate string) string {
	t.Helper()
	start, err := project.ParseDate(startDate)
	require.NoError(t, err)
	proj := &project.Project{
		ID:        uuid.NewString(),
		Name:      "Test Project",
		StartDate: start,
		Status:    project.StatusPlanning,
		CreatedAt: time.Now(),
	}
	require.NoError(t, env.projects.Create(context.Background(), testTenant, proj))
	return proj.ID
}

func (env *testEnv) addEmployee(t *testing.T, name, position string, daysOff ...int) int64 {
	t.Helper()
	emp := &employee.Employee{Name: name, Position: position, DaysOff: daysOff, CreatedAt: time.Now()}
	require.NoError(t, env.employees.Create(context.Background(), testTenant, emp))
	return emp.ID
}

func (env *testEnv) addTask(t *testing.T, tk *task.Task) int64 {
	t.Helper()
	tk.CreatedAt = time.Now()
	require.NoError(t, env.tasks.Create(context.Background(), testTenant, tk))
	return tk.ID
}

func TestCalculate_SingleTask(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	projectID := env.addProject(t, "2026-01-05") // Monday
	empID := env.addEmployee(t, "Alice", "developer")
	taskID := env.addTask(t, &task.Task{ProjectID: projectID, Name: "Build", Duration: 3, Position: "developer"})

	result, err := env.svc.Calculate(ctx, testTenant, projectID)
	require.NoError(t, err)
	require.Empty(t, result.Diagnostics)
	require.Equal(t, []int64{taskID}, result.CriticalPath)
	require.Equal(t, 3, result.DurationDays)

	sched := result.Tasks[taskID]
	require.Equal(t, date(2026, time.January, 5), sched.StartDate)
	require.Equal(t, date(2026, time.January, 7), sched.EndDate)
	require.NotNil(t, sched.EmployeeID)
	require.Equal(t, empID, *sched.EmployeeID)

	// Dates and assignment are persisted
	persisted, err := env.tasks.Get(ctx, testTenant, taskID)
	require.NoError(t, err)
	require.NotNil(t, persisted.StartDate)
	require.Equal(t, sched.StartDate, *persisted.StartDate)
	require.NotNil(t, persisted.EmployeeID)
	require.Equal(t, empID, *persisted.EmployeeID)

	// Project moves to scheduled, run completes
	proj, err := env.projects.Get(ctx, testTenant, projectID)
	require.NoError(t, err)
	require.Equal(t, project.StatusScheduled, proj.Status)

	runs, err := env.runs.History(ctx, testTenant, projectID, 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, run.StatusCompleted, runs[0].Status)
}

func TestCalculate_DaysOffStretchCalendarSpan(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Friday start, weekend off, 3 working days: Fri 2, Mon 5, Tue 6.
	projectID := env.addProject(t, "2026-01-02")
	env.addEmployee(t, "Alice", "", 6, 7)
	taskID := env.addTask(t, &task.Task{ProjectID: projectID, Name: "Build", Duration: 3})

	result, err := env.svc.Calculate(ctx, testTenant, projectID)
	require.NoError(t, err)

	sched := result.Tasks[taskID]
	require.Equal(t, date(2026, time.January, 2), sched.StartDate)
	require.Equal(t, date(2026, time.January, 6), sched.EndDate)
	require.Equal(t, 5, sched.CalendarDays)
	require.Equal(t, 5, result.DurationDays)
}

func TestCalculate_DependentTaskStartsStrictlyAfter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	projectID := env.addProject(t, "2026-01-05")
	env.addEmployee(t, "Alice", "")
	env.addEmployee(t, "Bob", "")

	first := env.addTask(t, &task.Task{ProjectID: projectID, Name: "First", Duration: 2})
	second := env.addTask(t, &task.Task{ProjectID: projectID, Name: "Second", Duration: 3, Predecessors: []int64{first}})

	result, err := env.svc.Calculate(ctx, testTenant, projectID)
	require.NoError(t, err)

	firstSched := result.Tasks[first]
	secondSched := result.Tasks[second]
	require.Equal(t, date(2026, time.January, 6), firstSched.EndDate)
	require.True(t, secondSched.StartDate.After(firstSched.EndDate),
		"dependent task starts strictly after its predecessor finishes")
	require.Equal(t, date(2026, time.January, 7), secondSched.StartDate)

	require.Equal(t, []int64{first, second}, result.CriticalPath)
}

func TestCalculate_SequentialGroupDuration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	projectID := env.addProject(t, "2026-01-05")
	env.addEmployee(t, "Alice", "")

	groupID := env.addTask(t, &task.Task{ProjectID: projectID, Name: "Phase", Duration: 1, IsGroup: true})
	childA := env.addTask(t, &task.Task{ProjectID: projectID, Name: "A", Duration: 1, ParentID: &groupID})
	childB := env.addTask(t, &task.Task{ProjectID: projectID, Name: "B", Duration: 2, ParentID: &groupID})

	result, err := env.svc.Calculate(ctx, testTenant, projectID)
	require.NoError(t, err)

	group := result.Tasks[groupID]
	require.Equal(t, 3, group.CalendarDays, "sequential children chain: 1 + 2")
	require.Equal(t, date(2026, time.January, 5), group.StartDate)
	require.Equal(t, date(2026, time.January, 7), group.EndDate)

	// Children chain back-to-back inside the group
	require.Equal(t, date(2026, time.January, 5), result.Tasks[childA].StartDate)
	require.Equal(t, date(2026, time.January, 6), result.Tasks[childB].StartDate)
	require.Equal(t, date(2026, time.January, 7), result.Tasks[childB].EndDate)

	// The grown group duration is persisted
	persisted, err := env.tasks.Get(ctx, testTenant, groupID)
	require.NoError(t, err)
	require.Equal(t, 3, persisted.Duration)
	require.Nil(t, persisted.EmployeeID, "groups never receive assignments")
}

func TestCalculate_ParallelGroupDuration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	projectID := env.addProject(t, "2026-01-05")
	env.addEmployee(t, "Alice", "")
	env.addEmployee(t, "Bob", "")

	groupID := env.addTask(t, &task.Task{ProjectID: projectID, Name: "Phase", Duration: 1, IsGroup: true})
	short := env.addTask(t, &task.Task{ProjectID: projectID, Name: "Short", Duration: 2, ParentID: &groupID, Parallel: true})
	long := env.addTask(t, &task.Task{ProjectID: projectID, Name: "Long", Duration: 4, ParentID: &groupID, Parallel: true})

	result, err := env.svc.Calculate(ctx, testTenant, projectID)
	require.NoError(t, err)

	group := result.Tasks[groupID]
	require.Equal(t, 4, group.CalendarDays, "parallel children overlap: max(2, 4)")

	// Both children anchor at the group start
	require.Equal(t, group.StartDate, result.Tasks[short].StartDate)
	require.Equal(t, group.StartDate, result.Tasks[long].StartDate)
	require.Equal(t, group.EndDate, result.Tasks[long].EndDate)
}

func TestCalculate_CycleAbortsWithNothingPersisted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	projectID := env.addProject(t, "2026-01-05")
	env.addEmployee(t, "Alice", "")

	first := env.addTask(t, &task.Task{ProjectID: projectID, Name: "A", Duration: 1})
	second := env.addTask(t, &task.Task{ProjectID: projectID, Name: "B", Duration: 1, Predecessors: []int64{first}})
	require.NoError(t, env.tasks.AddDependency(ctx, testTenant, task.DependencyEdge{TaskID: first, PredecessorID: second}))

	_, err := env.svc.Calculate(ctx, testTenant, projectID)
	require.ErrorIs(t, err, ErrCyclicDependency)

	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	require.ElementsMatch(t, []int64{first, second}, cycleErr.Cycle)

	// No dates were written
	persisted, err := env.tasks.Get(ctx, testTenant, first)
	require.NoError(t, err)
	require.Nil(t, persisted.StartDate)
	require.Nil(t, persisted.EmployeeID)

	// Project and run are marked failed
	proj, err := env.projects.Get(ctx, testTenant, projectID)
	require.NoError(t, err)
	require.Equal(t, project.StatusFailed, proj.Status)

	runs, err := env.runs.History(ctx, testTenant, projectID, 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, run.StatusFailed, runs[0].Status)
}

func TestCalculate_InvalidDurationSkippedWithDiagnostic(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	projectID := env.addProject(t, "2026-01-05")
	env.addEmployee(t, "Alice", "")

	good := env.addTask(t, &task.Task{ProjectID: projectID, Name: "Good", Duration: 2})

	// Bypass service validation to store a malformed duration
	bad := env.addTask(t, &task.Task{ProjectID: projectID, Name: "Bad", Duration: 1})
	_, err := env.tasks.Get(ctx, testTenant, bad)
	require.NoError(t, err)
	require.NoError(t, env.tasks.UpdateDuration(ctx, testTenant, bad, 0))

	result, err := env.svc.Calculate(ctx, testTenant, projectID)
	require.NoError(t, err)

	require.Len(t, result.Diagnostics, 1)
	require.Equal(t, DiagInvalidTask, result.Diagnostics[0].Code)
	require.Equal(t, bad, result.Diagnostics[0].TaskID)
	require.Contains(t, result.Tasks, good)
	require.NotContains(t, result.Tasks, bad, "skipped task receives no schedule")

	// The skip is visible in the activity log
	entries, err := env.activity.GetRecentActivity(ctx, testTenant, activity.ListActivityOptions{ProjectID: projectID})
	require.NoError(t, err)
	var skipped bool
	for _, entry := range entries {
		if entry.ActivityType == activity.TypeTaskSkipped {
			skipped = true
		}
	}
	require.True(t, skipped, "task_skipped activity recorded")
}

func TestCalculate_NoEligibleEmployeeLeavesTaskUnassigned(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	projectID := env.addProject(t, "2026-01-05")
	env.addEmployee(t, "Alice", "developer")
	taskID := env.addTask(t, &task.Task{ProjectID: projectID, Name: "Review", Duration: 2, Position: "qa"})

	result, err := env.svc.Calculate(ctx, testTenant, projectID)
	require.NoError(t, err)

	require.Len(t, result.Diagnostics, 1)
	require.Equal(t, DiagNoEligibleEmployee, result.Diagnostics[0].Code)

	sched := result.Tasks[taskID]
	require.Nil(t, sched.EmployeeID)
	require.Equal(t, date(2026, time.January, 5), sched.StartDate)
	require.Equal(t, date(2026, time.January, 6), sched.EndDate, "fallback keeps the nominal duration")
}

func TestCalculate_LeastLoadedEmployeeWins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	projectID := env.addProject(t, "2026-01-05")
	alice := env.addEmployee(t, "Alice", "")
	bob := env.addEmployee(t, "Bob", "")

	first := env.addTask(t, &task.Task{ProjectID: projectID, Name: "A", Duration: 2})
	second := env.addTask(t, &task.Task{ProjectID: projectID, Name: "B", Duration: 2})

	result, err := env.svc.Calculate(ctx, testTenant, projectID)
	require.NoError(t, err)

	// Independent same-length tasks split across the two employees.
	require.NotNil(t, result.Tasks[first].EmployeeID)
	require.NotNil(t, result.Tasks[second].EmployeeID)
	require.ElementsMatch(t,
		[]int64{alice, bob},
		[]int64{*result.Tasks[first].EmployeeID, *result.Tasks[second].EmployeeID})
}

func TestCalculate_PreAssignedEmployeeIsKept(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	projectID := env.addProject(t, "2026-01-05")
	env.addEmployee(t, "Alice", "")
	bob := env.addEmployee(t, "Bob", "")

	taskID := env.addTask(t, &task.Task{ProjectID: projectID, Name: "Pinned", Duration: 2, EmployeeID: &bob})

	result, err := env.svc.Calculate(ctx, testTenant, projectID)
	require.NoError(t, err)

	require.NotNil(t, result.Tasks[taskID].EmployeeID)
	require.Equal(t, bob, *result.Tasks[taskID].EmployeeID, "existing assignment is not rebalanced")
}

func TestCalculate_PreAssignedSpanCountsOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	projectID := env.addProject(t, "2026-01-05")
	alice := env.addEmployee(t, "Alice", "")
	bob := env.addEmployee(t, "Bob", "")

	// Alice already holds a placed 2-day task from an earlier run.
	start := date(2026, time.January, 5)
	end := date(2026, time.January, 6)
	pinned := env.addTask(t, &task.Task{
		ProjectID:  projectID,
		Name:       "Pinned",
		Duration:   2,
		EmployeeID: &alice,
		StartDate:  &start,
		EndDate:    &end,
	})
	first := env.addTask(t, &task.Task{ProjectID: projectID, Name: "First", Duration: 2})
	second := env.addTask(t, &task.Task{ProjectID: projectID, Name: "Second", Duration: 2})

	result, err := env.svc.Calculate(ctx, testTenant, projectID)
	require.NoError(t, err)

	require.Equal(t, alice, *result.Tasks[pinned].EmployeeID)
	require.Equal(t, bob, *result.Tasks[first].EmployeeID, "fresh work goes to the idle employee")

	// Alice's pinned span counts once, so both carry 2 days here and the
	// tie at equal workload falls to the lowest employee ID.
	require.Equal(t, alice, *result.Tasks[second].EmployeeID)
}

func TestCalculate_ConcurrentRunRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	projectID := env.addProject(t, "2026-01-05")
	env.addEmployee(t, "Alice", "")
	env.addTask(t, &task.Task{ProjectID: projectID, Name: "A", Duration: 1})

	// An open run blocks a second calculation for the same project.
	_, err := env.runs.Begin(ctx, testTenant, projectID)
	require.NoError(t, err)

	_, err = env.svc.Calculate(ctx, testTenant, projectID)
	require.ErrorIs(t, err, run.ErrRunInProgress)
}

func TestCalculate_ProjectNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Calculate(context.Background(), testTenant, "missing")
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}
