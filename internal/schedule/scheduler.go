package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/rkulagin/ganttcal/internal/domain/activity"
	"github.com/rkulagin/ganttcal/internal/domain/employee"
	"github.com/rkulagin/ganttcal/internal/domain/project"
	"github.com/rkulagin/ganttcal/internal/domain/run"
	"github.com/rkulagin/ganttcal/internal/domain/task"
	"github.com/rkulagin/ganttcal/internal/repository"
)

// RunRegistry serializes scheduling runs per project.
type RunRegistry interface {
	Begin(ctx context.Context, tenantID, projectID string) (*run.Run, error)
	Finish(ctx context.Context, tenantID, id string, status run.Status, summary string) error
}

// ActivityLogger records scheduling events.
type ActivityLogger interface {
	LogActivity(ctx context.Context, tenantID string, entry *activity.ActivityEntry) error
}

// Service runs the scheduling pipeline for a project: graph build, time
// propagation, employee assignment, calendar projection, persistence.
type Service struct {
	projects  project.Repository
	tasks     task.Repository
	employees employee.Repository
	runs      RunRegistry
	activity  ActivityLogger
	logger    *slog.Logger
}

// NewService creates a new scheduling service.
func NewService(
	projects project.Repository,
	tasks task.Repository,
	employees employee.Repository,
	runs RunRegistry,
	activityLog ActivityLogger,
	logger *slog.Logger,
) *Service {
	return &Service{
		projects:  projects,
		tasks:     tasks,
		employees: employees,
		runs:      runs,
		activity:  activityLog,
		logger:    logger,
	}
}

// Calculate executes one scheduling run for the project. A cyclic
// dependency aborts the run with nothing persisted; per-task problems
// degrade to diagnostics on a best-effort result.
func (s *Service) Calculate(ctx context.Context, tenantID, projectID string) (*Result, error) {
	proj, err := s.projects.Get(ctx, tenantID, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}

	r, err := s.runs.Begin(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	s.log(ctx, tenantID, &activity.ActivityEntry{
		ProjectID:    projectID,
		RunID:        &r.ID,
		ActivityType: activity.TypeRunStarted,
		Summary:      fmt.Sprintf("scheduling run %s started", r.ID),
	})

	result, err := s.calculate(ctx, tenantID, proj, r)
	if err != nil {
		if finishErr := s.runs.Finish(ctx, tenantID, r.ID, run.StatusFailed, err.Error()); finishErr != nil {
			s.logger.Error("failed to close run", "run_id", r.ID, "error", finishErr)
		}
		if statusErr := s.projects.UpdateStatus(ctx, tenantID, projectID, project.StatusFailed); statusErr != nil {
			s.logger.Error("failed to mark project failed", "project_id", projectID, "error", statusErr)
		}
		s.log(ctx, tenantID, &activity.ActivityEntry{
			ProjectID:    projectID,
			RunID:        &r.ID,
			ActivityType: activity.TypeRunFailed,
			Summary:      err.Error(),
		})
		return nil, err
	}

	summary := fmt.Sprintf("%d tasks scheduled over %d calendar days, %d diagnostics",
		len(result.Tasks), result.DurationDays, len(result.Diagnostics))
	if err := s.runs.Finish(ctx, tenantID, r.ID, run.StatusCompleted, summary); err != nil {
		return nil, fmt.Errorf("finishing run: %w", err)
	}
	if err := s.projects.UpdateStatus(ctx, tenantID, projectID, project.StatusScheduled); err != nil {
		return nil, fmt.Errorf("updating project status: %w", err)
	}
	s.log(ctx, tenantID, &activity.ActivityEntry{
		ProjectID:    projectID,
		RunID:        &r.ID,
		ActivityType: activity.TypeRunCompleted,
		Summary:      summary,
	})

	return result, nil
}

func (s *Service) calculate(ctx context.Context, tenantID string, proj *project.Project, r *run.Run) (*Result, error) {
	allTasks, err := s.tasks.ListByProject(ctx, tenantID, proj.ID)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	edges, err := s.tasks.ListDependencies(ctx, tenantID, proj.ID)
	if err != nil {
		return nil, fmt.Errorf("loading dependencies: %w", err)
	}
	staff, err := s.employees.ListAll(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("loading employees: %w", err)
	}

	result := &Result{
		RunID:     r.ID,
		ProjectID: proj.ID,
		Tasks:     make(map[int64]*TaskSchedule),
	}

	// Tasks with malformed durations are skipped with a diagnostic; the
	// rest of the schedule proceeds without them.
	var tasks []task.Task
	for i := range allTasks {
		if allTasks[i].Duration <= 0 {
			d := Diagnostic{
				Code:    DiagInvalidTask,
				TaskID:  allTasks[i].ID,
				Message: fmt.Sprintf("task %d %q has non-positive duration %d; skipped", allTasks[i].ID, allTasks[i].Name, allTasks[i].Duration),
			}
			result.Diagnostics = append(result.Diagnostics, d)
			s.log(ctx, tenantID, &activity.ActivityEntry{
				ProjectID:    proj.ID,
				RunID:        &r.ID,
				TaskID:       &allTasks[i].ID,
				ActivityType: activity.TypeTaskSkipped,
				Summary:      d.Message,
			})
			continue
		}
		tasks = append(tasks, allTasks[i])
	}

	graph, graphDiags := BuildGraph(tasks, edges)
	result.Diagnostics = append(result.Diagnostics, graphDiags...)

	if cycle := graph.DetectCycle(); cycle != nil {
		return nil, &CycleError{Cycle: cycle}
	}

	byID := make(map[int64]*task.Task, len(tasks))
	durations := make(map[int64]float64, len(tasks))
	for i := range tasks {
		byID[tasks[i].ID] = &tasks[i]
		durations[tasks[i].ID] = float64(tasks[i].Duration)
	}

	times := Propagate(graph, durations)
	result.Times = times
	result.DurationUnits = times.DurationUnits

	// Initial projection from abstract units.
	for _, id := range graph.Nodes {
		start, end := ProjectDates(proj.StartDate, times.EarlyFinish[id], durations[id])
		result.Tasks[id] = &TaskSchedule{
			TaskID:       id,
			StartDate:    start,
			EndDate:      end,
			CalendarDays: SpanDays(start, end),
		}
	}

	s.assign(ctx, tenantID, proj, r, graph, byID, staff, result)
	s.resolveGroups(ctx, tenantID, byID, result)

	result.CriticalPath = CriticalPath(graph, times)
	if len(result.CriticalPath) == 0 && len(graph.Nodes) > 0 {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Code:    DiagNoCriticalPath,
			Message: fmt.Sprintf("no zero-slack chain found; longest tasks: %v", longestTasks(byID, 3)),
		})
	}

	result.DurationDays = spanOfSchedule(result.Tasks)

	if err := s.persist(ctx, tenantID, byID, result); err != nil {
		return nil, err
	}

	return result, nil
}

// assign places every schedulable (non-group) task with an employee,
// visiting tasks by earliest start so predecessors are placed first.
func (s *Service) assign(
	ctx context.Context,
	tenantID string,
	proj *project.Project,
	r *run.Run,
	graph *Graph,
	byID map[int64]*task.Task,
	staff []employee.Employee,
	result *Result,
) {
	sort.Slice(staff, func(i, j int) bool { return staff[i].ID < staff[j].ID })
	staffByID := make(map[int64]*employee.Employee, len(staff))
	for i := range staff {
		staffByID[staff[i].ID] = &staff[i]
	}

	assigner := NewAssigner()
	for _, t := range byID {
		// Persisted assignments seed the workload accumulator.
		if t.EmployeeID != nil && t.StartDate != nil && t.EndDate != nil {
			assigner.Seed(*t.EmployeeID, SpanDays(*t.StartDate, *t.EndDate))
		}
	}

	order := make([]int64, 0, len(graph.Nodes))
	order = append(order, graph.Nodes...)
	sort.Slice(order, func(i, j int) bool {
		si := result.Times.EarlyFinish[order[i]] - float64(byID[order[i]].Duration)
		sj := result.Times.EarlyFinish[order[j]] - float64(byID[order[j]].Duration)
		if si != sj {
			return si < sj
		}
		return order[i] < order[j]
	})

	for _, id := range order {
		t := byID[id]
		if t.IsGroup {
			continue
		}
		sched := result.Tasks[id]

		// A task may not start before the projected date, nor before the
		// day after any predecessor's placed end.
		earliest := sched.StartDate
		for _, pred := range graph.Preds[id] {
			if predSched, ok := result.Tasks[pred]; ok {
				if dayAfter := predSched.EndDate.AddDate(0, 0, 1); dayAfter.After(earliest) {
					earliest = dayAfter
				}
			}
		}

		candidates := Eligible(t, staff)
		if t.EmployeeID != nil {
			// This run re-places the task, so its seeded span comes back
			// off the accumulator before the new span is added.
			if t.StartDate != nil && t.EndDate != nil {
				assigner.Release(*t.EmployeeID, SpanDays(*t.StartDate, *t.EndDate))
			}
			if emp, ok := staffByID[*t.EmployeeID]; ok {
				candidates = []employee.Employee{*emp}
			} else {
				candidates = nil
				d := Diagnostic{
					Code:    DiagMissingEmployee,
					TaskID:  id,
					Message: fmt.Sprintf("task %d references unknown employee %d", id, *t.EmployeeID),
				}
				result.Diagnostics = append(result.Diagnostics, d)
			}
		}

		placement, ok := assigner.Place(t, earliest, candidates)
		if !ok {
			start, end := FallbackDates(earliest, t.Duration)
			sched.StartDate = start
			sched.EndDate = end
			sched.CalendarDays = SpanDays(start, end)
			sched.EmployeeID = nil
			d := Diagnostic{
				Code:    DiagNoEligibleEmployee,
				TaskID:  id,
				Message: fmt.Sprintf("no eligible employee for task %d %q (position %q); left unassigned", id, t.Name, t.Position),
			}
			result.Diagnostics = append(result.Diagnostics, d)
			s.log(ctx, tenantID, &activity.ActivityEntry{
				ProjectID:    proj.ID,
				RunID:        &r.ID,
				TaskID:       &t.ID,
				ActivityType: activity.TypeTaskUnassigned,
				Summary:      d.Message,
			})
			continue
		}

		empID := placement.EmployeeID
		sched.EmployeeID = &empID
		sched.StartDate = placement.Start
		sched.EndDate = placement.End
		sched.CalendarDays = placement.CalendarDays
	}
}

// resolveGroups re-derives group durations from their children's expanded
// spans and re-anchors child date ranges inside each group, deepest groups
// first so nested composites settle bottom-up.
func (s *Service) resolveGroups(ctx context.Context, tenantID string, byID map[int64]*task.Task, result *Result) {
	children := make(map[int64][]task.Task)
	for _, t := range byID {
		if t.ParentID != nil {
			children[*t.ParentID] = append(children[*t.ParentID], *t)
		}
	}

	depth := func(t *task.Task) int {
		d := 0
		for cur := t; cur.ParentID != nil; {
			parent, ok := byID[*cur.ParentID]
			if !ok {
				break
			}
			d++
			cur = parent
		}
		return d
	}

	var groups []*task.Task
	for _, t := range byID {
		if t.IsGroup {
			groups = append(groups, t)
		}
	}
	sort.Slice(groups, func(i, j int) bool {
		di, dj := depth(groups[i]), depth(groups[j])
		if di != dj {
			return di > dj
		}
		return groups[i].ID < groups[j].ID
	})

	for _, g := range groups {
		kids := children[g.ID]
		if len(kids) == 0 {
			continue
		}

		spans := make(map[int64]int, len(kids))
		for i := range kids {
			if sched, ok := result.Tasks[kids[i].ID]; ok {
				spans[kids[i].ID] = sched.CalendarDays
			}
		}

		derived := DeriveGroupDuration(kids, spans)
		if derived > g.Duration {
			g.Duration = derived
		}

		sched := result.Tasks[g.ID]
		if sched == nil {
			continue
		}
		if span := SpanDays(sched.StartDate, sched.EndDate); g.Duration > span {
			sched.EndDate = sched.StartDate.AddDate(0, 0, g.Duration-1)
		}
		sched.CalendarDays = SpanDays(sched.StartDate, sched.EndDate)

		FitChildrenToGroup(sched.StartDate, sched.EndDate, kids, result.Tasks)
	}
}

// persist writes computed dates, assignments and grown group durations.
func (s *Service) persist(ctx context.Context, tenantID string, byID map[int64]*task.Task, result *Result) error {
	ids := make([]int64, 0, len(result.Tasks))
	for id := range result.Tasks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		sched := result.Tasks[id]
		if err := s.tasks.UpdateDates(ctx, tenantID, id, sched.StartDate, sched.EndDate); err != nil {
			return fmt.Errorf("persisting dates for task %d: %w", id, err)
		}
		t := byID[id]
		if !t.IsGroup {
			if err := s.tasks.UpdateAssignment(ctx, tenantID, id, sched.EmployeeID); err != nil {
				return fmt.Errorf("persisting assignment for task %d: %w", id, err)
			}
		}
		if t.IsGroup {
			if err := s.tasks.UpdateDuration(ctx, tenantID, id, t.Duration); err != nil {
				return fmt.Errorf("persisting duration for task %d: %w", id, err)
			}
		}
	}
	return nil
}

func (s *Service) log(ctx context.Context, tenantID string, entry *activity.ActivityEntry) {
	if s.activity == nil {
		return
	}
	if err := s.activity.LogActivity(ctx, tenantID, entry); err != nil {
		s.logger.Warn("failed to log activity", "type", entry.ActivityType, "error", err)
	}
}

// longestTasks returns up to n task IDs ordered by descending duration,
// used as the diagnostic fallback when no critical path exists.
func longestTasks(byID map[int64]*task.Task, n int) []int64 {
	ids := make([]int64, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if byID[ids[i]].Duration != byID[ids[j]].Duration {
			return byID[ids[i]].Duration > byID[ids[j]].Duration
		}
		return ids[i] < ids[j]
	})
	if len(ids) > n {
		ids = ids[:n]
	}
	return ids
}

func spanOfSchedule(schedules map[int64]*TaskSchedule) int {
	var minStart, maxEnd time.Time
	first := true
	for _, sched := range schedules {
		if first {
			minStart, maxEnd = sched.StartDate, sched.EndDate
			first = false
			continue
		}
		if sched.StartDate.Before(minStart) {
			minStart = sched.StartDate
		}
		if sched.EndDate.After(maxEnd) {
			maxEnd = sched.EndDate
		}
	}
	if first {
		return 0
	}
	return SpanDays(minStart, maxEnd)
}
