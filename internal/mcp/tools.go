package mcp

import (
	"context"
	"sort"
	"time"

	"github.com/rkulagin/ganttcal/internal/domain/activity"
	"github.com/rkulagin/ganttcal/internal/domain/employee"
	"github.com/rkulagin/ganttcal/internal/domain/project"
	"github.com/rkulagin/ganttcal/internal/domain/task"
	"github.com/rkulagin/ganttcal/internal/schedule"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerTools adds all tool handlers to the server.
func registerTools(server *sdkmcp.Server, svc Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a new project with a calendar start date",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params CreateProjectParams) (*sdkmcp.CallToolResult, ProjectResponse, error) {
		proj, err := svc.Projects.Create(ctx, getTenantID(ctx), project.CreateRequest{
			ID:        params.ID,
			Name:      params.Name,
			StartDate: params.StartDate,
		})
		if err != nil {
			return nil, ProjectResponse{}, toolError(err)
		}
		return nil, projectResponse(proj), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List all projects for the current tenant",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params ListProjectsParams) (*sdkmcp.CallToolResult, ListProjectsResponse, error) {
		projects, err := svc.Projects.List(ctx, getTenantID(ctx))
		if err != nil {
			return nil, ListProjectsResponse{}, toolError(err)
		}
		resp := ListProjectsResponse{Projects: make([]ProjectSummaryResponse, 0, len(projects))}
		for _, proj := range projects {
			resp.Projects = append(resp.Projects, ProjectSummaryResponse{
				ID:         proj.ID,
				Name:       proj.Name,
				StartDate:  project.FormatDate(proj.StartDate),
				Status:     string(proj.Status),
				TaskCount:  proj.TaskCount,
				GroupCount: proj.GroupCount,
			})
		}
		return nil, resp, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get details for a specific project",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params GetProjectParams) (*sdkmcp.CallToolResult, ProjectResponse, error) {
		proj, err := svc.Projects.Get(ctx, getTenantID(ctx), params.ID)
		if err != nil {
			return nil, ProjectResponse{}, toolError(err)
		}
		return nil, projectResponse(proj), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_employee",
		Description: "Register an employee with a position and recurring weekly days off",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params AddEmployeeParams) (*sdkmcp.CallToolResult, EmployeeResponse, error) {
		emp, err := svc.Employees.Create(ctx, getTenantID(ctx), employee.CreateRequest{
			Name:     params.Name,
			Position: params.Position,
			DaysOff:  params.DaysOff,
		})
		if err != nil {
			return nil, EmployeeResponse{}, toolError(err)
		}
		return nil, EmployeeResponse{
			ID:       emp.ID,
			Name:     emp.Name,
			Position: emp.Position,
			DaysOff:  emp.DaysOff,
		}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_employees",
		Description: "List all employees with their current assignment counts",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params ListEmployeesParams) (*sdkmcp.CallToolResult, ListEmployeesResponse, error) {
		employees, err := svc.Employees.List(ctx, getTenantID(ctx))
		if err != nil {
			return nil, ListEmployeesResponse{}, toolError(err)
		}
		resp := ListEmployeesResponse{Employees: make([]EmployeeSummaryResponse, 0, len(employees))}
		for _, emp := range employees {
			resp.Employees = append(resp.Employees, EmployeeSummaryResponse{
				ID:            emp.ID,
				Name:          emp.Name,
				Position:      emp.Position,
				DaysOff:       emp.DaysOff,
				AssignedTasks: emp.AssignedTasks,
			})
		}
		return nil, resp, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_task",
		Description: "Create a task or a group of sub-tasks inside a project",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params CreateTaskParams) (*sdkmcp.CallToolResult, TaskResponse, error) {
		t, err := svc.Tasks.Create(ctx, getTenantID(ctx), task.CreateRequest{
			ProjectID:    params.ProjectID,
			Name:         params.Name,
			Duration:     params.Duration,
			IsGroup:      params.IsGroup,
			Parallel:     params.Parallel,
			Predecessors: params.Predecessors,
			ParentID:     params.ParentID,
			Position:     params.Position,
		})
		if err != nil {
			return nil, TaskResponse{}, toolError(err)
		}
		return nil, taskResponse(t), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_dependency",
		Description: "Record that a task may not start before another task finishes",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params AddDependencyParams) (*sdkmcp.CallToolResult, AddDependencyResponse, error) {
		edge := task.DependencyEdge{TaskID: params.TaskID, PredecessorID: params.PredecessorID}
		if err := svc.Tasks.AddDependency(ctx, getTenantID(ctx), edge); err != nil {
			return nil, AddDependencyResponse{}, toolError(err)
		}
		return nil, AddDependencyResponse{TaskID: edge.TaskID, PredecessorID: edge.PredecessorID}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "calculate_schedule",
		Description: "Run the scheduler: propagate dependencies, assign employees around their days off, and persist calendar dates",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params CalculateScheduleParams) (*sdkmcp.CallToolResult, ScheduleResponse, error) {
		tenantID := getTenantID(ctx)
		result, err := svc.Schedule.Calculate(ctx, tenantID, params.ProjectID)
		if err != nil {
			return nil, ScheduleResponse{}, toolError(err)
		}

		names := taskNames(ctx, svc, tenantID, params.ProjectID)
		critical := make(map[int64]bool, len(result.CriticalPath))
		for _, id := range result.CriticalPath {
			critical[id] = true
		}

		resp := ScheduleResponse{
			ProjectID:     result.ProjectID,
			RunID:         result.RunID,
			CriticalPath:  result.CriticalPath,
			DurationDays:  result.DurationDays,
			DurationUnits: result.DurationUnits,
		}
		for _, d := range result.Diagnostics {
			resp.Diagnostics = append(resp.Diagnostics, DiagnosticResponse{
				Code:    d.Code,
				TaskID:  d.TaskID,
				Message: d.Message,
			})
		}

		ids := make([]int64, 0, len(result.Tasks))
		for id := range result.Tasks {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for _, id := range ids {
			sched := result.Tasks[id]
			resp.Tasks = append(resp.Tasks, ScheduledTaskResponse{
				TaskID:       id,
				Name:         names[id],
				StartDate:    project.FormatDate(sched.StartDate),
				EndDate:      project.FormatDate(sched.EndDate),
				EmployeeID:   sched.EmployeeID,
				CalendarDays: sched.CalendarDays,
				Critical:     critical[id],
			})
		}
		return nil, resp, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_schedule",
		Description: "Read the persisted schedule for a project as task date ranges and assignments",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params GetScheduleParams) (*sdkmcp.CallToolResult, ScheduleResponse, error) {
		tenantID := getTenantID(ctx)
		if _, err := svc.Projects.Get(ctx, tenantID, params.ProjectID); err != nil {
			return nil, ScheduleResponse{}, toolError(err)
		}
		tasks, err := svc.Tasks.ListByProject(ctx, tenantID, params.ProjectID)
		if err != nil {
			return nil, ScheduleResponse{}, toolError(err)
		}

		resp := ScheduleResponse{ProjectID: params.ProjectID}
		var minStart, maxEnd *time.Time
		for i := range tasks {
			t := &tasks[i]
			if t.StartDate == nil || t.EndDate == nil {
				continue
			}
			resp.Tasks = append(resp.Tasks, ScheduledTaskResponse{
				TaskID:       t.ID,
				Name:         t.Name,
				StartDate:    project.FormatDate(*t.StartDate),
				EndDate:      project.FormatDate(*t.EndDate),
				EmployeeID:   t.EmployeeID,
				CalendarDays: schedule.SpanDays(*t.StartDate, *t.EndDate),
			})
			if minStart == nil || t.StartDate.Before(*minStart) {
				minStart = t.StartDate
			}
			if maxEnd == nil || t.EndDate.After(*maxEnd) {
				maxEnd = t.EndDate
			}
		}
		if minStart != nil && maxEnd != nil {
			resp.DurationDays = schedule.SpanDays(*minStart, *maxEnd)
		}
		return nil, resp, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_run_history",
		Description: "List recent scheduling runs for a project, newest first",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params GetRunHistoryParams) (*sdkmcp.CallToolResult, RunHistoryResponse, error) {
		runs, err := svc.Runs.History(ctx, getTenantID(ctx), params.ProjectID, params.Limit)
		if err != nil {
			return nil, RunHistoryResponse{}, toolError(err)
		}
		resp := RunHistoryResponse{Runs: make([]RunResponse, 0, len(runs))}
		for _, rn := range runs {
			rr := RunResponse{
				ID:        rn.ID,
				ProjectID: rn.ProjectID,
				Status:    string(rn.Status),
				Summary:   rn.Summary,
				StartedAt: rn.StartedAt.Format(time.RFC3339),
			}
			if rn.FinishedAt != nil {
				rr.FinishedAt = rn.FinishedAt.Format(time.RFC3339)
			}
			resp.Runs = append(resp.Runs, rr)
		}
		return nil, resp, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_recent_activity",
		Description: "Get recent scheduling events for a project or specific task",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params GetRecentActivityParams) (*sdkmcp.CallToolResult, RecentActivityResponse, error) {
		opts := activity.ListActivityOptions{
			ProjectID: params.ProjectID,
			TaskID:    params.TaskID,
			Limit:     params.Limit,
		}
		if params.Type != "" {
			activityType := activity.ActivityType(params.Type)
			opts.ActivityType = &activityType
		}
		entries, err := svc.Activity.GetRecentActivity(ctx, getTenantID(ctx), opts)
		if err != nil {
			return nil, RecentActivityResponse{}, toolError(err)
		}
		resp := RecentActivityResponse{Activity: make([]ActivityEntryResponse, 0, len(entries))}
		for _, entry := range entries {
			er := ActivityEntryResponse{
				ID:        entry.ID,
				ProjectID: entry.ProjectID,
				TaskID:    entry.TaskID,
				Type:      string(entry.ActivityType),
				Summary:   entry.Summary,
				CreatedAt: entry.CreatedAt.Format(time.RFC3339),
			}
			if entry.RunID != nil {
				er.RunID = *entry.RunID
			}
			resp.Activity = append(resp.Activity, er)
		}
		return nil, resp, nil
	})
}

func projectResponse(proj *project.Project) ProjectResponse {
	return ProjectResponse{
		ID:        proj.ID,
		Name:      proj.Name,
		StartDate: project.FormatDate(proj.StartDate),
		Status:    string(proj.Status),
	}
}

func taskResponse(t *task.Task) TaskResponse {
	resp := TaskResponse{
		ID:           t.ID,
		ProjectID:    t.ProjectID,
		Name:         t.Name,
		Duration:     t.Duration,
		IsGroup:      t.IsGroup,
		Parallel:     t.Parallel,
		Predecessors: t.Predecessors,
		ParentID:     t.ParentID,
		EmployeeID:   t.EmployeeID,
		Position:     t.Position,
	}
	if t.StartDate != nil {
		resp.StartDate = project.FormatDate(*t.StartDate)
	}
	if t.EndDate != nil {
		resp.EndDate = project.FormatDate(*t.EndDate)
	}
	return resp
}

// taskNames resolves task display names for schedule responses; a lookup
// failure just leaves names blank.
func taskNames(ctx context.Context, svc Services, tenantID, projectID string) map[int64]string {
	names := make(map[int64]string)
	tasks, err := svc.Tasks.ListByProject(ctx, tenantID, projectID)
	if err != nil {
		return names
	}
	for i := range tasks {
		names[tasks[i].ID] = tasks[i].Name
	}
	return names
}
