package mcp

// CreateProjectParams are inputs for the create_project tool.
type CreateProjectParams struct {
	ID        string `json:"id,omitempty" jsonschema:"Unique project identifier (optional, generated if not provided)"`
	Name      string `json:"name" jsonschema:"Project display name"`
	StartDate string `json:"start_date" jsonschema:"Project calendar start date as YYYY-MM-DD"`
}

// ListProjectsParams are inputs for the list_projects tool.
type ListProjectsParams struct{}

// GetProjectParams are inputs for the get_project tool.
type GetProjectParams struct {
	ID string `json:"id" jsonschema:"Project ID"`
}

// AddEmployeeParams are inputs for the add_employee tool.
type AddEmployeeParams struct {
	Name     string `json:"name" jsonschema:"Employee name, unique per tenant"`
	Position string `json:"position,omitempty" jsonschema:"Role used to match tasks to employees (e.g. developer)"`
	DaysOff  []int  `json:"days_off,omitempty" jsonschema:"Recurring weekly days off as ISO weekday numbers, 1=Monday..7=Sunday"`
}

// ListEmployeesParams are inputs for the list_employees tool.
type ListEmployeesParams struct{}

// CreateTaskParams are inputs for the create_task tool.
type CreateTaskParams struct {
	ProjectID    string  `json:"project_id" jsonschema:"Project the task belongs to"`
	Name         string  `json:"name" jsonschema:"Task name"`
	Duration     int     `json:"duration" jsonschema:"Nominal duration in working days"`
	IsGroup      bool    `json:"is_group,omitempty" jsonschema:"True for a composite task holding sub-tasks"`
	Parallel     bool    `json:"parallel,omitempty" jsonschema:"For group children: run alongside siblings instead of chaining"`
	Predecessors []int64 `json:"predecessors,omitempty" jsonschema:"Task IDs that must finish before this task starts"`
	ParentID     *int64  `json:"parent_id,omitempty" jsonschema:"Enclosing group task ID"`
	Position     string  `json:"position,omitempty" jsonschema:"Required employee position; empty accepts anyone"`
}

// AddDependencyParams are inputs for the add_dependency tool.
type AddDependencyParams struct {
	TaskID        int64 `json:"task_id" jsonschema:"Dependent task ID"`
	PredecessorID int64 `json:"predecessor_id" jsonschema:"Task that must finish first"`
}

// CalculateScheduleParams are inputs for the calculate_schedule tool.
type CalculateScheduleParams struct {
	ProjectID string `json:"project_id" jsonschema:"Project to schedule"`
}

// GetScheduleParams are inputs for the get_schedule tool.
type GetScheduleParams struct {
	ProjectID string `json:"project_id" jsonschema:"Project to read the persisted schedule for"`
}

// GetRunHistoryParams are inputs for the get_run_history tool.
type GetRunHistoryParams struct {
	ProjectID string `json:"project_id" jsonschema:"Project whose runs to list"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of runs (default 20)"`
}

// GetRecentActivityParams are inputs for the get_recent_activity tool.
type GetRecentActivityParams struct {
	ProjectID string `json:"project_id,omitempty" jsonschema:"Project ID to filter by"`
	TaskID    *int64 `json:"task_id,omitempty" jsonschema:"Task ID to filter by"`
	Type      string `json:"type,omitempty" jsonschema:"Activity type to filter by (run_started, run_completed, run_failed, task_skipped, task_unassigned)"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of entries"`
}

// ProjectResponse is the tool-facing view of a project.
type ProjectResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	Status    string `json:"status"`
}

// ProjectSummaryResponse is the tool-facing view of a project listing row.
type ProjectSummaryResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	StartDate  string `json:"start_date"`
	Status     string `json:"status"`
	TaskCount  int    `json:"task_count"`
	GroupCount int    `json:"group_count"`
}

// ListProjectsResponse wraps project summaries.
type ListProjectsResponse struct {
	Projects []ProjectSummaryResponse `json:"projects"`
}

// EmployeeResponse is the tool-facing view of an employee.
type EmployeeResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position,omitempty"`
	DaysOff  []int  `json:"days_off,omitempty"`
}

// EmployeeSummaryResponse is the tool-facing view of an employee listing row.
type EmployeeSummaryResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Position      string `json:"position,omitempty"`
	DaysOff       []int  `json:"days_off,omitempty"`
	AssignedTasks int    `json:"assigned_tasks"`
}

// ListEmployeesResponse wraps employee summaries.
type ListEmployeesResponse struct {
	Employees []EmployeeSummaryResponse `json:"employees"`
}

// TaskResponse is the tool-facing view of a task.
type TaskResponse struct {
	ID           int64   `json:"id"`
	ProjectID    string  `json:"project_id"`
	Name         string  `json:"name"`
	Duration     int     `json:"duration"`
	IsGroup      bool    `json:"is_group,omitempty"`
	Parallel     bool    `json:"parallel,omitempty"`
	Predecessors []int64 `json:"predecessors,omitempty"`
	ParentID     *int64  `json:"parent_id,omitempty"`
	EmployeeID   *int64  `json:"employee_id,omitempty"`
	Position     string  `json:"position,omitempty"`
	StartDate    string  `json:"start_date,omitempty"`
	EndDate      string  `json:"end_date,omitempty"`
}

// AddDependencyResponse acknowledges a recorded dependency edge.
type AddDependencyResponse struct {
	TaskID        int64 `json:"task_id"`
	PredecessorID int64 `json:"predecessor_id"`
}

// ScheduledTaskResponse is one row of a computed schedule.
type ScheduledTaskResponse struct {
	TaskID       int64  `json:"task_id"`
	Name         string `json:"name,omitempty"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	EmployeeID   *int64 `json:"employee_id,omitempty"`
	CalendarDays int    `json:"calendar_days"`
	Critical     bool   `json:"critical,omitempty"`
}

// DiagnosticResponse reports a non-fatal scheduling condition.
type DiagnosticResponse struct {
	Code    string `json:"code"`
	TaskID  int64  `json:"task_id,omitempty"`
	Message string `json:"message"`
}

// ScheduleResponse is the outcome of calculate_schedule, or the persisted
// schedule returned by get_schedule.
type ScheduleResponse struct {
	ProjectID     string                  `json:"project_id"`
	RunID         string                  `json:"run_id,omitempty"`
	Tasks         []ScheduledTaskResponse `json:"tasks"`
	CriticalPath  []int64                 `json:"critical_path,omitempty"`
	DurationDays  int                     `json:"duration_days"`
	DurationUnits float64                 `json:"duration_units,omitempty"`
	Diagnostics   []DiagnosticResponse    `json:"diagnostics,omitempty"`
}

// RunResponse is the tool-facing view of a scheduling run.
type RunResponse struct {
	ID         string `json:"id"`
	ProjectID  string `json:"project_id"`
	Status     string `json:"status"`
	Summary    string `json:"summary,omitempty"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at,omitempty"`
}

// RunHistoryResponse wraps recent runs.
type RunHistoryResponse struct {
	Runs []RunResponse `json:"runs"`
}

// ActivityEntryResponse is the tool-facing view of an activity log entry.
type ActivityEntryResponse struct {
	ID        int64  `json:"id"`
	ProjectID string `json:"project_id"`
	RunID     string `json:"run_id,omitempty"`
	TaskID    *int64 `json:"task_id,omitempty"`
	Type      string `json:"type"`
	Summary   string `json:"summary"`
	CreatedAt string `json:"created_at"`
}

// RecentActivityResponse wraps activity entries.
type RecentActivityResponse struct {
	Activity []ActivityEntryResponse `json:"activity"`
}
