package schedule

import "time"

// Diagnostic codes reported alongside a best-effort schedule.
const (
	DiagInvalidTask         = "invalid_task"
	DiagInvalidPredecessor  = "invalid_predecessor"
	DiagNoEligibleEmployee  = "no_eligible_employee"
	DiagMissingEmployee     = "missing_employee"
	DiagNoCriticalPath      = "no_critical_path"
)

// Diagnostic describes a non-fatal condition encountered during a run.
// Every skipped task or unmet assignment surfaces as one of these; nothing
// is silently discarded.
type Diagnostic struct {
	Code    string `json:"code"`
	TaskID  int64  `json:"task_id,omitempty"`
	Message string `json:"message"`
}

// TaskSchedule holds the computed calendar placement for one task.
type TaskSchedule struct {
	TaskID       int64      `json:"task_id"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      time.Time  `json:"end_date"` // inclusive
	EmployeeID   *int64     `json:"employee_id,omitempty"`
	CalendarDays int        `json:"calendar_days"`
}

// Result is the outcome of a full scheduling run.
type Result struct {
	RunID         string                  `json:"run_id"`
	ProjectID     string                  `json:"project_id"`
	Tasks         map[int64]*TaskSchedule `json:"tasks"`
	CriticalPath  []int64                 `json:"critical_path"`
	DurationDays  int                     `json:"duration_days"`  // calendar days spanned
	DurationUnits float64                 `json:"duration_units"` // abstract units, max early finish
	Diagnostics   []Diagnostic            `json:"diagnostics,omitempty"`

	// Times holds the propagated early/late values the critical path was
	// derived from. Internal to the engine, exposed for inspection.
	Times *Times `json:"-"`
}
