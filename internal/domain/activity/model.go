package activity

import "time"

// ActivityType represents the type of scheduling event
type ActivityType string

const (
	TypeRunStarted     ActivityType = "run_started"
	TypeRunCompleted   ActivityType = "run_completed"
	TypeRunFailed      ActivityType = "run_failed"
	TypeTaskSkipped    ActivityType = "task_skipped"
	TypeTaskUnassigned ActivityType = "task_unassigned"
	TypeTaskScheduled  ActivityType = "task_scheduled"
)

// ActivityEntry represents an event in the scheduling activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	TenantID     string       `json:"tenant_id"`
	ProjectID    string       `json:"project_id"`
	RunID        *string      `json:"run_id,omitempty"`
	TaskID       *int64       `json:"task_id,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"created_at"`
}
