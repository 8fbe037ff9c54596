package run

import "time"

// Status represents the lifecycle status of a scheduling run
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Run represents one scheduling calculation for a project. At most one run
// per project may be in the running state; callers acquire it before
// touching task dates so concurrent calculations never interleave.
type Run struct {
	ID         string     `json:"id"`
	TenantID   string     `json:"tenant_id"`
	ProjectID  string     `json:"project_id"`
	Status     Status     `json:"status"`
	Summary    string     `json:"summary,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}
