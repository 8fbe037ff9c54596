package project

import "time"

// Status represents the scheduling lifecycle of a project
type Status string

const (
	StatusPlanning  Status = "planning"
	StatusScheduled Status = "scheduled"
	StatusFailed    Status = "failed"
)

// Project represents a container for tasks with a single calendar start date
type Project struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ProjectSummary is a lightweight representation for listing
type ProjectSummary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StartDate  time.Time `json:"start_date"`
	Status     Status    `json:"status"`
	TaskCount  int       `json:"task_count"`
	GroupCount int       `json:"group_count"`
	CreatedAt  time.Time `json:"created_at"`
}
