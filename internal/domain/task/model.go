package task

import "time"

// Task represents a unit of project work. A task with IsGroup set is a
// composite of child sub-tasks and never receives a direct assignment;
// Parallel is only meaningful for children of a group.
type Task struct {
	ID           int64      `json:"id"`
	TenantID     string     `json:"tenant_id"`
	ProjectID    string     `json:"project_id"`
	Name         string     `json:"name"`
	Duration     int        `json:"duration"` // working days before days-off expansion
	IsGroup      bool       `json:"is_group"`
	Parallel     bool       `json:"parallel"`
	Predecessors []int64    `json:"predecessors,omitempty"`
	ParentID     *int64     `json:"parent_id,omitempty"`
	EmployeeID   *int64     `json:"employee_id,omitempty"`
	Position     string     `json:"position,omitempty"` // required role; empty means any
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// TaskRef is a lightweight reference to a task
type TaskRef struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Duration  int     `json:"duration"`
	IsGroup   bool    `json:"is_group"`
	ParentID  *int64  `json:"parent_id,omitempty"`
	Position  string  `json:"position,omitempty"`
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`
}

// DependencyEdge records that Task may not proceed until Predecessor's
// computed finish.
type DependencyEdge struct {
	TaskID        int64 `json:"task_id"`
	PredecessorID int64 `json:"predecessor_id"`
}
