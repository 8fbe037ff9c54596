package employee

import "time"

// Employee represents a schedulable worker with recurring weekly days off.
type Employee struct {
	ID        int64     `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Name      string    `json:"name"`
	Position  string    `json:"position"`
	DaysOff   []int     `json:"days_off"` // ISO weekday numbers, 1=Monday..7=Sunday
	CreatedAt time.Time `json:"created_at"`
}

// EmployeeSummary is a lightweight representation for listing
type EmployeeSummary struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Position      string `json:"position"`
	DaysOff       []int  `json:"days_off"`
	AssignedTasks int    `json:"assigned_tasks"`
}
