package mcp

import (
	"errors"
	"fmt"

	"github.com/rkulagin/ganttcal/internal/domain/employee"
	"github.com/rkulagin/ganttcal/internal/domain/project"
	"github.com/rkulagin/ganttcal/internal/domain/run"
	"github.com/rkulagin/ganttcal/internal/domain/task"
	"github.com/rkulagin/ganttcal/internal/repository"
	"github.com/rkulagin/ganttcal/internal/schedule"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Check the project ID or call list_projects"}
	case errors.Is(err, project.ErrInvalidStartDate):
		return &APIError{Code: "INVALID_START_DATE", Message: "start date must be YYYY-MM-DD", RecoveryHint: "Use a calendar date like 2026-01-05"}
	case errors.Is(err, task.ErrTaskNotFound):
		return &APIError{Code: "TASK_NOT_FOUND", Message: "task not found", RecoveryHint: "Check the task ID"}
	case errors.Is(err, task.ErrParentNotGroup):
		return &APIError{Code: "PARENT_NOT_GROUP", Message: "parent task is not a group", RecoveryHint: "Create the parent with is_group=true first"}
	case errors.Is(err, task.ErrSelfDependency):
		return &APIError{Code: "SELF_DEPENDENCY", Message: "a task cannot depend on itself"}
	case errors.Is(err, task.ErrInvalidDuration):
		return &APIError{Code: "INVALID_DURATION", Message: "duration must be a positive number of working days"}
	case errors.Is(err, employee.ErrEmployeeNotFound):
		return &APIError{Code: "EMPLOYEE_NOT_FOUND", Message: "employee not found", RecoveryHint: "Check the employee ID or call list_employees"}
	case errors.Is(err, employee.ErrInvalidDayOff):
		return &APIError{Code: "INVALID_DAY_OFF", Message: "days off must be ISO weekday numbers 1 (Monday) through 7 (Sunday)"}
	case errors.Is(err, run.ErrRunNotFound):
		return &APIError{Code: "RUN_NOT_FOUND", Message: "scheduling run not found"}
	case errors.Is(err, run.ErrRunInProgress):
		return &APIError{Code: "RUN_IN_PROGRESS", Message: "another scheduling run is active for this project", RecoveryHint: "Wait for the active run to finish, then retry"}
	case errors.Is(err, schedule.ErrCyclicDependency):
		apiErr := &APIError{Code: "CYCLIC_DEPENDENCY", Message: "task dependencies form a cycle", RecoveryHint: "Remove one of the listed dependencies and recalculate"}
		var cycleErr *schedule.CycleError
		if errors.As(err, &cycleErr) {
			apiErr.Details = map[string]any{"cycle": cycleErr.Cycle}
		}
		return apiErr
	case errors.Is(err, repository.ErrConflict):
		return &APIError{Code: "CONFLICT", Message: "an entity with that identity already exists"}
	default:
		return nil
	}
}

// toolError wraps a domain error for the tool response, preferring the
// mapped API error when one applies.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
