package task

import "errors"

var (
	// ErrTaskNotFound indicates the task doesn't exist.
	ErrTaskNotFound = errors.New("task not found")
	// ErrInvalidInput indicates invalid task input.
	ErrInvalidInput = errors.New("invalid task input")
	// ErrInvalidDuration indicates a non-positive nominal duration.
	ErrInvalidDuration = errors.New("task duration must be a positive number of days")
	// ErrParentNotGroup indicates parent_id references a non-group task.
	ErrParentNotGroup = errors.New("parent task is not a group")
	// ErrGroupAssignment indicates an attempt to assign an employee to a group task.
	ErrGroupAssignment = errors.New("group tasks cannot be assigned directly")
	// ErrSelfDependency indicates a task referencing itself as predecessor.
	ErrSelfDependency = errors.New("task cannot depend on itself")
)
