package task

import "strings"

// ValidateCreateInput validates fields required to create a task.
func ValidateCreateInput(req CreateRequest) error {
	if strings.TrimSpace(req.ProjectID) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(req.Name) == "" {
		return ErrInvalidInput
	}
	if req.Duration <= 0 {
		return ErrInvalidDuration
	}
	for _, pred := range req.Predecessors {
		if req.ID != 0 && pred == req.ID {
			return ErrSelfDependency
		}
	}
	return nil
}
