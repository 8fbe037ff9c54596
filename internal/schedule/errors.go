package schedule

import (
	"errors"
	"fmt"
)

// ErrCyclicDependency indicates the dependency graph contains a cycle. The
// whole run is aborted and no dates are persisted.
var ErrCyclicDependency = errors.New("cyclic dependency detected")

// CycleError carries the members of a detected dependency cycle.
type CycleError struct {
	Cycle []int64
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic dependency detected: %v", e.Cycle)
}

func (e *CycleError) Unwrap() error {
	return ErrCyclicDependency
}
