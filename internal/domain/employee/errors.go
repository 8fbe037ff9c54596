package employee

import "errors"

var (
	// ErrEmployeeNotFound indicates the employee doesn't exist.
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrInvalidInput indicates invalid employee input.
	ErrInvalidInput = errors.New("invalid employee input")
	// ErrInvalidDayOff indicates a day-off value outside 1..7.
	ErrInvalidDayOff = errors.New("day off must be an ISO weekday between 1 and 7")
)
