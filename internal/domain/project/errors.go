package project

import "errors"

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvalidInput indicates invalid project input.
	ErrInvalidInput = errors.New("invalid project input")
	// ErrInvalidStartDate indicates an unparseable project start date.
	ErrInvalidStartDate = errors.New("start date must be a YYYY-MM-DD calendar date")
)
