package run

import "errors"

var (
	// ErrRunNotFound indicates the run doesn't exist.
	ErrRunNotFound = errors.New("run not found")
	// ErrRunInProgress indicates a scheduling run is already active for the project.
	ErrRunInProgress = errors.New("a scheduling run is already in progress for this project")
	// ErrInvalidInput indicates invalid run input.
	ErrInvalidInput = errors.New("invalid run input")
)
