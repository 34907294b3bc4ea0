package models

import "errors"

// Domain errors shared by the stores, the gateway and the services
var (
	// ErrTaskNotFound indicates that no task with the given ID exists
	ErrTaskNotFound = errors.New("task not found")

	// ErrExecutorNotFound indicates that no executor with the given ID exists
	ErrExecutorNotFound = errors.New("executor not found")

	// ErrInvalidStatus indicates a value outside TO_DO, IN_PROGRESS and DONE
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidPriority indicates a value outside LOW, MEDIUM and HIGH
	ErrInvalidPriority = errors.New("invalid priority")
)
