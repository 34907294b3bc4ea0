package task

import (
	"errors"

	"github.com/thenoetrevino/taskboard/internal/models"
)

// Task-related errors
var (
	// Validation errors
	ErrEmptyTitle      = errors.New("task title cannot be empty")
	ErrTitleTooLong    = errors.New("task title cannot exceed 255 characters")
	ErrInvalidTaskID   = errors.New("invalid task ID")
	ErrInvalidStatus   = models.ErrInvalidStatus
	ErrInvalidPriority = models.ErrInvalidPriority
	ErrInvalidDeadline = errors.New("invalid deadline: must be a YYYY-MM-DD date")
	ErrInvalidPosition = errors.New("invalid position: must be >= 0")
	ErrNothingToUpdate = errors.New("no fields to update")

	// Business logic errors
	ErrTaskNotFound              = models.ErrTaskNotFound
	ErrTaskAlreadyInTargetColumn = errors.New("task is already in target column")
	ErrTemporaryTask             = errors.New("task has not been saved yet")
)
