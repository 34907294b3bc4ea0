package task

import (
	"time"

	"github.com/thenoetrevino/taskboard/internal/models"
)

const maxTitleLength = 255

func validateTitle(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > maxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

func validateDeadline(deadline string) error {
	if _, err := time.Parse(models.DeadlineLayout, deadline); err != nil {
		return ErrInvalidDeadline
	}
	return nil
}

func validateTaskID(id string) error {
	if id == "" {
		return ErrInvalidTaskID
	}
	return nil
}

// validateCreateTask validates a CreateTaskRequest
func validateCreateTask(req CreateTaskRequest) error {
	if err := validateTitle(req.Title); err != nil {
		return err
	}
	if !req.Status.Valid() {
		return ErrInvalidStatus
	}
	if !req.Priority.Valid() {
		return ErrInvalidPriority
	}
	return validateDeadline(req.Deadline)
}

// validateUpdateTask validates an UpdateTaskRequest
func validateUpdateTask(req UpdateTaskRequest) error {
	if err := validateTaskID(req.TaskID); err != nil {
		return err
	}
	if req.patch().IsEmpty() {
		return ErrNothingToUpdate
	}
	if req.Title != nil {
		if err := validateTitle(*req.Title); err != nil {
			return err
		}
	}
	if req.Priority != nil && !req.Priority.Valid() {
		return ErrInvalidPriority
	}
	if req.Deadline != nil {
		return validateDeadline(*req.Deadline)
	}
	return nil
}
