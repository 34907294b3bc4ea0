package task

import "github.com/thenoetrevino/taskboard/internal/models"

// CreateTaskRequest encapsulates all data needed to create a task.
// The new task is appended to the end of Status.
type CreateTaskRequest struct {
	Title       string
	Description string
	File        string
	Status      models.Status
	Priority    models.Priority
	Deadline    string
	ExecutorID  string
}

// UpdateTaskRequest encapsulates an edit of a task's fields.
// Fields with pointers are optional - nil means don't update, "" clears.
type UpdateTaskRequest struct {
	TaskID      string
	Title       *string
	Description *string
	File        *string
	Priority    *models.Priority
	Deadline    *string
	ExecutorID  *string
}

// MoveTaskRequest moves a task to the end of another column.
// An empty Source is resolved from the current board.
type MoveTaskRequest struct {
	TaskID      string
	Source      models.Status
	Destination models.Status
}

// ReorderTaskRequest moves a task to NewOrder within its column.
// An empty Status is resolved from the current board.
type ReorderTaskRequest struct {
	TaskID   string
	Status   models.Status
	NewOrder int
}

// DeleteTaskRequest removes a task.
// An empty Status is resolved from the current board.
type DeleteTaskRequest struct {
	TaskID string
	Status models.Status
}

func (r UpdateTaskRequest) patch() models.TaskPatch {
	return models.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		File:        r.File,
		Priority:    r.Priority,
		Deadline:    r.Deadline,
		ExecutorID:  r.ExecutorID,
	}
}
