package cli

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/taskboard/internal/models"
	executorservice "github.com/thenoetrevino/taskboard/internal/services/executor"
	taskservice "github.com/thenoetrevino/taskboard/internal/services/task"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates a general error occurred.
	// Use for: store errors, network errors, unexpected failures.
	ExitFailure = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: missing required flags or invalid flag combinations.
	ExitUsage = 2

	// ExitNotFound indicates a requested task or executor does not exist.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: unreadable stdin or a board the store returned corrupted.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: invalid priority, status or deadline values, empty titles.
	ExitValidation = 5
)

// ExitError carries the process exit code for a failed command. The message
// has already been printed by the formatter.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit %d: %v", e.Code, e.Err)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code for err: the code of an ExitError, or one
// derived from the domain error it wraps
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return classify(err)
}

func classify(err error) int {
	switch {
	case errors.Is(err, models.ErrTaskNotFound), errors.Is(err, models.ErrExecutorNotFound):
		return ExitNotFound
	case errors.Is(err, models.ErrInvalidStatus),
		errors.Is(err, models.ErrInvalidPriority),
		errors.Is(err, taskservice.ErrEmptyTitle),
		errors.Is(err, taskservice.ErrTitleTooLong),
		errors.Is(err, taskservice.ErrInvalidTaskID),
		errors.Is(err, taskservice.ErrInvalidDeadline),
		errors.Is(err, taskservice.ErrInvalidPosition),
		errors.Is(err, taskservice.ErrNothingToUpdate),
		errors.Is(err, taskservice.ErrTaskAlreadyInTargetColumn),
		errors.Is(err, executorservice.ErrEmptyName),
		errors.Is(err, executorservice.ErrNameTooLong),
		errors.Is(err, executorservice.ErrInvalidEmail):
		return ExitValidation
	default:
		return ExitFailure
	}
}
