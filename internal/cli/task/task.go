// Package task implements the taskboard task subcommands
package task

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskboard/internal/board"
	"github.com/thenoetrevino/taskboard/internal/cli/handler"
	"github.com/thenoetrevino/taskboard/internal/models"
)

// TaskCmd returns the task parent command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(MoveCmd())
	cmd.AddCommand(ReorderCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

// loadBoard fetches the board so status lookups see the current columns
func loadBoard(ctx context.Context, args *handler.Arguments) (*board.Board, error) {
	svc := args.CLI.App.TaskService
	if err := svc.Load(ctx); err != nil {
		return nil, handler.Fail("BOARD_FETCH_ERROR", err, "")
	}
	b, _ := svc.Board()
	return b, nil
}

// findTask returns the task with id from a freshly loaded board
func findTask(ctx context.Context, args *handler.Arguments, id string) (*board.Board, error) {
	b, err := loadBoard(ctx, args)
	if err != nil {
		return nil, err
	}
	if _, ok := b.Task(id); !ok {
		return nil, handler.Fail("TASK_NOT_FOUND",
			fmt.Errorf("task %s: %w", id, models.ErrTaskNotFound),
			"Use 'taskboard task list' to see task IDs")
	}
	return b, nil
}
