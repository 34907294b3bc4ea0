package task

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskboard/internal/cli/handler"
	taskservice "github.com/thenoetrevino/taskboard/internal/services/task"
)

// ReorderCmd returns the task reorder subcommand
func ReorderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reorder <id>",
		Short: "Move a task to a new position within its column",
		Long: `Move a task to a new zero-based position within its column. Tasks in
between shift by one; a position past the end moves the task to the end.

Examples:
  taskboard task reorder 3f2a... --position=0
`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.Command(handler.HandlerFunc(runReorder)),
	}

	cmd.Flags().String("id", "", "Task ID")
	cmd.Flags().Int("position", -1, "New zero-based position (required)")
	cmd.Flags().String("status", "", "Column the task is in (defaults to its current column)")
	_ = cmd.MarkFlagRequired("position")

	handler.AddOutputFlags(cmd)

	return cmd
}

func runReorder(ctx context.Context, args *handler.Arguments) (any, error) {
	p := args.Parser

	id, err := p.ParseTaskID(args.Args)
	if err != nil {
		return nil, handler.Usage(err, "Pass the task ID as an argument")
	}
	position, err := p.ParseIntOptional("position")
	if err != nil {
		return nil, handler.Usage(err, "")
	}
	if position < 0 {
		return nil, handler.Fail("INVALID_POSITION", taskservice.ErrInvalidPosition, "")
	}
	status, err := p.ParseStatus("status", false)
	if err != nil {
		return nil, handler.Fail("INVALID_STATUS", err, "Valid statuses are: todo, in-progress, done")
	}

	b, err := findTask(ctx, args, id)
	if err != nil {
		return nil, err
	}
	if status == "" {
		status, _, _ = b.Locate(id)
	}

	svc := args.CLI.App.TaskService
	err = svc.ReorderTask(ctx, taskservice.ReorderTaskRequest{TaskID: id, Status: status, NewOrder: position})
	if err != nil {
		return nil, handler.Fail("TASK_REORDER_ERROR", err, "")
	}

	result := actionResult{TaskID: id, Action: "reordered", Status: status}
	if b, ok := svc.Board(); ok {
		if _, idx, found := b.Locate(id); found {
			result.Order = idx
		}
	}
	return result, nil
}

