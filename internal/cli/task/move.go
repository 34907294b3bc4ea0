package task

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskboard/internal/cli/handler"
	taskservice "github.com/thenoetrevino/taskboard/internal/services/task"
)

// MoveCmd returns the task move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <id>",
		Short: "Move a task to the end of another column",
		Long: `Move a task to the end of another column. The column it leaves is
renumbered so positions stay contiguous.

Examples:
  taskboard task move 3f2a... --to=done
  taskboard task move 3f2a... --from=todo --to=in-progress --json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.Command(handler.HandlerFunc(runMove)),
	}

	cmd.Flags().String("id", "", "Task ID")
	cmd.Flags().String("to", "", "Destination column: todo, in-progress, done (required)")
	cmd.Flags().String("from", "", "Source column (defaults to the task's current column)")
	_ = cmd.MarkFlagRequired("to")

	handler.AddOutputFlags(cmd)

	return cmd
}

func runMove(ctx context.Context, args *handler.Arguments) (any, error) {
	p := args.Parser

	id, err := p.ParseTaskID(args.Args)
	if err != nil {
		return nil, handler.Usage(err, "Pass the task ID as an argument")
	}
	to, err := p.ParseStatus("to", true)
	if err != nil {
		return nil, handler.Fail("INVALID_STATUS", err, "Valid statuses are: todo, in-progress, done")
	}
	from, err := p.ParseStatus("from", false)
	if err != nil {
		return nil, handler.Fail("INVALID_STATUS", err, "Valid statuses are: todo, in-progress, done")
	}

	if _, err := findTask(ctx, args, id); err != nil {
		return nil, err
	}

	svc := args.CLI.App.TaskService
	err = svc.MoveTask(ctx, taskservice.MoveTaskRequest{TaskID: id, Source: from, Destination: to})
	if err != nil {
		return nil, handler.Fail("TASK_MOVE_ERROR", err, "")
	}

	result := actionResult{TaskID: id, Action: "moved", Status: to}
	if b, ok := svc.Board(); ok {
		if _, idx, found := b.Locate(id); found {
			result.Order = idx
		}
	}
	return result, nil
}
