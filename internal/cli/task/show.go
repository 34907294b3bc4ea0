package task

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskboard/internal/cli/handler"
)

// ShowCmd returns the task show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a task",
		Args:  cobra.MaximumNArgs(1),
		RunE:  handler.Command(handler.HandlerFunc(runShow)),
	}

	cmd.Flags().String("id", "", "Task ID")
	handler.AddOutputFlags(cmd)

	return cmd
}

func runShow(ctx context.Context, args *handler.Arguments) (any, error) {
	id, err := args.Parser.ParseTaskID(args.Args)
	if err != nil {
		return nil, handler.Usage(err, "Pass the task ID as an argument")
	}

	b, err := findTask(ctx, args, id)
	if err != nil {
		return nil, err
	}
	t, _ := b.Task(id)
	return taskResult{Task: t}, nil
}
