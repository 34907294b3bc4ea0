package task

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskboard/internal/cli"
	"github.com/thenoetrevino/taskboard/internal/cli/handler"
	taskservice "github.com/thenoetrevino/taskboard/internal/services/task"
)

// UpdateCmd returns the task update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a task's fields",
		Long: `Update a task in place. Only the flags given are changed; pass an empty
value to clear an optional field. Use 'task move' and 'task reorder' to change
where a task sits on the board.

Examples:
  taskboard task update 3f2a... --title="New title" --priority=high
  taskboard task update 3f2a... --executor=""
`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.Command(handler.HandlerFunc(runUpdate)),
	}

	cmd.Flags().String("id", "", "Task ID")
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description (use - for stdin)")
	cmd.Flags().String("file", "", "New attached file path")
	cmd.Flags().String("priority", "", "New priority: low, medium, high")
	cmd.Flags().String("deadline", "", "New deadline as YYYY-MM-DD")
	cmd.Flags().String("executor", "", "New executor ID")

	handler.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(ctx context.Context, args *handler.Arguments) (any, error) {
	p := args.Parser

	id, err := p.ParseTaskID(args.Args)
	if err != nil {
		return nil, handler.Usage(err, "Pass the task ID as an argument")
	}

	req := taskservice.UpdateTaskRequest{TaskID: id}
	if req.Title, err = p.ParseStringChanged("title"); err != nil {
		return nil, handler.Usage(err, "")
	}
	if req.Description, err = p.ParseStringChanged("description"); err != nil {
		return nil, handler.Usage(err, "")
	}
	if req.Description != nil {
		text, err := cli.ReadText(*req.Description, args.GetCmd().InOrStdin())
		if err != nil {
			return nil, &handler.Failure{Code: "STDIN_READ_ERROR", Err: err, ExitCode: cli.ExitDataErr}
		}
		req.Description = &text
	}
	if req.File, err = p.ParseStringChanged("file"); err != nil {
		return nil, handler.Usage(err, "")
	}
	if req.Deadline, err = p.ParseStringChanged("deadline"); err != nil {
		return nil, handler.Usage(err, "")
	}
	if req.ExecutorID, err = p.ParseStringChanged("executor"); err != nil {
		return nil, handler.Usage(err, "")
	}
	if args.Changed("priority") {
		priority, err := p.ParsePriority("priority")
		if err != nil {
			return nil, handler.Fail("INVALID_PRIORITY", err, "Valid priorities are: low, medium, high")
		}
		req.Priority = &priority
	}

	if _, err := findTask(ctx, args, id); err != nil {
		return nil, err
	}

	updated, err := args.CLI.App.TaskService.UpdateTask(ctx, req)
	if err != nil {
		return nil, handler.Fail("TASK_UPDATE_ERROR", err, "")
	}
	return taskResult{Task: updated, verb: "updated successfully"}, nil
}

