package task

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskboard/internal/cli"
	"github.com/thenoetrevino/taskboard/internal/cli/handler"
	taskservice "github.com/thenoetrevino/taskboard/internal/services/task"
)

// now is replaced in tests
var now = time.Now

// CreateCmd returns the task create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		Long: `Create a new task at the end of a column.

Examples:
  # Simple task (human-readable output)
  taskboard task create --title="Fix bug"

  # JSON output for agents
  taskboard task create --title="Fix bug" --json

  # Quiet mode for bash capture
  TASK_ID=$(taskboard task create --title="Fix bug" --quiet)

  # Full example with all options
  taskboard task create \
    --title="Add authentication" \
    --description="Implement JWT auth" \
    --status=in-progress \
    --priority=high \
    --deadline=2025-12-01
`,
		Args: cobra.NoArgs,
		RunE: handler.Command(handler.HandlerFunc(runCreate)),
	}

	// Required flags
	cmd.Flags().String("title", "", "Task title (required)")
	_ = cmd.MarkFlagRequired("title")

	// Optional flags
	cmd.Flags().String("description", "", "Task description (use - for stdin)")
	cmd.Flags().String("file", "", "Attached file path")
	cmd.Flags().String("status", "todo", "Column: todo, in-progress, done")
	cmd.Flags().String("priority", "medium", "Priority: low, medium, high")
	cmd.Flags().String("deadline", "", "Deadline as YYYY-MM-DD (defaults to one week from today)")
	cmd.Flags().String("executor", "", "Executor ID")

	handler.AddOutputFlags(cmd)

	return cmd
}

func runCreate(ctx context.Context, args *handler.Arguments) (any, error) {
	p := args.Parser

	title, err := p.ParseString("title")
	if err != nil {
		return nil, handler.Usage(err, "")
	}
	status, err := p.ParseStatus("status", true)
	if err != nil {
		return nil, handler.Fail("INVALID_STATUS", err, "Valid statuses are: todo, in-progress, done")
	}
	priority, err := p.ParsePriority("priority")
	if err != nil {
		return nil, handler.Fail("INVALID_PRIORITY", err, "Valid priorities are: low, medium, high")
	}

	deadline, _ := p.ParseStringOptional("deadline")
	if deadline == "" {
		deadline = cli.DefaultDeadline(now())
	}

	// Handle description from stdin
	description, _ := p.ParseStringOptional("description")
	description, err = cli.ReadText(description, args.GetCmd().InOrStdin())
	if err != nil {
		return nil, &handler.Failure{Code: "STDIN_READ_ERROR", Err: err, ExitCode: cli.ExitDataErr}
	}

	file, _ := p.ParseStringOptional("file")
	executor, _ := p.ParseStringOptional("executor")

	if _, err := loadBoard(ctx, args); err != nil {
		return nil, err
	}

	created, err := args.CLI.App.TaskService.CreateTask(ctx, taskservice.CreateTaskRequest{
		Title:       title,
		Description: description,
		File:        file,
		Status:      status,
		Priority:    priority,
		Deadline:    deadline,
		ExecutorID:  executor,
	})
	if err != nil {
		return nil, handler.Fail("TASK_CREATE_ERROR", err, "")
	}
	return taskResult{Task: created, verb: "created successfully"}, nil
}
