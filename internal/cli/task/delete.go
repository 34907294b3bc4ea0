package task

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskboard/internal/cli/handler"
	taskservice "github.com/thenoetrevino/taskboard/internal/services/task"
)

// DeleteCmd returns the task delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Long:  "Delete a task by ID (requires confirmation unless --force, --json or --quiet).",
		Args:  cobra.MaximumNArgs(1),
		RunE:  handler.Command(handler.HandlerFunc(runDelete)),
	}

	cmd.Flags().String("id", "", "Task ID")
	cmd.Flags().Bool("force", false, "Skip confirmation")

	handler.AddOutputFlags(cmd)

	return cmd
}

// cancelled is the result when the user declines the confirmation prompt
type cancelled struct{}

func (cancelled) String() string { return "Cancelled" }

func runDelete(ctx context.Context, args *handler.Arguments) (any, error) {
	p := args.Parser

	id, err := p.ParseTaskID(args.Args)
	if err != nil {
		return nil, handler.Usage(err, "Pass the task ID as an argument")
	}
	force, _ := p.ParseBool("force")
	jsonOutput, quietMode, _ := p.OutputFormats()

	b, err := findTask(ctx, args, id)
	if err != nil {
		return nil, err
	}
	task, _ := b.Task(id)

	// Ask for confirmation unless force or a machine-readable mode
	if !force && !quietMode && !jsonOutput {
		cmd := args.GetCmd()
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Delete task '%s' (%s)? (y/N): ", task.Title, id)
		response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			return cancelled{}, nil
		}
	}

	err = args.CLI.App.TaskService.DeleteTask(ctx, taskservice.DeleteTaskRequest{TaskID: id, Status: task.Status})
	if err != nil {
		return nil, handler.Fail("DELETE_ERROR", err, "")
	}
	return actionResult{TaskID: id, Action: "deleted", Status: task.Status}, nil
}
