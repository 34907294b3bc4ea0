// Package executor implements the taskboard executor subcommands
package executor

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskboard/internal/cli/handler"
	"github.com/thenoetrevino/taskboard/internal/models"
	executorservice "github.com/thenoetrevino/taskboard/internal/services/executor"
	"github.com/thenoetrevino/taskboard/internal/user"
)

// ExecutorCmd returns the executor parent command
func ExecutorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "executor",
		Short: "Manage the people tasks are assigned to",
	}

	cmd.AddCommand(listCmd())
	cmd.AddCommand(createCmd())

	return cmd
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List executors",
		Args:  cobra.NoArgs,
		RunE:  handler.Command(handler.HandlerFunc(runList)),
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

func createCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an executor",
		Long: `Create an executor that tasks can be assigned to with --executor.

Examples:
  taskboard executor create --name="Ada Lovelace" --email=ada@example.com
  EXECUTOR_ID=$(taskboard executor create --name=Ada --quiet)
  taskboard executor create          # registers you under your account name
`,
		Args: cobra.NoArgs,
		RunE: handler.Command(handler.HandlerFunc(runCreate)),
	}

	cmd.Flags().String("name", "", "Executor name (defaults to your account's full name)")
	cmd.Flags().String("email", "", "Executor email")

	handler.AddOutputFlags(cmd)
	return cmd
}

type executorResult struct {
	models.Executor
}

func (r executorResult) GetID() string {
	return r.ID
}

func (r executorResult) String() string {
	return fmt.Sprintf("✓ Executor '%s' created successfully (ID: %s)", r.Name, r.ID)
}

type executorList []models.Executor

func (l executorList) IDs() []string {
	ids := make([]string, len(l))
	for i, e := range l {
		ids[i] = e.ID
	}
	return ids
}

func (l executorList) String() string {
	if len(l) == 0 {
		return "No executors found"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d executors:\n", len(l))
	for _, e := range l {
		fmt.Fprintf(&sb, "\n  [%s] %s", e.ID, e.Name)
		if e.Email != "" {
			fmt.Fprintf(&sb, " <%s>", e.Email)
		}
	}
	return sb.String()
}

func runList(ctx context.Context, args *handler.Arguments) (any, error) {
	executors, err := args.CLI.App.ExecutorService.ListExecutors(ctx)
	if err != nil {
		return nil, handler.Fail("EXECUTOR_FETCH_ERROR", err, "")
	}
	if executors == nil {
		executors = []models.Executor{}
	}
	return executorList(executors), nil
}

func runCreate(ctx context.Context, args *handler.Arguments) (any, error) {
	name, _ := args.Parser.ParseStringOptional("name")
	if !args.Changed("name") {
		name = user.DisplayName()
	}
	email, _ := args.Parser.ParseStringOptional("email")

	created, err := args.CLI.App.ExecutorService.CreateExecutor(ctx, executorservice.CreateExecutorRequest{
		Name:  name,
		Email: email,
	})
	if err != nil {
		return nil, handler.Fail("EXECUTOR_CREATE_ERROR", err, "")
	}
	return executorResult{Executor: created}, nil
}
