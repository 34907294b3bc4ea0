package task

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskboard/internal/cli/handler"
)

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List the board column by column, each ordered by position.

Examples:
  taskboard task list
  taskboard task list --status in-progress --json
`,
		Args: cobra.NoArgs,
		RunE: handler.Command(handler.HandlerFunc(runList)),
	}

	cmd.Flags().String("status", "", "Only list one column: todo, in-progress, done")
	handler.AddOutputFlags(cmd)

	return cmd
}

func runList(ctx context.Context, args *handler.Arguments) (any, error) {
	status, err := args.Parser.ParseStatus("status", false)
	if err != nil {
		return nil, handler.Fail("INVALID_STATUS", err, "Valid statuses are: todo, in-progress, done")
	}

	b, err := loadBoard(ctx, args)
	if err != nil {
		return nil, err
	}
	return newBoardResult(b, status), nil
}
