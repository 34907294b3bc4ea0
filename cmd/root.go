// Package cmd holds the taskboard command tree
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskboard/internal/cli"
	"github.com/thenoetrevino/taskboard/internal/cli/executor"
	"github.com/thenoetrevino/taskboard/internal/cli/task"
	"github.com/thenoetrevino/taskboard/internal/config"
	"github.com/thenoetrevino/taskboard/internal/logging"
)

// NewRootCmd builds the command tree. Without a subcommand it opens the board.
func NewRootCmd() *cobra.Command {
	var (
		configPath string
		logCloser  io.Closer
	)

	cmd := &cobra.Command{
		Use:   "taskboard",
		Short: "Taskboard - a three column kanban board",
		Long: `Taskboard is a kanban board with To Do, In Progress and Done columns.
Run it without arguments to open the interactive board, or use the task and
executor commands from scripts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return usageError(cmd, err)
			}

			// The serve command logs to stderr itself
			if cmd.Name() != "serve" {
				dir, err := config.DataDir()
				if err != nil {
					return err
				}
				if logCloser, err = logging.Init(dir, cfg.Log.Level); err != nil {
					return err
				}
			}

			cmd.SetContext(cli.WithConfig(cmd.Context(), cfg))
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
		RunE: runBoard,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/taskboard/config.yaml)")

	cmd.AddCommand(task.TaskCmd())
	cmd.AddCommand(executor.ExecutorCmd())
	cmd.AddCommand(serveCmd())
	cmd.AddCommand(configCmd())

	return cmd
}

// Execute runs the command tree
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// usageError reports err and exits with the usage code
func usageError(cmd *cobra.Command, err error) error {
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	return &cli.ExitError{Code: cli.ExitUsage, Err: err}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}
