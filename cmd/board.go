package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskboard/internal/cli"
	"github.com/thenoetrevino/taskboard/internal/launcher"
)

// runBoard opens the interactive board on the configured store
func runBoard(cmd *cobra.Command, _ []string) error {
	cfg, err := cli.ConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	return launcher.Launch(cmd.Context(), cfg,
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
}
