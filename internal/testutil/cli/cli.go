// Package cli provides helpers for testing cobra commands against an
// in-memory store. It lives apart from testutil so service tests do not
// import the command packages.
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskboard/internal/app"
	"github.com/thenoetrevino/taskboard/internal/cli"
	"github.com/thenoetrevino/taskboard/internal/config"
	"github.com/thenoetrevino/taskboard/internal/models"
	"github.com/thenoetrevino/taskboard/internal/testutil"
)

// Result holds what a command wrote and returned
type Result struct {
	Stdout string
	Stderr string
	Err    error
}

// SetupCLITest creates a memory store and a CLI over it
func SetupCLITest(t *testing.T) (*testutil.MemoryStore, *cli.CLI) {
	t.Helper()
	store := testutil.NewMemoryStore()
	return store, &cli.CLI{App: app.New(store), Config: config.Default()}
}

// ExecuteCLICommand runs cmd with args against the test CLI
func ExecuteCLICommand(t *testing.T, c *cli.CLI, cmd *cobra.Command, args ...string) Result {
	t.Helper()
	return ExecuteCLICommandWithInput(t, c, cmd, "", args...)
}

// ExecuteCLICommandWithInput runs cmd with stdin set to input
func ExecuteCLICommandWithInput(t *testing.T, c *cli.CLI, cmd *cobra.Command, input string, args ...string) Result {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(input))

	// Disable usage output on error for cleaner test output
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	ctx := cli.WithCLI(context.Background(), c)
	err := cmd.ExecuteContext(ctx)

	return Result{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}

// ParseJSON parses JSON output from CLI commands
func ParseJSON(t *testing.T, output string) map[string]any {
	t.Helper()

	var result map[string]any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}
	return result
}

// SeedColumn adds tasks titled titles to status in order
func SeedColumn(store *testutil.MemoryStore, status models.Status, titles ...string) []models.Task {
	tasks := make([]models.Task, len(titles))
	for i, title := range titles {
		tasks[i] = models.Task{
			Title:         title,
			Status:        status,
			Priority:      models.PriorityMedium,
			Deadline:      "2025-01-31",
			OrderInColumn: i,
		}
	}
	return store.Seed(tasks...)
}

// Lines splits output into non-empty trimmed lines
func Lines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

