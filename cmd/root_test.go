package cmd

import (
	"bytes"
	"context"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/taskboard/internal/cli"
	"github.com/thenoetrevino/taskboard/internal/config"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "xdg"))
	t.Setenv(config.EnvConfigPath, "")
	t.Setenv(config.EnvStoreURL, "")

	prev := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		log.SetOutput(os.Stderr)
	})
	return home
}

type result struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestConfigShow(t *testing.T) {
	isolate(t)

	res := run(t, "config", "show")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "driver: sqlite")
	assert.Contains(t, res.stdout, "activation_distance: 5")
}

func TestConfigInit(t *testing.T) {
	home := isolate(t)
	want := filepath.Join(home, "xdg", "taskboard", "config.yaml")

	res := run(t, "config", "init")
	require.NoError(t, res.err)
	assert.Equal(t, want+"\n", res.stdout)
	assert.FileExists(t, want)

	res = run(t, "config", "init")
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(res.err))
	assert.Contains(t, res.stderr, "already exists")

	res = run(t, "config", "init", "--force")
	assert.NoError(t, res.err)
}

func TestInvalidConfigIsUsageError(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  driver: mongo\n"), 0o644))

	res := run(t, "--config", path, "config", "show")
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(res.err))
	assert.ErrorIs(t, res.err, config.ErrUnknownDriver)
	assert.Contains(t, res.stderr, "unknown store driver")
}

func TestServeRejectsHTTPDriver(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvStoreURL, "http://127.0.0.1:1")

	res := run(t, "serve")
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(res.err))
	assert.ErrorIs(t, res.err, errServeOverHTTP)
}

func TestTaskCommandsAgainstSQLite(t *testing.T) {
	home := isolate(t)

	res := run(t, "task", "create", "--title", "Ship it", "--quiet")
	require.NoError(t, res.err, res.stderr)
	id := strings.TrimSpace(res.stdout)
	require.NotEmpty(t, id)

	res = run(t, "task", "move", id, "--to", "done", "--quiet")
	require.NoError(t, res.err, res.stderr)

	res = run(t, "task", "list", "--json")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, `"DONE"`)
	assert.Contains(t, res.stdout, "Ship it")

	assert.FileExists(t, filepath.Join(home, ".taskboard", "taskboard.db"))
	assert.FileExists(t, filepath.Join(home, ".taskboard", "logs", "taskboard.log"))
}
