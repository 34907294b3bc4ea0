package cli

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/taskboard/internal/models"
	taskservice "github.com/thenoetrevino/taskboard/internal/services/task"
)

type withID struct {
	ID string `json:"id"`
}

func (w withID) GetID() string { return w.ID }

type withIDs []string

func (w withIDs) IDs() []string { return w }

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"explicit", &ExitError{Code: ExitUsage, Err: errors.New("x")}, ExitUsage},
		{"not found", fmt.Errorf("lookup: %w", models.ErrTaskNotFound), ExitNotFound},
		{"validation", fmt.Errorf("create: %w", taskservice.ErrEmptyTitle), ExitValidation},
		{"status", models.ErrInvalidStatus, ExitValidation},
		{"other", errors.New("connection refused"), ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestOutputFormatter_Success(t *testing.T) {
	var buf bytes.Buffer

	f := &OutputFormatter{Quiet: true, Out: &buf}
	require.NoError(t, f.Success(withID{ID: "abc"}))
	require.NoError(t, f.Success(withIDs{"x", "y"}))
	assert.Equal(t, "abc\nx\ny\n", buf.String())

	buf.Reset()
	f = &OutputFormatter{JSON: true, Out: &buf}
	require.NoError(t, f.Success(withID{ID: "abc"}))
	assert.JSONEq(t, `{"success":true,"data":{"id":"abc"}}`, buf.String())
}

func TestOutputFormatter_Fail(t *testing.T) {
	var stdout, stderr bytes.Buffer

	f := &OutputFormatter{Out: &stdout, ErrOut: &stderr}
	err := f.Fail("TASK_NOT_FOUND", models.ErrTaskNotFound, "list tasks first")
	assert.Equal(t, ExitNotFound, ExitCode(err))
	assert.Empty(t, stdout.String())
	assert.Equal(t, "Error: task not found\nSuggestion: list tasks first\n", stderr.String())

	stdout.Reset()
	f = &OutputFormatter{JSON: true, Out: &stdout, ErrOut: &stderr}
	_ = f.Fail("BAD", errors.New("boom"), "")
	assert.JSONEq(t, `{"success":false,"error":{"code":"BAD","message":"boom"}}`, stdout.String())
}

func TestParseStatus(t *testing.T) {
	for raw, want := range map[string]models.Status{
		"todo":        models.StatusToDo,
		"TO_DO":       models.StatusToDo,
		"in-progress": models.StatusInProgress,
		"In Progress": models.StatusInProgress,
		"done":        models.StatusDone,
	} {
		got, err := ParseStatus(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseStatus("blocked")
	assert.ErrorIs(t, err, models.ErrInvalidStatus)
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority("High")
	require.NoError(t, err)
	assert.Equal(t, models.PriorityHigh, p)

	_, err = ParsePriority("critical")
	assert.ErrorIs(t, err, models.ErrInvalidPriority)
}

func TestDefaultDeadline(t *testing.T) {
	now := time.Date(2025, 12, 28, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-01-04", DefaultDeadline(now))
}

func TestReadText(t *testing.T) {
	got, err := ReadText("inline", strings.NewReader("ignored"))
	require.NoError(t, err)
	assert.Equal(t, "inline", got)

	got, err = ReadText("-", strings.NewReader("from stdin\n"))
	require.NoError(t, err)
	assert.Equal(t, "from stdin", got)
}
