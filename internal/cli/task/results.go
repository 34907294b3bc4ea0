package task

import (
	"fmt"
	"strings"

	"github.com/thenoetrevino/taskboard/internal/board"
	"github.com/thenoetrevino/taskboard/internal/cli/styles"
	"github.com/thenoetrevino/taskboard/internal/models"
)

// taskResult is a single task in command output
type taskResult struct {
	models.Task
	verb string
}

func (r taskResult) GetID() string {
	return r.ID
}

func (r taskResult) String() string {
	if r.verb == "" {
		return styles.RenderCard(styles.RenderTaskDetail(r.Task))
	}
	return fmt.Sprintf("✓ Task '%s' %s (ID: %s)\n  Column: %s, position %d",
		r.Title, r.verb, r.ID, r.Status.Label(), r.OrderInColumn)
}

// boardResult is the board, or one column of it, in command output
type boardResult struct {
	ToDo       []models.Task `json:"TO_DO"`
	InProgress []models.Task `json:"IN_PROGRESS"`
	Done       []models.Task `json:"DONE"`

	only models.Status
}

func newBoardResult(b *board.Board, only models.Status) boardResult {
	nonNil := func(s models.Status) []models.Task {
		if only != "" && s != only {
			return []models.Task{}
		}
		tasks := b.Column(s)
		if tasks == nil {
			return []models.Task{}
		}
		return tasks
	}
	return boardResult{
		ToDo:       nonNil(models.StatusToDo),
		InProgress: nonNil(models.StatusInProgress),
		Done:       nonNil(models.StatusDone),
		only:       only,
	}
}

func (r boardResult) column(s models.Status) []models.Task {
	switch s {
	case models.StatusToDo:
		return r.ToDo
	case models.StatusInProgress:
		return r.InProgress
	default:
		return r.Done
	}
}

// IDs lists every task, column by column
func (r boardResult) IDs() []string {
	var ids []string
	for _, s := range models.Statuses {
		for _, t := range r.column(s) {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

func (r boardResult) String() string {
	var sb strings.Builder
	for _, s := range models.Statuses {
		if r.only != "" && s != r.only {
			continue
		}
		tasks := r.column(s)
		sb.WriteString(styles.SectionStyle.Render(fmt.Sprintf("%s (%d)", s.Label(), len(tasks))))
		sb.WriteString("\n")
		if len(tasks) == 0 {
			sb.WriteString(styles.SubtitleStyle.Render("  No tasks"))
			sb.WriteString("\n")
		}
		for _, t := range tasks {
			sb.WriteString(styles.RenderTaskLine(t))
			sb.WriteString("\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// actionResult reports a move, reorder or delete
type actionResult struct {
	TaskID string        `json:"task_id"`
	Action string        `json:"action"`
	Status models.Status `json:"status"`
	Order  int           `json:"orderInColumn"`
}

func (r actionResult) GetID() string {
	return r.TaskID
}

func (r actionResult) String() string {
	switch r.Action {
	case "deleted":
		return fmt.Sprintf("✓ Task %s deleted successfully", r.TaskID)
	default:
		return fmt.Sprintf("✓ Task %s %s to %s, position %d", r.TaskID, r.Action, r.Status.Label(), r.Order)
	}
}
