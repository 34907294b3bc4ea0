package board

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/taskboard/internal/models"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

// newTestBoard fills each status with n tasks named "<prefix><i>"
func newTestBoard(t *testing.T, counts map[models.Status]int) *Board {
	t.Helper()
	b := New()
	for _, status := range models.Statuses {
		for i := 0; i < counts[status]; i++ {
			_, err := b.Insert(models.Task{
				ID:       fmt.Sprintf("%s-%d", status, i),
				Title:    fmt.Sprintf("Task %d", i),
				Status:   status,
				Priority: models.PriorityMedium,
				Deadline: "2025-01-01",
			})
			require.NoError(t, err)
		}
	}
	require.NoError(t, b.Validate())
	return b
}

func ids(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func orders(tasks []models.Task) []int {
	out := make([]int, len(tasks))
	for i, t := range tasks {
		out[i] = t.OrderInColumn
	}
	return out
}

// ============================================================================
// MUTATION TESTS
// ============================================================================

func TestInsertAppendsAtEnd(t *testing.T) {
	b := newTestBoard(t, map[models.Status]int{models.StatusToDo: 2})

	stored, err := b.Insert(models.Task{ID: "new", Status: models.StatusToDo, OrderInColumn: 99})
	require.NoError(t, err)

	assert.Equal(t, 2, stored.OrderInColumn)
	assert.Equal(t, []string{"TO_DO-0", "TO_DO-1", "new"}, ids(b.Column(models.StatusToDo)))
	assert.NoError(t, b.Validate())
}

func TestInsertRejectsUnknownStatus(t *testing.T) {
	b := New()
	_, err := b.Insert(models.Task{ID: "x", Status: "BLOCKED"})
	assert.ErrorIs(t, err, models.ErrInvalidStatus)
}

func TestRemoveMiddleRenumbers(t *testing.T) {
	b := newTestBoard(t, map[models.Status]int{models.StatusToDo: 3})

	_, err := b.Remove("TO_DO-1", models.StatusToDo)
	require.NoError(t, err)

	col := b.Column(models.StatusToDo)
	assert.Equal(t, []string{"TO_DO-0", "TO_DO-2"}, ids(col))
	assert.Equal(t, []int{0, 1}, orders(col))
}

func TestRemoveFromWrongColumn(t *testing.T) {
	b := newTestBoard(t, map[models.Status]int{models.StatusToDo: 1})
	_, err := b.Remove("TO_DO-0", models.StatusDone)
	assert.ErrorIs(t, err, models.ErrTaskNotFound)
	assert.Equal(t, 1, b.Len(models.StatusToDo))
}

func TestMoveAppendsAndRenumbersSource(t *testing.T) {
	b := newTestBoard(t, map[models.Status]int{models.StatusToDo: 3, models.StatusDone: 2})

	require.NoError(t, b.Move("TO_DO-0", models.StatusToDo, models.StatusDone))

	todo := b.Column(models.StatusToDo)
	done := b.Column(models.StatusDone)
	assert.Equal(t, []string{"TO_DO-1", "TO_DO-2"}, ids(todo))
	assert.Equal(t, []int{0, 1}, orders(todo))
	assert.Equal(t, "TO_DO-0", done[2].ID)
	assert.Equal(t, 2, done[2].OrderInColumn)
	assert.Equal(t, models.StatusDone, done[2].Status)
	assert.NoError(t, b.Validate())
}

func TestMoveThereAndBackKeepsRelativeOrder(t *testing.T) {
	b := newTestBoard(t, map[models.Status]int{models.StatusToDo: 4, models.StatusInProgress: 1})

	require.NoError(t, b.Move("TO_DO-1", models.StatusToDo, models.StatusInProgress))
	require.NoError(t, b.Move("TO_DO-1", models.StatusInProgress, models.StatusToDo))

	// The moved task lands at the end, the untouched tasks keep their order.
	assert.Equal(t, []string{"TO_DO-0", "TO_DO-2", "TO_DO-3", "TO_DO-1"}, ids(b.Column(models.StatusToDo)))
	assert.NoError(t, b.Validate())
}

func TestReorderToOwnIndexIsNoop(t *testing.T) {
	b := newTestBoard(t, map[models.Status]int{models.StatusInProgress: 3})
	before := b.Clone()

	require.NoError(t, b.Reorder("IN_PROGRESS-1", models.StatusInProgress, 1))

	assert.True(t, before.Equal(b))
}

func TestReorderFromEndToStart(t *testing.T) {
	b := newTestBoard(t, map[models.Status]int{models.StatusInProgress: 3})

	require.NoError(t, b.Reorder("IN_PROGRESS-2", models.StatusInProgress, 0))

	col := b.Column(models.StatusInProgress)
	assert.Equal(t, []string{"IN_PROGRESS-2", "IN_PROGRESS-0", "IN_PROGRESS-1"}, ids(col))
	assert.Equal(t, []int{0, 1, 2}, orders(col))
}

func TestReorderClampsTarget(t *testing.T) {
	b := newTestBoard(t, map[models.Status]int{models.StatusToDo: 3})

	require.NoError(t, b.Reorder("TO_DO-0", models.StatusToDo, 42))

	assert.Equal(t, []string{"TO_DO-1", "TO_DO-2", "TO_DO-0"}, ids(b.Column(models.StatusToDo)))
	assert.NoError(t, b.Validate())
}

func TestUpdateKeepsPosition(t *testing.T) {
	b := newTestBoard(t, map[models.Status]int{models.StatusToDo: 3})
	title := "Renamed"
	done := models.StatusDone

	updated, err := b.Update("TO_DO-1", models.TaskPatch{Title: &title, Status: &done})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, models.StatusToDo, updated.Status, "status changes go through Move")
	assert.Equal(t, 1, updated.OrderInColumn)
	assert.Equal(t, "Renamed", b.Column(models.StatusToDo)[1].Title)
}

func TestUpdateMissingTask(t *testing.T) {
	b := New()
	_, err := b.Update("ghost", models.TaskPatch{})
	assert.ErrorIs(t, err, models.ErrTaskNotFound)
}

func TestDenseAfterMixedSequence(t *testing.T) {
	b := newTestBoard(t, map[models.Status]int{
		models.StatusToDo:       5,
		models.StatusInProgress: 3,
		models.StatusDone:       2,
	})

	require.NoError(t, b.Move("TO_DO-2", models.StatusToDo, models.StatusDone))
	require.NoError(t, b.Reorder("DONE-1", models.StatusDone, 0))
	_, err := b.Remove("IN_PROGRESS-0", models.StatusInProgress)
	require.NoError(t, err)
	_, err = b.Insert(models.Task{ID: "late", Status: models.StatusInProgress})
	require.NoError(t, err)
	require.NoError(t, b.Move("TO_DO-4", models.StatusToDo, models.StatusInProgress))
	require.NoError(t, b.Reorder("TO_DO-0", models.StatusToDo, 2))

	assert.NoError(t, b.Validate())
	assert.Equal(t, 10, b.Total())
}

// ============================================================================
// PROJECTION & COPY TESTS
// ============================================================================

func TestProjectMoveDoesNotMutate(t *testing.T) {
	b := newTestBoard(t, map[models.Status]int{models.StatusToDo: 2, models.StatusDone: 1})
	before := b.Clone()

	projected := b.ProjectMove("TO_DO-0", models.StatusToDo, models.StatusDone)

	assert.True(t, before.Equal(b), "receiver must be untouched")
	assert.Equal(t, []string{"TO_DO-1"}, ids(projected.Column(models.StatusToDo)))
	done := projected.Column(models.StatusDone)
	assert.Equal(t, []string{"DONE-0", "TO_DO-0"}, ids(done))
	assert.Equal(t, models.StatusDone, done[1].Status)
}

func TestCloneIsDeep(t *testing.T) {
	b := newTestBoard(t, map[models.Status]int{models.StatusToDo: 2})
	c := b.Clone()

	_, err := c.Remove("TO_DO-0", models.StatusToDo)
	require.NoError(t, err)

	assert.Equal(t, 2, b.Len(models.StatusToDo))
	assert.Equal(t, 0, b.Column(models.StatusToDo)[0].OrderInColumn)
}

func TestFromTasksSortsByOrder(t *testing.T) {
	b, err := FromTasks([]models.Task{
		{ID: "c", Status: models.StatusDone, OrderInColumn: 1},
		{ID: "a", Status: models.StatusToDo, OrderInColumn: 1},
		{ID: "b", Status: models.StatusToDo, OrderInColumn: 0},
		{ID: "d", Status: models.StatusDone, OrderInColumn: 0},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "a"}, ids(b.Column(models.StatusToDo)))
	assert.Equal(t, []string{"d", "c"}, ids(b.Column(models.StatusDone)))
	assert.NoError(t, b.Validate())
}

func TestLocate(t *testing.T) {
	b := newTestBoard(t, map[models.Status]int{models.StatusInProgress: 2})

	status, idx, ok := b.Locate("IN_PROGRESS-1")
	assert.True(t, ok)
	assert.Equal(t, models.StatusInProgress, status)
	assert.Equal(t, 1, idx)

	_, _, ok = b.Locate("nope")
	assert.False(t, ok)
}

func TestValidateDetectsGap(t *testing.T) {
	b := New()
	require.NoError(t, b.SetColumn(models.StatusToDo, []models.Task{
		{ID: "a", Status: models.StatusToDo, OrderInColumn: 0},
		{ID: "b", Status: models.StatusToDo, OrderInColumn: 2},
	}))
	assert.ErrorIs(t, b.Validate(), ErrOrderViolation)
}

func TestReordered(t *testing.T) {
	tasks := []models.Task{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	out := Reordered(tasks, 0, 2)
	assert.Equal(t, []string{"b", "c", "a"}, ids(out))
	assert.Equal(t, []int{0, 1, 2}, orders(out))
	assert.Equal(t, []string{"a", "b", "c"}, ids(tasks), "input must be untouched")
}
