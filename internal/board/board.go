// Package board holds the three ordered task columns and the pure operations on them.
package board

import (
	"fmt"
	"slices"

	"github.com/thenoetrevino/taskboard/internal/models"
)

// Board is the full three-column state. The zero value is an empty board.
// Every operation that changes a column's membership renumbers that column to 0..n-1.
type Board struct {
	columns [len(models.Statuses)][]models.Task
}

// New returns an empty board
func New() *Board {
	return &Board{}
}

// FromTasks groups tasks by status, ordering each column by OrderInColumn.
// Tasks with an unknown status are rejected.
func FromTasks(tasks []models.Task) (*Board, error) {
	b := New()
	for _, t := range tasks {
		idx := t.Status.Index()
		if idx < 0 {
			return nil, fmt.Errorf("%w: task %s has status %q", models.ErrInvalidStatus, t.ID, t.Status)
		}
		b.columns[idx] = append(b.columns[idx], t)
	}
	for i := range b.columns {
		slices.SortStableFunc(b.columns[i], func(a, c models.Task) int {
			return a.OrderInColumn - c.OrderInColumn
		})
	}
	return b, nil
}

// SetColumn replaces a column wholesale with the given ordered tasks
func (b *Board) SetColumn(status models.Status, tasks []models.Task) error {
	idx := status.Index()
	if idx < 0 {
		return fmt.Errorf("%w: %q", models.ErrInvalidStatus, status)
	}
	b.columns[idx] = slices.Clone(tasks)
	return nil
}

// Column returns a copy of the tasks in status, in order
func (b *Board) Column(status models.Status) []models.Task {
	idx := status.Index()
	if idx < 0 {
		return nil
	}
	return slices.Clone(b.columns[idx])
}

// Len returns the number of tasks in status
func (b *Board) Len(status models.Status) int {
	idx := status.Index()
	if idx < 0 {
		return 0
	}
	return len(b.columns[idx])
}

// Total returns the number of tasks on the board
func (b *Board) Total() int {
	n := 0
	for _, col := range b.columns {
		n += len(col)
	}
	return n
}

// Locate finds a task by linear scan across the three columns
func (b *Board) Locate(id string) (models.Status, int, bool) {
	for i, col := range b.columns {
		for j := range col {
			if col[j].ID == id {
				return models.Statuses[i], j, true
			}
		}
	}
	return "", -1, false
}

// Task returns a copy of the task with the given ID
func (b *Board) Task(id string) (models.Task, bool) {
	status, idx, ok := b.Locate(id)
	if !ok {
		return models.Task{}, false
	}
	return b.columns[status.Index()][idx], true
}

// Clone returns a deep copy. Tasks hold only value fields, so copying
// the column slices is sufficient.
func (b *Board) Clone() *Board {
	c := New()
	for i, col := range b.columns {
		if col != nil {
			c.columns[i] = slices.Clone(col)
		}
	}
	return c
}

// Equal reports whether two boards hold identical tasks in identical order
func (b *Board) Equal(other *Board) bool {
	if other == nil {
		return false
	}
	for i := range b.columns {
		if !slices.Equal(b.columns[i], other.columns[i]) {
			return false
		}
	}
	return true
}

// ============================================================================
// MUTATIONS
// ============================================================================

// Insert appends t to the end of its status column and returns the stored copy
func (b *Board) Insert(t models.Task) (models.Task, error) {
	idx := t.Status.Index()
	if idx < 0 {
		return models.Task{}, fmt.Errorf("%w: %q", models.ErrInvalidStatus, t.Status)
	}
	t.OrderInColumn = len(b.columns[idx])
	b.columns[idx] = append(b.columns[idx], t)
	return t, nil
}

// Update applies patch to the task in place. Status and order are kept:
// column changes go through Move.
func (b *Board) Update(id string, patch models.TaskPatch) (models.Task, error) {
	status, pos, ok := b.Locate(id)
	if !ok {
		return models.Task{}, fmt.Errorf("%w: %s", models.ErrTaskNotFound, id)
	}
	col := b.columns[status.Index()]
	updated := patch.ApplyTo(col[pos])
	updated.Status = status
	updated.OrderInColumn = col[pos].OrderInColumn
	col[pos] = updated
	return updated, nil
}

// Remove deletes the task from status and renumbers the column
func (b *Board) Remove(id string, status models.Status) (models.Task, error) {
	idx, pos, err := b.find(id, status)
	if err != nil {
		return models.Task{}, err
	}
	removed := b.columns[idx][pos]
	b.columns[idx] = slices.Delete(b.columns[idx], pos, pos+1)
	b.renumber(idx)
	return removed, nil
}

// Move takes the task out of src, appends it to dst with dst status, and
// renumbers src
func (b *Board) Move(id string, src, dst models.Status) error {
	dstIdx := dst.Index()
	if dstIdx < 0 {
		return fmt.Errorf("%w: %q", models.ErrInvalidStatus, dst)
	}
	srcIdx, pos, err := b.find(id, src)
	if err != nil {
		return err
	}
	moved := b.columns[srcIdx][pos]
	b.columns[srcIdx] = slices.Delete(b.columns[srcIdx], pos, pos+1)
	b.renumber(srcIdx)

	moved.Status = dst
	moved.OrderInColumn = len(b.columns[dstIdx])
	b.columns[dstIdx] = append(b.columns[dstIdx], moved)
	return nil
}

// Reorder moves the task to newIndex within status and renumbers the column.
// newIndex is clamped to the column bounds.
func (b *Board) Reorder(id string, status models.Status, newIndex int) error {
	idx, pos, err := b.find(id, status)
	if err != nil {
		return err
	}
	b.columns[idx] = reorder(b.columns[idx], pos, newIndex)
	b.renumber(idx)
	return nil
}

// ProjectMove returns a copy of the board as it would look with the task moved
// from origin to target. The receiver is not modified. If the task is not in
// origin the copy is returned unchanged.
func (b *Board) ProjectMove(id string, origin, target models.Status) *Board {
	projected := b.Clone()
	if origin == target {
		return projected
	}
	_ = projected.Move(id, origin, target)
	return projected
}

// Validate checks that every column is a dense 0..n-1 permutation with
// matching statuses and that no ID appears twice
func (b *Board) Validate() error {
	seen := make(map[string]struct{}, b.Total())
	for i, col := range b.columns {
		status := models.Statuses[i]
		for pos, t := range col {
			if t.Status != status {
				return fmt.Errorf("%w: task %s in %s column has status %s", ErrOrderViolation, t.ID, status, t.Status)
			}
			if t.OrderInColumn != pos {
				return fmt.Errorf("%w: task %s in %s has order %d at position %d", ErrOrderViolation, t.ID, status, t.OrderInColumn, pos)
			}
			if _, dup := seen[t.ID]; dup {
				return fmt.Errorf("%w: task %s appears twice", ErrOrderViolation, t.ID)
			}
			seen[t.ID] = struct{}{}
		}
	}
	return nil
}

func (b *Board) find(id string, status models.Status) (int, int, error) {
	idx := status.Index()
	if idx < 0 {
		return 0, 0, fmt.Errorf("%w: %q", models.ErrInvalidStatus, status)
	}
	pos := slices.IndexFunc(b.columns[idx], func(t models.Task) bool { return t.ID == id })
	if pos < 0 {
		return 0, 0, fmt.Errorf("%w: %s not in %s", models.ErrTaskNotFound, id, status)
	}
	return idx, pos, nil
}

func (b *Board) renumber(idx int) {
	for i := range b.columns[idx] {
		b.columns[idx][i].OrderInColumn = i
	}
}

// reorder returns tasks with the element at from reinserted at to.
// Shared with the sync gateway so both sides agree on the resulting order.
func reorder(tasks []models.Task, from, to int) []models.Task {
	moved := tasks[from]
	out := slices.Delete(slices.Clone(tasks), from, from+1)
	to = max(0, min(to, len(out)))
	return slices.Insert(out, to, moved)
}

// Reordered returns a copy of tasks with the task at from moved to to and every
// OrderInColumn renumbered to its new index
func Reordered(tasks []models.Task, from, to int) []models.Task {
	out := reorder(tasks, from, to)
	for i := range out {
		out[i].OrderInColumn = i
	}
	return out
}

// Renumbered returns a copy of tasks with OrderInColumn set to each index
func Renumbered(tasks []models.Task) []models.Task {
	out := slices.Clone(tasks)
	for i := range out {
		out[i].OrderInColumn = i
	}
	return out
}
