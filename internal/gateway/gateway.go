// Package gateway executes the authoritative board operations against the remote store
// and keeps every column densely numbered there.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/thenoetrevino/taskboard/internal/board"
	"github.com/thenoetrevino/taskboard/internal/models"
)

// Gateway performs the multi-step remote operations. Each step is a separate
// remote request; a concurrent writer can interleave between them.
type Gateway struct {
	remote RemoteStore
	logger *slog.Logger
}

// Option configures a gateway
type Option func(*Gateway)

// WithLogger sets the logger used for integrity warnings
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates a gateway over the given remote store
func New(remote RemoteStore, opts ...Option) *Gateway {
	g := &Gateway{remote: remote, logger: slog.Default()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// FetchBoard lists all three columns. A board that is not densely numbered
// is still returned, with a warning; the next renumbering write repairs it.
func (g *Gateway) FetchBoard(ctx context.Context) (*board.Board, error) {
	var all []models.Task
	for _, status := range models.Statuses {
		tasks, err := g.remote.List(ctx, status)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", status, err)
		}
		all = append(all, tasks...)
	}

	b, err := board.FromTasks(all)
	if err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		g.logger.Warn("remote board is not densely ordered", "error", err)
	}
	return b, nil
}

// Create appends a new task to status. The draft's ID, order and creation
// time are assigned by the remote store.
func (g *Gateway) Create(ctx context.Context, draft models.Task, status models.Status) (models.Task, error) {
	count, err := g.remote.Count(ctx, status)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to count %s: %w", status, err)
	}

	draft.ID = ""
	draft.Status = status
	draft.OrderInColumn = count

	created, err := g.remote.Insert(ctx, draft)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to insert task: %w", err)
	}
	return created, nil
}

// Update edits the non-positional fields of a task
func (g *Gateway) Update(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error) {
	if patch.Status != nil || patch.OrderInColumn != nil {
		return models.Task{}, ErrPositionalPatch
	}
	updated, err := g.remote.Update(ctx, id, patch)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to update task %s: %w", id, err)
	}
	return updated, nil
}

// Move appends the task to dst and renumbers src
func (g *Gateway) Move(ctx context.Context, id string, src, dst models.Status) error {
	srcTasks, err := g.remote.List(ctx, src)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", src, err)
	}
	if indexOf(srcTasks, id) < 0 {
		return fmt.Errorf("%w: task %s is not in %s", ErrIntegrity, id, src)
	}

	count, err := g.remote.Count(ctx, dst)
	if err != nil {
		return fmt.Errorf("failed to count %s: %w", dst, err)
	}

	order := count
	if _, err := g.remote.Update(ctx, id, models.TaskPatch{Status: &dst, OrderInColumn: &order}); err != nil {
		return fmt.Errorf("failed to move task %s: %w", id, err)
	}

	return g.renumber(ctx, src)
}

// Reorder moves the task to newOrder within status and renumbers the whole
// column with one batched upsert. Reordering to the current index writes nothing.
func (g *Gateway) Reorder(ctx context.Context, id string, status models.Status, newOrder int) error {
	tasks, err := g.remote.List(ctx, status)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", status, err)
	}

	current := indexOf(tasks, id)
	if current < 0 {
		return fmt.Errorf("%w: task %s is not in %s", ErrIntegrity, id, status)
	}

	target := max(0, min(newOrder, len(tasks)-1))
	if target == current && isDense(tasks) {
		return nil
	}

	reordered := board.Reordered(tasks, current, target)
	if err := g.remote.BatchUpsert(ctx, orderUpdates(reordered)); err != nil {
		return fmt.Errorf("failed to reorder %s: %w", status, err)
	}
	return nil
}

// Delete removes the task and renumbers the remaining tasks in status
func (g *Gateway) Delete(ctx context.Context, id string, status models.Status) error {
	tasks, err := g.remote.List(ctx, status)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", status, err)
	}
	if indexOf(tasks, id) < 0 {
		return fmt.Errorf("%w: task %s is not in %s", ErrIntegrity, id, status)
	}

	if err := g.remote.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	return g.renumber(ctx, status)
}

// ListExecutors returns every executor ordered by name
func (g *Gateway) ListExecutors(ctx context.Context) ([]models.Executor, error) {
	return g.remote.ListExecutors(ctx)
}

// CreateExecutor adds a new executor
func (g *Gateway) CreateExecutor(ctx context.Context, name, email string) (models.Executor, error) {
	return g.remote.CreateExecutor(ctx, name, email)
}

// renumber rewrites status to a dense 0..n-1 sequence in its current order
func (g *Gateway) renumber(ctx context.Context, status models.Status) error {
	tasks, err := g.remote.List(ctx, status)
	if err != nil {
		return fmt.Errorf("failed to list %s for renumbering: %w", status, err)
	}
	if len(tasks) == 0 {
		return nil
	}
	if err := g.remote.BatchUpsert(ctx, orderUpdates(board.Renumbered(tasks))); err != nil {
		return fmt.Errorf("failed to renumber %s: %w", status, err)
	}
	return nil
}

func orderUpdates(tasks []models.Task) []models.OrderUpdate {
	updates := make([]models.OrderUpdate, len(tasks))
	for i, t := range tasks {
		updates[i] = models.OrderUpdate{ID: t.ID, OrderInColumn: t.OrderInColumn}
	}
	return updates
}

func indexOf(tasks []models.Task, id string) int {
	return slices.IndexFunc(tasks, func(t models.Task) bool { return t.ID == id })
}

func isDense(tasks []models.Task) bool {
	for i, t := range tasks {
		if t.OrderInColumn != i {
			return false
		}
	}
	return true
}
