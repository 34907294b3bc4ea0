package gateway

import (
	"context"

	"github.com/thenoetrevino/taskboard/internal/models"
)

// TaskReader defines read operations against the remote items resource.
type TaskReader interface {
	// List returns the tasks in status ordered by OrderInColumn ascending
	List(ctx context.Context, status models.Status) ([]models.Task, error)
	// Count returns the number of tasks in status
	Count(ctx context.Context, status models.Status) (int, error)
}

// TaskWriter defines write operations against the remote items resource.
type TaskWriter interface {
	Insert(ctx context.Context, task models.Task) (models.Task, error)
	Update(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error)
	BatchUpsert(ctx context.Context, updates []models.OrderUpdate) error
	Delete(ctx context.Context, id string) error
}

// ExecutorRepository defines operations on the people tasks are assigned to.
type ExecutorRepository interface {
	ListExecutors(ctx context.Context) ([]models.Executor, error)
	CreateExecutor(ctx context.Context, name, email string) (models.Executor, error)
}

// RemoteStore combines everything the gateway needs from the remote side.
// Implemented by the SQLite and Postgres stores and by the REST client.
type RemoteStore interface {
	TaskReader
	TaskWriter
	ExecutorRepository
}
