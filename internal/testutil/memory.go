package testutil

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/thenoetrevino/taskboard/internal/models"
)

// Operation names accepted by MemoryStore.Fail
const (
	OpList        = "list"
	OpCount       = "count"
	OpInsert      = "insert"
	OpUpdate      = "update"
	OpBatchUpsert = "batch_upsert"
	OpDelete      = "delete"
)

// MemoryStore is an in-memory remote store with failure injection.
// It mirrors the SQLite store closely enough for gateway and service tests.
type MemoryStore struct {
	mu        sync.Mutex
	tasks     map[string]models.Task
	seq       map[string]int
	executors []models.Executor
	nextID    int
	inserted  int
	failures  map[string]error
	calls     []string

	// OnList runs before every List call outside the lock. Tests use it to
	// block or observe background refreshes.
	OnList func(ctx context.Context, status models.Status) error
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks:    make(map[string]models.Task),
		seq:      make(map[string]int),
		failures: make(map[string]error),
	}
}

// Seed adds tasks directly, bypassing failure injection and call recording.
// Missing IDs are generated; orders are kept as given.
func (m *MemoryStore) Seed(tasks ...models.Task) []models.Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Task, len(tasks))
	for i, t := range tasks {
		if t.ID == "" {
			t.ID = m.newID()
		}
		if t.CreatedAt.IsZero() {
			t.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		}
		m.store(t)
		out[i] = t
	}
	return out
}

// Fail makes every subsequent call of op return err. A nil err clears it.
func (m *MemoryStore) Fail(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failures, op)
		return
	}
	m.failures[op] = err
}

// Calls returns the operations invoked so far, in order
func (m *MemoryStore) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls)
}

// ResetCalls clears the recorded operations
func (m *MemoryStore) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// Get returns the stored task
func (m *MemoryStore) Get(id string) (models.Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	return t, ok
}

// List implements gateway.TaskReader
func (m *MemoryStore) List(ctx context.Context, status models.Status) ([]models.Task, error) {
	if m.OnList != nil {
		if err := m.OnList(ctx, status); err != nil {
			return nil, err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(OpList); err != nil {
		return nil, err
	}
	return m.column(status), nil
}

// Count implements gateway.TaskReader
func (m *MemoryStore) Count(_ context.Context, status models.Status) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(OpCount); err != nil {
		return 0, err
	}
	return len(m.column(status)), nil
}

// Insert implements gateway.TaskWriter
func (m *MemoryStore) Insert(_ context.Context, task models.Task) (models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(OpInsert); err != nil {
		return models.Task{}, err
	}
	task.ID = m.newID()
	task.CreatedAt = time.Now().UTC()
	m.store(task)
	return task, nil
}

// Update implements gateway.TaskWriter
func (m *MemoryStore) Update(_ context.Context, id string, patch models.TaskPatch) (models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(OpUpdate); err != nil {
		return models.Task{}, err
	}
	t, ok := m.tasks[id]
	if !ok {
		return models.Task{}, fmt.Errorf("%w: %s", models.ErrTaskNotFound, id)
	}
	t = patch.ApplyTo(t)
	m.tasks[id] = t
	return t, nil
}

// BatchUpsert implements gateway.TaskWriter. All rows are applied or none.
func (m *MemoryStore) BatchUpsert(_ context.Context, updates []models.OrderUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(OpBatchUpsert); err != nil {
		return err
	}
	for _, u := range updates {
		if _, ok := m.tasks[u.ID]; !ok {
			return fmt.Errorf("%w: %s", models.ErrTaskNotFound, u.ID)
		}
	}
	for _, u := range updates {
		t := m.tasks[u.ID]
		t.OrderInColumn = u.OrderInColumn
		m.tasks[u.ID] = t
	}
	return nil
}

// Delete implements gateway.TaskWriter
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(OpDelete); err != nil {
		return err
	}
	if _, ok := m.tasks[id]; !ok {
		return fmt.Errorf("%w: %s", models.ErrTaskNotFound, id)
	}
	delete(m.tasks, id)
	delete(m.seq, id)
	return nil
}

// ListExecutors implements gateway.ExecutorRepository
func (m *MemoryStore) ListExecutors(_ context.Context) ([]models.Executor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := slices.Clone(m.executors)
	slices.SortFunc(out, func(a, b models.Executor) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return out, nil
}

// CreateExecutor implements gateway.ExecutorRepository
func (m *MemoryStore) CreateExecutor(_ context.Context, name, email string) (models.Executor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := models.Executor{ID: fmt.Sprintf("executor-%d", len(m.executors)+1), Name: name, Email: email}
	m.executors = append(m.executors, e)
	return e, nil
}

func (m *MemoryStore) record(op string) error {
	m.calls = append(m.calls, op)
	return m.failures[op]
}

func (m *MemoryStore) newID() string {
	m.nextID++
	return fmt.Sprintf("task-%d", m.nextID)
}

func (m *MemoryStore) store(t models.Task) {
	if _, exists := m.seq[t.ID]; !exists {
		m.inserted++
		m.seq[t.ID] = m.inserted
	}
	m.tasks[t.ID] = t
}

// column returns the tasks in status ordered by OrderInColumn, ties broken by
// insertion order so results are deterministic
func (m *MemoryStore) column(status models.Status) []models.Task {
	var out []models.Task
	for _, t := range m.tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b models.Task) int {
		if a.OrderInColumn != b.OrderInColumn {
			return a.OrderInColumn - b.OrderInColumn
		}
		return m.seq[a.ID] - m.seq[b.ID]
	})
	return out
}
