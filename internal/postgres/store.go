package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/thenoetrevino/taskboard/internal/models"
)

const selectItems = `
SELECT id,
       title,
       description,
       file,
       status,
       priority,
       deadline,
       executor_id,
       order_in_column,
       created_at
FROM items
`

// Store implements the remote items and executors resources on Postgres
type Store struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewStore wraps a connected pool
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, now: time.Now}
}

// List returns the tasks in status ordered by order_in_column.
// An empty status lists every task, grouped by status.
func (s *Store) List(ctx context.Context, status models.Status) ([]models.Task, error) {
	query := selectItems
	var args []any
	if status != "" {
		query += "WHERE status = $1\n"
		args = append(args, string(status))
	}
	query += `ORDER BY CASE status WHEN 'TO_DO' THEN 0 WHEN 'IN_PROGRESS' THEN 1 ELSE 2 END,
         order_in_column`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select items: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over items: %w", err)
	}
	return tasks, nil
}

// Count returns the number of tasks in status
func (s *Store) Count(ctx context.Context, status models.Status) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM items WHERE status = $1`, string(status)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return n, nil
}

// Insert stores a new task. An empty ID is replaced with a fresh UUID.
func (s *Store) Insert(ctx context.Context, task models.Task) (models.Task, error) {
	if !task.Status.Valid() {
		return models.Task{}, fmt.Errorf("%w: %q", models.ErrInvalidStatus, task.Status)
	}
	if !task.Priority.Valid() {
		return models.Task{}, fmt.Errorf("%w: %q", models.ErrInvalidPriority, task.Priority)
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = s.now().UTC()
	}

	const insertItemQuery = `
INSERT INTO items (id,
                   title,
                   description,
                   file,
                   status,
                   priority,
                   deadline,
                   executor_id,
                   order_in_column,
                   created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`
	_, err := s.pool.Exec(ctx, insertItemQuery,
		task.ID, task.Title, task.Description, task.File, string(task.Status),
		string(task.Priority), task.Deadline, nullable(task.ExecutorID),
		task.OrderInColumn, task.CreatedAt,
	)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to insert item: %w", err)
	}
	return s.get(ctx, s.pool, task.ID)
}

// Update applies patch to the task and returns the stored result
func (s *Store) Update(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error) {
	sets, args, err := patchAssignments(patch)
	if err != nil {
		return models.Task{}, err
	}
	if len(sets) == 0 {
		return s.get(ctx, s.pool, id)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE items SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.Task{}, fmt.Errorf("%w: %s", models.ErrTaskNotFound, id)
	}
	return s.get(ctx, s.pool, id)
}

// BatchUpsert rewrites order_in_column for every listed task in one
// transaction, sent as a single pgx batch
func (s *Store) BatchUpsert(ctx context.Context, updates []models.OrderUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, u := range updates {
			batch.Queue(`UPDATE items SET order_in_column = $1 WHERE id = $2`, u.OrderInColumn, u.ID)
		}

		results := tx.SendBatch(ctx, batch)
		for _, u := range updates {
			tag, err := results.Exec()
			if err != nil {
				_ = results.Close()
				return fmt.Errorf("failed to update order of %s: %w", u.ID, err)
			}
			if tag.RowsAffected() == 0 {
				_ = results.Close()
				return fmt.Errorf("%w: %s", models.ErrTaskNotFound, u.ID)
			}
		}
		return results.Close()
	})
}

// Delete removes a task
func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", models.ErrTaskNotFound, id)
	}
	return nil
}

// ListExecutors returns every executor ordered by name
func (s *Store) ListExecutors(ctx context.Context) ([]models.Executor, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, email FROM executors ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select executors: %w", err)
	}
	executors, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Executor, error) {
		var e models.Executor
		err := row.Scan(&e.ID, &e.Name, &e.Email)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan executors: %w", err)
	}
	return executors, nil
}

// CreateExecutor stores a new executor under a fresh UUID
func (s *Store) CreateExecutor(ctx context.Context, name, email string) (models.Executor, error) {
	e := models.Executor{ID: uuid.NewString(), Name: name, Email: email}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO executors (id, name, email, created_at) VALUES ($1, $2, $3, $4)`,
		e.ID, e.Name, e.Email, s.now().UTC(),
	)
	if err != nil {
		return models.Executor{}, fmt.Errorf("failed to insert executor: %w", err)
	}
	return e, nil
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (s *Store) get(ctx context.Context, q querier, id string) (models.Task, error) {
	t, err := scanTask(q.QueryRow(ctx, selectItems+"WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Task{}, fmt.Errorf("%w: %s", models.ErrTaskNotFound, id)
	}
	return t, err
}

func scanTask(row pgx.Row) (models.Task, error) {
	var (
		t                models.Task
		status, priority string
		executor         *string
	)
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.File, &status, &priority,
		&t.Deadline, &executor, &t.OrderInColumn, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Task{}, err
		}
		return models.Task{}, fmt.Errorf("failed to scan item: %w", err)
	}
	t.Status = models.Status(status)
	t.Priority = models.Priority(priority)
	if executor != nil {
		t.ExecutorID = *executor
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return t, nil
}

// nullable stores "" as NULL
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// patchAssignments turns a patch into numbered SET clauses with their arguments
func patchAssignments(p models.TaskPatch) ([]string, []any, error) {
	var (
		sets []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if p.Title != nil {
		add("title", *p.Title)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.File != nil {
		add("file", *p.File)
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			return nil, nil, fmt.Errorf("%w: %q", models.ErrInvalidStatus, *p.Status)
		}
		add("status", string(*p.Status))
	}
	if p.Priority != nil {
		if !p.Priority.Valid() {
			return nil, nil, fmt.Errorf("%w: %q", models.ErrInvalidPriority, *p.Priority)
		}
		add("priority", string(*p.Priority))
	}
	if p.Deadline != nil {
		add("deadline", *p.Deadline)
	}
	if p.ExecutorID != nil {
		add("executor_id", nullable(*p.ExecutorID))
	}
	if p.OrderInColumn != nil {
		add("order_in_column", *p.OrderInColumn)
	}
	return sets, args, nil
}
