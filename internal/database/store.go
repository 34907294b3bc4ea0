package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/thenoetrevino/taskboard/internal/models"
)

const itemColumns = `id, title, description, file, status, priority, deadline,
	executor_id, order_in_column, created_at`

// Store implements the remote items and executors resources on SQLite
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore wraps an initialized database
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// ============================================================================
// Items
// ============================================================================

// List returns the tasks in status ordered by order_in_column.
// An empty status lists every task, grouped by status.
func (s *Store) List(ctx context.Context, status models.Status) ([]models.Task, error) {
	query := `SELECT ` + itemColumns + ` FROM items`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY CASE status
		WHEN 'TO_DO' THEN 0 WHEN 'IN_PROGRESS' THEN 1 ELSE 2 END,
		order_in_column`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return tasks, nil
}

// Count returns the number of tasks in status
func (s *Store) Count(ctx context.Context, status models.Status) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items WHERE status = ?`, status).Scan(&n)
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

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO items (`+itemColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.Title, task.Description, task.File, task.Status, task.Priority,
		task.Deadline, stringToNull(task.ExecutorID), task.OrderInColumn, task.CreatedAt,
	)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to insert item: %w", err)
	}
	return s.get(ctx, s.db, task.ID)
}

// Update applies patch to the task and returns the stored result
func (s *Store) Update(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error) {
	sets, args, err := patchAssignments(patch)
	if err != nil {
		return models.Task{}, err
	}

	var updated models.Task
	err = withTx(ctx, s.db, func(tx *sql.Tx) error {
		if len(sets) > 0 {
			query := `UPDATE items SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
			res, err := tx.ExecContext(ctx, query, append(args, id)...)
			if err != nil {
				return fmt.Errorf("failed to update item: %w", err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return fmt.Errorf("%w: %s", models.ErrTaskNotFound, id)
			}
		}
		var err error
		updated, err = s.get(ctx, tx, id)
		return err
	})
	if err != nil {
		return models.Task{}, err
	}
	return updated, nil
}

// BatchUpsert rewrites order_in_column for every listed task in one
// transaction. Either all rows change or none do.
func (s *Store) BatchUpsert(ctx context.Context, updates []models.OrderUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `UPDATE items SET order_in_column = ? WHERE id = ?`)
		if err != nil {
			return fmt.Errorf("failed to prepare order update: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, u := range updates {
			res, err := stmt.ExecContext(ctx, u.OrderInColumn, u.ID)
			if err != nil {
				return fmt.Errorf("failed to update order of %s: %w", u.ID, err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return fmt.Errorf("%w: %s", models.ErrTaskNotFound, u.ID)
			}
		}
		return nil
	})
}

// Delete removes a task
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", models.ErrTaskNotFound, id)
	}
	return nil
}

// ============================================================================
// Executors
// ============================================================================

// ListExecutors returns every executor ordered by name
func (s *Store) ListExecutors(ctx context.Context) ([]models.Executor, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, email FROM executors ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list executors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Executor
	for rows.Next() {
		var e models.Executor
		if err := rows.Scan(&e.ID, &e.Name, &e.Email); err != nil {
			return nil, fmt.Errorf("failed to scan executor: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CreateExecutor stores a new executor under a fresh UUID
func (s *Store) CreateExecutor(ctx context.Context, name, email string) (models.Executor, error) {
	e := models.Executor{ID: uuid.NewString(), Name: name, Email: email}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO executors (id, name, email, created_at) VALUES (?, ?, ?, ?)`,
		e.ID, e.Name, e.Email, s.now().UTC(),
	)
	if err != nil {
		return models.Executor{}, fmt.Errorf("failed to create executor: %w", err)
	}
	return e, nil
}

// ============================================================================
// Helpers
// ============================================================================

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) get(ctx context.Context, q queryer, id string) (models.Task, error) {
	row := q.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, fmt.Errorf("%w: %s", models.ErrTaskNotFound, id)
	}
	return t, err
}

func scanTask(row scanner) (models.Task, error) {
	var (
		t        models.Task
		executor sql.NullString
	)
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.File, &t.Status, &t.Priority,
		&t.Deadline, &executor, &t.OrderInColumn, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, err
		}
		return models.Task{}, fmt.Errorf("failed to scan item: %w", err)
	}
	t.ExecutorID = nullStringToString(executor)
	t.CreatedAt = t.CreatedAt.UTC()
	return t, nil
}

// patchAssignments turns a patch into SET clauses with their arguments
func patchAssignments(p models.TaskPatch) ([]string, []any, error) {
	var (
		sets []string
		args []any
	)
	add := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
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
		add("status", *p.Status)
	}
	if p.Priority != nil {
		if !p.Priority.Valid() {
			return nil, nil, fmt.Errorf("%w: %q", models.ErrInvalidPriority, *p.Priority)
		}
		add("priority", *p.Priority)
	}
	if p.Deadline != nil {
		add("deadline", *p.Deadline)
	}
	if p.ExecutorID != nil {
		add("executor_id", stringToNull(*p.ExecutorID))
	}
	if p.OrderInColumn != nil {
		add("order_in_column", *p.OrderInColumn)
	}
	return sets, args, nil
}
