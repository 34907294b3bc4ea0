package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/thenoetrevino/taskboard/internal/board"
	"github.com/thenoetrevino/taskboard/internal/events"
	"github.com/thenoetrevino/taskboard/internal/models"
)

// Service defines all task-related business operations.
// Every mutation is applied to the board optimistically, rolled back if the
// remote request fails, and followed by a full refresh either way.
type Service interface {
	// Read operations
	Load(ctx context.Context) error
	Refresh(ctx context.Context) error
	RefreshInBackground()
	Board() (*board.Board, bool)

	// Write operations
	CreateTask(ctx context.Context, req CreateTaskRequest) (models.Task, error)
	UpdateTask(ctx context.Context, req UpdateTaskRequest) (models.Task, error)
	DeleteTask(ctx context.Context, req DeleteTaskRequest) error

	// Task movements
	MoveTask(ctx context.Context, req MoveTaskRequest) error
	ReorderTask(ctx context.Context, req ReorderTaskRequest) error
}

// Gateway is the remote side of every mutation
type Gateway interface {
	FetchBoard(ctx context.Context) (*board.Board, error)
	Create(ctx context.Context, draft models.Task, status models.Status) (models.Task, error)
	Update(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error)
	Move(ctx context.Context, id string, src, dst models.Status) error
	Reorder(ctx context.Context, id string, status models.Status, newOrder int) error
	Delete(ctx context.Context, id string, status models.Status) error
}

// Option configures a service
type Option func(*service)

// WithLogger sets the logger used for rollback diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// WithEventPublisher makes the service announce settled writes so other
// clients refresh. Only set it when this process writes to the store directly.
func WithEventPublisher(ec events.EventPublisher) Option {
	return func(s *service) {
		s.eventClient = ec
	}
}

// WithClock overrides the time source used for optimistic placeholders
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// service implements Service interface
type service struct {
	gateway     Gateway
	store       *board.Store
	eventClient events.EventPublisher
	logger      *slog.Logger
	now         func() time.Time

	// mu serializes mutations end to end: apply, remote call, settle
	mu sync.Mutex

	// refreshMu guards the background refresh bookkeeping. A refresh only
	// publishes if refreshGen still equals the generation it started with.
	refreshMu      sync.Mutex
	refreshGen     uint64
	refreshCancel  context.CancelFunc
	mutating       bool
	refreshPending bool
}

// NewService creates a new task service publishing into store
func NewService(gateway Gateway, store *board.Store, opts ...Option) Service {
	s := &service{
		gateway: gateway,
		store:   store,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Board returns a copy of the current board and whether it has been loaded
func (s *service) Board() (*board.Board, bool) {
	return s.store.Snapshot()
}

// Load fetches the board for the first time
func (s *service) Load(ctx context.Context) error {
	return s.Refresh(ctx)
}

// Refresh replaces the board with the remote state
func (s *service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked(ctx)
}

// RefreshInBackground starts a refresh that is discarded if a mutation
// begins before it completes. While a mutation is in flight the request is
// folded into that mutation's own settle refresh.
func (s *service) RefreshInBackground() {
	s.refreshMu.Lock()
	if s.mutating {
		s.refreshPending = true
		s.refreshMu.Unlock()
		return
	}
	if s.refreshCancel != nil {
		s.refreshCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.refreshGen++
	gen := s.refreshGen
	s.refreshCancel = cancel
	s.refreshMu.Unlock()

	go func() {
		defer cancel()
		b, err := s.gateway.FetchBoard(ctx)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				s.logger.Warn("background refresh failed", "error", err)
			}
			return
		}
		s.publishIfCurrent(gen, b)
	}()
}

// CreateTask appends a new task to the end of its column
func (s *service) CreateTask(ctx context.Context, req CreateTaskRequest) (models.Task, error) {
	if err := validateCreateTask(req); err != nil {
		return models.Task{}, err
	}

	draft := models.Task{
		Title:       req.Title,
		Description: req.Description,
		File:        req.File,
		Status:      req.Status,
		Priority:    req.Priority,
		Deadline:    req.Deadline,
		ExecutorID:  req.ExecutorID,
	}

	var created models.Task
	err := s.mutate(ctx, "create", []models.Status{req.Status},
		func(b *board.Board) error {
			placeholder := draft
			now := s.now()
			placeholder.ID = fmt.Sprintf("%s%d", models.TempIDPrefix, now.UnixMilli())
			placeholder.CreatedAt = now
			_, err := b.Insert(placeholder)
			return err
		},
		func(ctx context.Context) error {
			var err error
			created, err = s.gateway.Create(ctx, draft, req.Status)
			return err
		},
	)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	return created, nil
}

// UpdateTask edits a task in place, keeping its position
func (s *service) UpdateTask(ctx context.Context, req UpdateTaskRequest) (models.Task, error) {
	if err := validateUpdateTask(req); err != nil {
		return models.Task{}, err
	}
	if err := s.rejectTemporary(req.TaskID); err != nil {
		return models.Task{}, err
	}

	patch := req.patch()
	var updated models.Task
	err := s.mutate(ctx, "update", nil,
		func(b *board.Board) error {
			_, err := b.Update(req.TaskID, patch)
			return err
		},
		func(ctx context.Context) error {
			var err error
			updated, err = s.gateway.Update(ctx, req.TaskID, patch)
			return err
		},
	)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to update task: %w", err)
	}
	return updated, nil
}

// MoveTask moves a task to the end of another column
func (s *service) MoveTask(ctx context.Context, req MoveTaskRequest) error {
	if err := validateTaskID(req.TaskID); err != nil {
		return err
	}
	if !req.Destination.Valid() {
		return ErrInvalidStatus
	}
	if err := s.rejectTemporary(req.TaskID); err != nil {
		return err
	}

	src, err := s.resolveStatus(req.TaskID, req.Source)
	if err != nil {
		return err
	}
	if src == req.Destination {
		return ErrTaskAlreadyInTargetColumn
	}

	err = s.mutate(ctx, "move", []models.Status{src, req.Destination},
		func(b *board.Board) error {
			return b.Move(req.TaskID, src, req.Destination)
		},
		func(ctx context.Context) error {
			return s.gateway.Move(ctx, req.TaskID, src, req.Destination)
		},
	)
	if err != nil {
		return fmt.Errorf("failed to move task: %w", err)
	}
	return nil
}

// ReorderTask moves a task to a new index within its column
func (s *service) ReorderTask(ctx context.Context, req ReorderTaskRequest) error {
	if err := validateTaskID(req.TaskID); err != nil {
		return err
	}
	if req.NewOrder < 0 {
		return ErrInvalidPosition
	}
	if err := s.rejectTemporary(req.TaskID); err != nil {
		return err
	}

	status, err := s.resolveStatus(req.TaskID, req.Status)
	if err != nil {
		return err
	}

	err = s.mutate(ctx, "reorder", []models.Status{status},
		func(b *board.Board) error {
			return b.Reorder(req.TaskID, status, req.NewOrder)
		},
		func(ctx context.Context) error {
			return s.gateway.Reorder(ctx, req.TaskID, status, req.NewOrder)
		},
	)
	if err != nil {
		return fmt.Errorf("failed to reorder task: %w", err)
	}
	return nil
}

// DeleteTask removes a task and closes the gap it leaves
func (s *service) DeleteTask(ctx context.Context, req DeleteTaskRequest) error {
	if err := validateTaskID(req.TaskID); err != nil {
		return err
	}
	if err := s.rejectTemporary(req.TaskID); err != nil {
		return err
	}

	status, err := s.resolveStatus(req.TaskID, req.Status)
	if err != nil {
		return err
	}

	err = s.mutate(ctx, "delete", []models.Status{status},
		func(b *board.Board) error {
			_, err := b.Remove(req.TaskID, status)
			return err
		},
		func(ctx context.Context) error {
			return s.gateway.Delete(ctx, req.TaskID, status)
		},
	)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// mutate runs one optimistic mutation:
//  1. suspend background refreshes
//  2. snapshot the board
//  3. publish the mutation applied to a copy
//  4. issue the remote request
//  5. restore the snapshot if the request failed
//  6. refresh from the remote store regardless of the outcome
//
// Before the first load there is no snapshot, so steps 2, 3 and 5 are skipped.
// Successful writes are announced to other clients for the touched columns.
func (s *service) mutate(ctx context.Context, op string, touched []models.Status, apply func(*board.Board) error, remote func(context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.suspendRefresh()
	defer s.resumeRefresh()

	previous, loaded := s.store.Snapshot()
	if loaded {
		optimistic := previous.Clone()
		if err := apply(optimistic); err != nil {
			s.logger.Debug("optimistic preview skipped", "op", op, "error", err)
		} else {
			s.store.Publish(optimistic)
		}
	}

	err := remote(ctx)
	if err != nil {
		if loaded {
			s.store.Publish(previous)
		}
		s.logger.Error("task mutation failed, rolled back", "op", op, "error", err)
	} else {
		s.notify(touched)
	}

	if refreshErr := s.refreshLocked(ctx); refreshErr != nil {
		s.logger.Warn("refresh after mutation failed", "op", op, "error", refreshErr)
	}

	return err
}

// refreshLocked fetches and publishes the remote board. Callers hold s.mu.
func (s *service) refreshLocked(ctx context.Context) error {
	s.refreshMu.Lock()
	if s.refreshCancel != nil {
		s.refreshCancel()
		s.refreshCancel = nil
	}
	s.refreshGen++
	gen := s.refreshGen
	s.refreshMu.Unlock()

	b, err := s.gateway.FetchBoard(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh board: %w", err)
	}
	s.publishIfCurrent(gen, b)
	return nil
}

// suspendRefresh cancels any in-flight background refresh and invalidates
// its result, so it cannot overwrite the optimistic state
func (s *service) suspendRefresh() {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()
	if s.refreshCancel != nil {
		s.refreshCancel()
		s.refreshCancel = nil
	}
	s.refreshGen++
	s.mutating = true
}

// resumeRefresh re-enables background refreshes. Requests that arrived during
// the mutation were served by its settle refresh.
func (s *service) resumeRefresh() {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()
	s.mutating = false
	s.refreshPending = false
}

func (s *service) publishIfCurrent(gen uint64, b *board.Board) bool {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()
	if gen != s.refreshGen {
		return false
	}
	s.store.Publish(b)
	s.logger.Debug("board refreshed", "version", s.store.Version())
	return true
}

// resolveStatus returns status if set, otherwise the task's current column
func (s *service) resolveStatus(id string, status models.Status) (models.Status, error) {
	if status != "" {
		if !status.Valid() {
			return "", ErrInvalidStatus
		}
		return status, nil
	}
	current, _ := s.store.Snapshot()
	found, _, ok := current.Locate(id)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return found, nil
}

// rejectTemporary refuses to mutate a task that only exists as an optimistic
// placeholder; the remote store has never seen its ID
func (s *service) rejectTemporary(id string) error {
	if (models.Task{ID: id}).IsTemporary() {
		return ErrTemporaryTask
	}
	return nil
}

// notify publishes a change event if an event client exists.
// A nil touched list means any column may have changed.
func (s *service) notify(touched []models.Status) {
	if s.eventClient == nil {
		return
	}
	_ = events.PublishWithRetry(s.eventClient, events.Event{
		Type:     events.EventItemsChanged,
		Statuses: touched,
		Origin:   s.eventClient.ClientID(),
	}, 3)
}
