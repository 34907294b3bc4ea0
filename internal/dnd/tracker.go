package dnd

import (
	"context"
	"log/slog"
	"sync"

	"github.com/thenoetrevino/taskboard/internal/board"
	"github.com/thenoetrevino/taskboard/internal/models"
	"github.com/thenoetrevino/taskboard/internal/services/task"
)

// BoardSource provides the current board state
type BoardSource interface {
	Board() (*board.Board, bool)
}

// Committer applies the mutation a drop decides on
type Committer interface {
	MoveTask(ctx context.Context, req task.MoveTaskRequest) error
	ReorderTask(ctx context.Context, req task.ReorderTaskRequest) error
}

// Tracker follows one drag gesture at a time and turns its end into a move
// or reorder. Commit failures are logged and dropped here; the mutation
// layer has already rolled the board back.
type Tracker struct {
	source    BoardSource
	committer Committer
	logger    *slog.Logger

	mu     sync.Mutex
	state  State
	active models.Task
}

// NewTracker creates an idle tracker
func NewTracker(source BoardSource, committer Committer, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		source:    source,
		committer: committer,
		logger:    logger,
		state:     Idle{},
	}
}

// State returns the current drag state
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// ActiveTask returns the card being dragged
func (t *Tracker) ActiveTask() (models.Task, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, idle := t.state.(Idle); idle {
		return models.Task{}, false
	}
	return t.active, true
}

// DragStart begins dragging itemID, discarding any previous session.
// It returns false and stays idle if the item is not on the board.
func (t *Tracker) DragStart(itemID string) bool {
	b, _ := t.source.Board()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.state = Idle{}
	t.active = models.Task{}

	origin, _, ok := b.Locate(itemID)
	if !ok {
		return false
	}
	t.active, _ = b.Task(itemID)
	t.state = Dragging{ItemID: itemID, Origin: origin}
	return true
}

// DragOver updates the session with the pointer's current target.
// Crossing into another column records a pending move; coming back to the
// origin keeps it.
func (t *Tracker) DragOver(target Target) {
	b, _ := t.source.Board()

	t.mu.Lock()
	defer t.mu.Unlock()

	// The dragged card itself may be drawn in another column by Project
	if target.ItemID != "" && target.ItemID == t.active.ID {
		return
	}

	over, _, ok := resolve(b, target)
	if !ok {
		return
	}

	switch st := t.state.(type) {
	case Dragging:
		if over != st.Origin {
			t.state = PendingCrossColumn{ItemID: st.ItemID, Origin: st.Origin, Target: over}
		}
	case PendingCrossColumn:
		if over == st.Origin {
			t.state = Dragging{
				ItemID:  st.ItemID,
				Origin:  st.Origin,
				Pending: &PendingMove{ItemID: st.ItemID, Source: st.Origin, Destination: st.Target},
			}
		} else if over != st.Target {
			st.Target = over
			t.state = st
		}
	}
}

// End finishes the gesture and decides what to commit without committing it.
// A pending move always wins over a reorder.
func (t *Tracker) End(target Target) Drop {
	b, _ := t.source.Board()

	t.mu.Lock()
	defer t.mu.Unlock()

	state := t.state
	t.state = Idle{}
	t.active = models.Task{}

	if move, ok := PendingMoveOf(state); ok {
		return Drop{
			Kind:        DropMove,
			ItemID:      move.ItemID,
			Source:      move.Source,
			Destination: move.Destination,
		}
	}

	dragging, ok := state.(Dragging)
	if !ok || target.ItemID == "" {
		return Drop{Kind: DropNone}
	}

	over, overIndex, ok := resolve(b, target)
	if !ok || over != dragging.Origin {
		return Drop{Kind: DropNone}
	}
	_, activeIndex, ok := b.Locate(dragging.ItemID)
	if !ok || activeIndex == overIndex {
		return Drop{Kind: DropNone}
	}

	return Drop{
		Kind:   DropReorder,
		ItemID: dragging.ItemID,
		Source: dragging.Origin,
		Index:  overIndex,
	}
}

// Commit sends a drop to the committer. Errors are logged, not returned.
func (t *Tracker) Commit(ctx context.Context, drop Drop) {
	var err error
	switch drop.Kind {
	case DropMove:
		err = t.committer.MoveTask(ctx, task.MoveTaskRequest{
			TaskID:      drop.ItemID,
			Source:      drop.Source,
			Destination: drop.Destination,
		})
	case DropReorder:
		err = t.committer.ReorderTask(ctx, task.ReorderTaskRequest{
			TaskID:   drop.ItemID,
			Status:   drop.Source,
			NewOrder: drop.Index,
		})
	default:
		return
	}
	if err != nil {
		t.logger.Warn("drop not applied", "kind", drop.Kind.String(), "task_id", drop.ItemID, "error", err)
	}
}

// DragEnd finishes the gesture and commits the result
func (t *Tracker) DragEnd(ctx context.Context, target Target) Drop {
	drop := t.End(target)
	t.Commit(ctx, drop)
	return drop
}

// Cancel abandons the gesture without committing anything
func (t *Tracker) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = Idle{}
	t.active = models.Task{}
}

// Project returns the board as it should be drawn during the drag. While a
// move is pending the card is shown at the end of its destination column,
// even after the pointer returns to the origin. The input board is not
// modified.
func (t *Tracker) Project(b *board.Board) *board.Board {
	t.mu.Lock()
	move, ok := PendingMoveOf(t.state)
	t.mu.Unlock()

	if !ok {
		return b.Clone()
	}
	return b.ProjectMove(move.ItemID, move.Source, move.Destination)
}

// resolve maps a target to its column and, for items, their index
func resolve(b *board.Board, target Target) (models.Status, int, bool) {
	if target.ItemID != "" {
		return b.Locate(target.ItemID)
	}
	if target.Column.Valid() {
		return target.Column, -1, true
	}
	return "", -1, false
}
