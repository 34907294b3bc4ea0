package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/taskboard/internal/board"
	"github.com/thenoetrevino/taskboard/internal/config"
	"github.com/thenoetrevino/taskboard/internal/dnd"
	"github.com/thenoetrevino/taskboard/internal/events"
	"github.com/thenoetrevino/taskboard/internal/gateway"
	"github.com/thenoetrevino/taskboard/internal/models"
	"github.com/thenoetrevino/taskboard/internal/services/task"
	"github.com/thenoetrevino/taskboard/internal/testutil"
)

// ============================================================================
// Test Helpers
// ============================================================================

// boardWidth gives 30 cell columns
const boardWidth = 90

type harness struct {
	t   *testing.T
	mem *testutil.MemoryStore
	svc task.Service
	m   Model
}

func card(title string, status models.Status, order int) models.Task {
	return models.Task{
		Title:         title,
		Status:        status,
		Priority:      models.PriorityMedium,
		Deadline:      "2025-01-31",
		OrderInColumn: order,
	}
}

func newHarness(t *testing.T, tasks []models.Task, opts ...Option) *harness {
	t.Helper()
	mem := testutil.NewMemoryStore()
	mem.Seed(tasks...)

	store := board.NewStore()
	svc := task.NewService(gateway.New(mem), store)
	require.NoError(t, svc.Load(context.Background()))

	h := &harness{t: t, mem: mem, svc: svc}
	h.m = New(context.Background(), svc, store.Updates(), opts...)
	h.send(tea.WindowSizeMsg{Width: boardWidth, Height: 40})
	h.send(BoardUpdatedMsg{})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return cmd
}

// settle runs cmd and its follow-ups to completion, then delivers the
// store's publish signal the program would have received
func (h *harness) settle(cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			break
		}
		cmd = h.send(msg)
	}
	h.send(BoardUpdatedMsg{})
}

func (h *harness) key(s string) tea.Cmd {
	switch s {
	case "esc":
		return h.send(tea.KeyMsg{Type: tea.KeyEsc})
	case "enter":
		return h.send(tea.KeyMsg{Type: tea.KeyEnter})
	}
	return h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (h *harness) press(x, y int) tea.Cmd {
	return h.send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func (h *harness) motion(x, y int) tea.Cmd {
	return h.send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
}

func (h *harness) release(x, y int) tea.Cmd {
	return h.send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})
}

func (h *harness) titles(status models.Status) []string {
	h.t.Helper()
	tasks, err := h.mem.List(context.Background(), status)
	require.NoError(h.t, err)
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

// cardRow is the text row of the i-th card
func cardRow(i int) int {
	return layout{}.cardTop(i) + 1
}

// ============================================================================
// Layout
// ============================================================================

func TestHitTest(t *testing.T) {
	b, err := board.FromTasks([]models.Task{
		{ID: "a", Title: "A", Status: models.StatusToDo, Priority: models.PriorityLow, OrderInColumn: 0},
		{ID: "b", Title: "B", Status: models.StatusToDo, Priority: models.PriorityLow, OrderInColumn: 1},
	})
	require.NoError(t, err)
	l := layout{width: boardWidth}

	tests := []struct {
		name string
		x, y int
		want dnd.Target
	}{
		{"first card top border", 5, l.cardTop(0), dnd.ItemTarget("a")},
		{"first card text", 5, cardRow(0), dnd.ItemTarget("a")},
		{"second card", 29, cardRow(1), dnd.ItemTarget("b")},
		{"below the cards", 5, l.cardTop(2) + 1, dnd.ColumnTarget(models.StatusToDo)},
		{"column title", 5, columnTopRow + 1, dnd.ColumnTarget(models.StatusToDo)},
		{"empty column", 35, cardRow(0), dnd.ColumnTarget(models.StatusInProgress)},
		{"last column", 89, cardRow(0), dnd.ColumnTarget(models.StatusDone)},
		{"app title", 5, 0, dnd.Target{}},
		{"right of the board", boardWidth, cardRow(0), dnd.Target{}},
		{"negative x", -1, cardRow(0), dnd.Target{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.hitTest(b, tt.x, tt.y))
		})
	}
}

func TestLayout_MinimumColumnWidth(t *testing.T) {
	assert.Equal(t, minColumnWidth, layout{width: 20}.columnWidth())
	assert.Equal(t, 40, layout{width: 120}.columnWidth())
}

// ============================================================================
// View
// ============================================================================

func TestView_CardsDrawnWhereHitTestFindsThem(t *testing.T) {
	h := newHarness(t, []models.Task{
		card("Alpha", models.StatusToDo, 0),
		card("Beta", models.StatusToDo, 1),
		card("Gamma", models.StatusDone, 0),
	})

	lines := strings.Split(h.m.View(), "\n")
	require.Greater(t, len(lines), cardRow(1))

	assert.Contains(t, lines[0], "Taskboard")
	assert.Contains(t, lines[columnTopRow+1], "To Do (2)")
	assert.Contains(t, lines[columnTopRow+1], "Done (1)")
	assert.Contains(t, lines[cardRow(0)], "Alpha")
	assert.Contains(t, lines[cardRow(0)], "Gamma")
	assert.Contains(t, lines[cardRow(1)], "Beta")
	assert.NotContains(t, lines[cardRow(0)], "Beta")
}

func TestView_FooterShowsKeysAndErrors(t *testing.T) {
	h := newHarness(t, nil)
	assert.Contains(t, h.m.View(), "q quit")

	h.send(ErrorMsg{Op: "move", Err: errors.New("remote unavailable")})
	assert.Contains(t, h.m.View(), "move: remote unavailable")

	h.key("esc")
	assert.NotContains(t, h.m.View(), "remote unavailable")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "", truncate("abc", 0))
}

// ============================================================================
// Mouse drag
// ============================================================================

func TestDrag_AcrossColumnsMovesTask(t *testing.T) {
	h := newHarness(t, []models.Task{
		card("Alpha", models.StatusToDo, 0),
		card("Beta", models.StatusToDo, 1),
	})

	assert.Nil(t, h.press(5, cardRow(0)))
	assert.Nil(t, h.motion(35, cardRow(0)))

	// While hovering the card is drawn in the target column only
	visible := h.m.visible()
	require.Len(t, visible.Column(models.StatusInProgress), 1)
	assert.Equal(t, "Alpha", visible.Column(models.StatusInProgress)[0].Title)
	assert.Len(t, visible.Column(models.StatusToDo), 1)
	assert.Contains(t, h.m.View(), `Dragging "Alpha"`)

	cmd := h.release(35, cardRow(0))
	require.NotNil(t, cmd)
	h.settle(cmd)

	assert.Equal(t, []string{"Beta"}, h.titles(models.StatusToDo))
	assert.Equal(t, []string{"Alpha"}, h.titles(models.StatusInProgress))
	assert.IsType(t, dnd.Idle{}, h.m.tracker.State())

	selected, ok := h.m.selectedTask()
	require.True(t, ok)
	assert.Equal(t, "Alpha", selected.Title)
}

func TestDrag_WithinColumnReorders(t *testing.T) {
	h := newHarness(t, []models.Task{
		card("Alpha", models.StatusToDo, 0),
		card("Beta", models.StatusToDo, 1),
		card("Gamma", models.StatusToDo, 2),
	})

	h.press(5, cardRow(2))
	h.motion(5, cardRow(0))
	assert.IsType(t, dnd.Dragging{}, h.m.tracker.State())

	h.settle(h.release(5, cardRow(0)))

	assert.Equal(t, []string{"Gamma", "Alpha", "Beta"}, h.titles(models.StatusToDo))
}

func TestDrag_BackToOriginStillMoves(t *testing.T) {
	h := newHarness(t, []models.Task{card("Alpha", models.StatusToDo, 0)})

	h.press(5, cardRow(0))
	h.motion(65, cardRow(0))
	h.motion(5, cardRow(3))

	// Still drawn in DONE, where the release will put it
	visible := h.m.visible()
	assert.Empty(t, visible.Column(models.StatusToDo))
	require.Len(t, visible.Column(models.StatusDone), 1)

	// Hovering the projected card keeps the pending move
	h.motion(65, cardRow(0))
	_, pending := dnd.PendingMoveOf(h.m.tracker.State())
	assert.True(t, pending)
	assert.Len(t, h.m.visible().Column(models.StatusDone), 1)

	h.settle(h.release(5, cardRow(3)))

	assert.Equal(t, []string{"Alpha"}, h.titles(models.StatusDone))
	assert.Empty(t, h.titles(models.StatusToDo))
}

func TestMouse_ShortMovementIsAClick(t *testing.T) {
	h := newHarness(t, []models.Task{
		card("Alpha", models.StatusToDo, 0),
		card("Beta", models.StatusToDo, 1),
	})
	h.mem.ResetCalls()

	h.press(5, cardRow(1))
	h.motion(7, cardRow(1))
	assert.IsType(t, dnd.Idle{}, h.m.tracker.State())
	assert.Nil(t, h.release(7, cardRow(1)))

	selected, ok := h.m.selectedTask()
	require.True(t, ok)
	assert.Equal(t, "Beta", selected.Title)
	assert.Empty(t, h.mem.Calls())
}

func TestMouse_ClickOnEmptyColumnSelectsIt(t *testing.T) {
	h := newHarness(t, []models.Task{card("Alpha", models.StatusToDo, 0)})

	h.press(65, cardRow(0))
	h.release(65, cardRow(0))

	assert.Equal(t, models.StatusDone, h.m.selectedStatus())
	_, ok := h.m.selectedTask()
	assert.False(t, ok)
}

func TestDrag_CancelDropsNothing(t *testing.T) {
	h := newHarness(t, []models.Task{card("Alpha", models.StatusToDo, 0)})
	h.mem.ResetCalls()

	h.press(5, cardRow(0))
	h.motion(35, cardRow(0))
	h.key("esc")

	assert.IsType(t, dnd.Idle{}, h.m.tracker.State())
	assert.Nil(t, h.release(35, cardRow(0)))
	assert.Equal(t, []string{"Alpha"}, h.titles(models.StatusToDo))
	assert.Equal(t, []string{testutil.OpList}, h.mem.Calls())
}

func TestDrag_FailedMoveRollsBack(t *testing.T) {
	h := newHarness(t, []models.Task{card("Alpha", models.StatusToDo, 0)})
	h.mem.Fail(testutil.OpUpdate, errors.New("remote unavailable"))

	h.press(5, cardRow(0))
	h.motion(35, cardRow(0))
	h.settle(h.release(35, cardRow(0)))

	assert.Equal(t, []string{"Alpha"}, h.titles(models.StatusToDo))
	assert.Equal(t, 1, h.m.board.Len(models.StatusToDo))
	assert.Equal(t, 0, h.m.board.Len(models.StatusInProgress))
}

// ============================================================================
// Keyboard
// ============================================================================

func TestKeys_MoveAndReorder(t *testing.T) {
	h := newHarness(t, []models.Task{
		card("Alpha", models.StatusToDo, 0),
		card("Beta", models.StatusToDo, 1),
	})

	h.key("j")
	h.settle(h.key("K"))
	assert.Equal(t, []string{"Beta", "Alpha"}, h.titles(models.StatusToDo))

	h.settle(h.key("L"))
	assert.Equal(t, []string{"Alpha"}, h.titles(models.StatusToDo))
	assert.Equal(t, []string{"Beta"}, h.titles(models.StatusInProgress))
	assert.Equal(t, models.StatusInProgress, h.m.selectedStatus())

	h.settle(h.key("H"))
	assert.Equal(t, []string{"Alpha", "Beta"}, h.titles(models.StatusToDo))
}

func TestKeys_MoveAtEdgeDoesNothing(t *testing.T) {
	h := newHarness(t, []models.Task{card("Alpha", models.StatusToDo, 0)})

	assert.Nil(t, h.key("H"))
	assert.Nil(t, h.key("K"))
	assert.Nil(t, h.key("J"))
}

func TestKeys_AddTask(t *testing.T) {
	h := newHarness(t, nil)

	h.key("l")
	h.key("a")
	assert.Equal(t, addMode, h.m.mode)
	h.key("Write docs")
	h.settle(h.key("enter"))

	assert.Equal(t, normalMode, h.m.mode)
	assert.Equal(t, []string{"Write docs"}, h.titles(models.StatusInProgress))
}

func TestKeys_AddTaskEscapeCancels(t *testing.T) {
	h := newHarness(t, nil)

	h.key("a")
	h.key("Draft")
	assert.Nil(t, h.key("esc"))
	assert.Equal(t, normalMode, h.m.mode)
	assert.Empty(t, h.titles(models.StatusToDo))
}

func TestKeys_Delete(t *testing.T) {
	h := newHarness(t, []models.Task{
		card("Alpha", models.StatusToDo, 0),
		card("Beta", models.StatusToDo, 1),
	})

	h.settle(h.key("d"))

	assert.Equal(t, []string{"Beta"}, h.titles(models.StatusToDo))
	selected, ok := h.m.selectedTask()
	require.True(t, ok)
	assert.Equal(t, "Beta", selected.Title)
}

func TestKeys_CustomMappings(t *testing.T) {
	keys := config.DefaultKeyMappings()
	keys.MoveTaskRight = "x"
	h := newHarness(t, []models.Task{card("Alpha", models.StatusToDo, 0)}, WithKeyMappings(keys))

	h.settle(h.key("x"))
	assert.Equal(t, []string{"Alpha"}, h.titles(models.StatusInProgress))
}

func TestKeys_Quit(t *testing.T) {
	h := newHarness(t, nil)
	cmd := h.key("q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

// ============================================================================
// Remote events
// ============================================================================

func TestRemoteEvents_OwnEventsIgnored(t *testing.T) {
	ch := make(chan events.Event)
	h := newHarness(t, []models.Task{card("Alpha", models.StatusToDo, 0)}, WithEvents(ch, "tui-1"))
	h.mem.ResetCalls()

	cmd := h.send(RemoteEventMsg{Event: events.Event{Type: events.EventItemsChanged, Origin: "tui-1"}})
	assert.NotNil(t, cmd, "keeps listening")
	assert.Empty(t, h.mem.Calls())
}

func TestRemoteEvents_OtherClientsTriggerRefresh(t *testing.T) {
	ch := make(chan events.Event)
	h := newHarness(t, []models.Task{card("Alpha", models.StatusToDo, 0)}, WithEvents(ch, "tui-1"))

	h.mem.Seed(card("Beta", models.StatusToDo, 1))
	h.send(RemoteEventMsg{Event: events.Event{Type: events.EventItemsChanged, Origin: "cli-9"}})

	require.Eventually(t, func() bool {
		b, _ := h.svc.Board()
		return b.Len(models.StatusToDo) == 2
	}, time.Second, 10*time.Millisecond)

	h.send(BoardUpdatedMsg{})
	assert.Equal(t, 2, h.m.board.Len(models.StatusToDo))
}
