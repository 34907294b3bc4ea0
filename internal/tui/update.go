package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/thenoetrevino/taskboard/internal/dnd"
	"github.com/thenoetrevino/taskboard/internal/models"
	"github.com/thenoetrevino/taskboard/internal/services/task"
)

// Update handles all messages and updates the model accordingly
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case BoardUpdatedMsg:
		m.board, m.loaded = m.tasks.Board()
		m.clampSelection()
		return m, m.waitForUpdate()

	case RemoteEventMsg:
		if m.clientID == "" || msg.Event.Origin != m.clientID {
			m.tasks.RefreshInBackground()
		}
		return m, m.waitForEvent()

	case DropCommittedMsg:
		m.board, m.loaded = m.tasks.Board()
		m.selectTask(msg.Drop.ItemID)
		return m, nil

	case ErrorMsg:
		m.errText = msg.Op + ": " + msg.Err.Error()
		return m, nil

	case tea.WindowSizeMsg:
		m.layout.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.mode == addMode {
			return m.updateAdd(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" || key == m.keys.Quit {
		return m, tea.Quit
	}
	if key == m.keys.CancelDrag {
		m.cancelDrag()
		m.errText = ""
		return m, nil
	}
	// The keyboard stays out of the way of a mouse gesture
	if m.sensor.Pressed() {
		return m, nil
	}

	switch key {
	case m.keys.PrevColumn, "left":
		if m.selColumn > 0 {
			m.selColumn--
			m.clampSelection()
		}
	case m.keys.NextColumn, "right":
		if m.selColumn < len(models.Statuses)-1 {
			m.selColumn++
			m.clampSelection()
		}
	case m.keys.PrevTask, "up":
		if m.selTask > 0 {
			m.selTask--
		}
	case m.keys.NextTask, "down":
		if m.selTask < m.board.Len(m.selectedStatus())-1 {
			m.selTask++
		}
	case m.keys.MoveTaskLeft:
		return m.moveSelected(-1)
	case m.keys.MoveTaskRight:
		return m.moveSelected(1)
	case m.keys.MoveTaskUp:
		return m.reorderSelected(-1)
	case m.keys.MoveTaskDown:
		return m.reorderSelected(1)
	case m.keys.DeleteTask:
		return m.deleteSelected()
	case m.keys.AddTask:
		m.mode = addMode
		m.input.SetValue("")
		m.input.Focus()
		return m, nil
	case m.keys.Refresh:
		m.errText = ""
		return m, m.run("refresh", m.tasks.Refresh)
	}
	return m, nil
}

// moveSelected sends the highlighted card to the end of the neighbouring column
func (m Model) moveSelected(delta int) (tea.Model, tea.Cmd) {
	t, ok := m.selectedTask()
	dst := m.selColumn + delta
	if !ok || dst < 0 || dst >= len(models.Statuses) {
		return m, nil
	}
	req := task.MoveTaskRequest{
		TaskID:      t.ID,
		Source:      t.Status,
		Destination: models.Statuses[dst],
	}
	m.selColumn = dst
	m.selTask = m.board.Len(req.Destination)
	return m, m.run("move", func(ctx context.Context) error {
		return m.tasks.MoveTask(ctx, req)
	})
}

// reorderSelected swaps the highlighted card with its neighbour
func (m Model) reorderSelected(delta int) (tea.Model, tea.Cmd) {
	t, ok := m.selectedTask()
	to := m.selTask + delta
	if !ok || to < 0 || to >= m.board.Len(t.Status) {
		return m, nil
	}
	req := task.ReorderTaskRequest{TaskID: t.ID, Status: t.Status, NewOrder: to}
	m.selTask = to
	return m, m.run("reorder", func(ctx context.Context) error {
		return m.tasks.ReorderTask(ctx, req)
	})
}

func (m Model) deleteSelected() (tea.Model, tea.Cmd) {
	t, ok := m.selectedTask()
	if !ok {
		return m, nil
	}
	req := task.DeleteTaskRequest{TaskID: t.ID, Status: t.Status}
	return m, m.run("delete", func(ctx context.Context) error {
		return m.tasks.DeleteTask(ctx, req)
	})
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = normalMode
		m.input.Blur()
		return m, nil
	case "enter":
		title := strings.TrimSpace(m.input.Value())
		m.mode = normalMode
		m.input.Blur()
		if title == "" {
			return m, nil
		}
		req := task.CreateTaskRequest{
			Title:    title,
			Status:   m.selectedStatus(),
			Priority: models.PriorityMedium,
			Deadline: time.Now().AddDate(0, 0, 7).Format(models.DeadlineLayout),
		}
		m.selTask = m.board.Len(req.Status)
		return m, m.run("create", func(ctx context.Context) error {
			_, err := m.tasks.CreateTask(ctx, req)
			return err
		})
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleMouse drives a drag: press arms the sensor on a card, motion past
// the activation distance starts the drag, release drops it. A release that
// never activated is a plain click.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	p := dnd.Point{X: msg.X, Y: msg.Y}
	target := m.layout.hitTest(m.visible(), msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.mode != normalMode {
			return m, nil
		}
		switch {
		case target.ItemID != "":
			m.sensor.Press(p, target.ItemID)
			m.selectTask(target.ItemID)
		case target.Column.Valid():
			m.selColumn = target.Column.Index()
			m.clampSelection()
		}

	case tea.MouseActionMotion:
		if !m.sensor.Pressed() {
			return m, nil
		}
		if m.sensor.Move(p) && !m.tracker.DragStart(m.sensor.ItemID()) {
			// The card vanished between press and activation
			m.sensor.Release()
			return m, nil
		}
		if m.sensor.Active() {
			m.tracker.DragOver(target)
			if active, ok := m.tracker.ActiveTask(); ok {
				m.selectTask(active.ID)
			}
		}

	case tea.MouseActionRelease:
		if !m.sensor.Release() {
			return m, nil
		}
		return m, m.commit(m.tracker.End(target))
	}
	return m, nil
}

// commit hands a drop to the task service off the update loop
func (m Model) commit(drop dnd.Drop) tea.Cmd {
	if drop.Kind == dnd.DropNone {
		return nil
	}
	tracker := m.tracker
	ctx := m.ctx
	return func() tea.Msg {
		tracker.Commit(ctx, drop)
		return DropCommittedMsg{Drop: drop}
	}
}

func (m *Model) cancelDrag() {
	m.sensor.Release()
	m.tracker.Cancel()
	m.clampSelection()
}
