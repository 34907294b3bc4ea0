// Package tui is the interactive kanban board. Cards are moved with the
// keyboard or dragged with the mouse; every change goes through the task
// service so the board updates optimistically and rolls back on failure.
package tui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/thenoetrevino/taskboard/internal/board"
	"github.com/thenoetrevino/taskboard/internal/config"
	"github.com/thenoetrevino/taskboard/internal/dnd"
	"github.com/thenoetrevino/taskboard/internal/events"
	"github.com/thenoetrevino/taskboard/internal/models"
	"github.com/thenoetrevino/taskboard/internal/services/task"
)

type mode int

const (
	normalMode mode = iota
	addMode
)

// Option configures a Model
type Option func(*Model)

// WithKeyMappings overrides the default key bindings
func WithKeyMappings(keys config.KeyMappings) Option {
	return func(m *Model) {
		m.keys = keys
	}
}

// WithEvents makes the board refresh on changes made by other clients.
// Events whose Origin is clientID are ignored.
func WithEvents(ch <-chan events.Event, clientID string) Option {
	return func(m *Model) {
		m.eventChan = ch
		m.clientID = clientID
	}
}

// WithActivationDistance sets how far the mouse travels before a press
// becomes a drag
func WithActivationDistance(cells int) Option {
	return func(m *Model) {
		m.sensor = dnd.NewSensor(cells)
	}
}

// WithLogger sets the logger for commit failures
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}

// Model is the board screen
type Model struct {
	ctx     context.Context
	tasks   task.Service
	updates <-chan struct{}
	tracker *dnd.Tracker
	sensor  *dnd.Sensor
	keys    config.KeyMappings
	logger  *slog.Logger

	eventChan <-chan events.Event
	clientID  string

	board  *board.Board
	loaded bool
	layout layout
	height int

	mode      mode
	input     textinput.Model
	selColumn int
	selTask   int
	errText   string
}

// New creates the board screen. updates is the board store's publish signal.
func New(ctx context.Context, tasks task.Service, updates <-chan struct{}, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = "Task title..."
	ti.CharLimit = 255
	ti.Width = 40

	m := Model{
		ctx:     ctx,
		tasks:   tasks,
		updates: updates,
		sensor:  dnd.NewSensor(dnd.DefaultActivationDistance),
		keys:    config.DefaultKeyMappings(),
		logger:  slog.Default(),
		board:   board.New(),
		layout:  layout{width: 80},
		input:   ti,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.tracker = dnd.NewTracker(tasks, tasks, m.logger)
	return m
}

// Init loads the board and starts listening for changes
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.waitForUpdate(), m.waitForEvent())
}

func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		if err := m.tasks.Load(m.ctx); err != nil {
			return ErrorMsg{Op: "load", Err: err}
		}
		return nil
	}
}

// waitForUpdate blocks until the store publishes. Returns nil without a store.
func (m Model) waitForUpdate() tea.Cmd {
	if m.updates == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case _, ok := <-m.updates:
			if !ok {
				return nil
			}
			return BoardUpdatedMsg{}
		case <-m.ctx.Done():
			return nil
		}
	}
}

// waitForEvent returns a command that waits for the next daemon event
func (m Model) waitForEvent() tea.Cmd {
	if m.eventChan == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case event, ok := <-m.eventChan:
			if !ok {
				slog.Info("event channel closed")
				return nil
			}
			return RemoteEventMsg{Event: event}
		case <-m.ctx.Done():
			return nil
		}
	}
}

// run executes a service call off the update loop
func (m Model) run(op string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(m.ctx); err != nil {
			return ErrorMsg{Op: op, Err: err}
		}
		return nil
	}
}

// visible is the board as drawn, with an in-flight cross-column drag
// projected onto it
func (m Model) visible() *board.Board {
	return m.tracker.Project(m.board)
}

func (m Model) selectedStatus() models.Status {
	return models.Statuses[m.selColumn]
}

// selectedTask returns the highlighted card on the drawn board
func (m Model) selectedTask() (models.Task, bool) {
	tasks := m.visible().Column(m.selectedStatus())
	if m.selTask < 0 || m.selTask >= len(tasks) {
		return models.Task{}, false
	}
	return tasks[m.selTask], true
}

// selectTask moves the highlight to id if it is on the board
func (m *Model) selectTask(id string) {
	status, idx, ok := m.visible().Locate(id)
	if !ok {
		return
	}
	m.selColumn = status.Index()
	m.selTask = idx
}

// clampSelection keeps the highlight on an existing card after the board changes
func (m *Model) clampSelection() {
	n := m.visible().Len(m.selectedStatus())
	switch {
	case n == 0:
		m.selTask = 0
	case m.selTask >= n:
		m.selTask = n - 1
	case m.selTask < 0:
		m.selTask = 0
	}
}
