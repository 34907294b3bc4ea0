package tui

import (
	"github.com/thenoetrevino/taskboard/internal/dnd"
	"github.com/thenoetrevino/taskboard/internal/events"
)

// BoardUpdatedMsg is sent when the board store publishes a new state
type BoardUpdatedMsg struct{}

// RemoteEventMsg carries a change notification from the daemon
type RemoteEventMsg struct {
	Event events.Event
}

// DropCommittedMsg is sent once a drop has been handed to the task service
type DropCommittedMsg struct {
	Drop dnd.Drop
}

// ErrorMsg reports a failed board operation
type ErrorMsg struct {
	Op  string
	Err error
}
