package events

import (
	"time"

	"github.com/thenoetrevino/taskboard/internal/models"
)

// ProtocolVersion is bumped whenever the wire format changes
const ProtocolVersion = 1

// EventType indicates what kind of change occurred
type EventType string

const (
	EventItemsChanged EventType = "items_changed"
	EventPing         EventType = "ping"
	EventPong         EventType = "pong"
)

// Event represents a board change notification
type Event struct {
	Type       EventType
	Statuses   []models.Status `json:",omitempty"` // Columns touched, empty means any
	Origin     string          `json:",omitempty"` // Client that made the change
	Timestamp  time.Time       // When the event occurred
	SequenceID int64           // Monotonically increasing sequence number for ordering
}

// Touches reports whether the event concerns the given column
func (e Event) Touches(status models.Status) bool {
	if len(e.Statuses) == 0 {
		return true
	}
	for _, s := range e.Statuses {
		if s == status {
			return true
		}
	}
	return false
}

// HelloMessage is sent by clients right after connecting
type HelloMessage struct {
	ClientID string
}

// Message wraps events and control messages for wire protocol
type Message struct {
	Version int           `json:",omitempty"`
	Type    string        // "event", "hello", "ping", "pong"
	Event   *Event        `json:",omitempty"`
	Hello   *HelloMessage `json:",omitempty"`
}
