package models

import "fmt"

// ============================================================================
// STATUS
// ============================================================================

// Status names one of the three board columns
type Status string

const (
	StatusToDo       Status = "TO_DO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// Statuses lists every column in board order
var Statuses = [...]Status{StatusToDo, StatusInProgress, StatusDone}

// Valid reports whether s is one of the three board columns
func (s Status) Valid() bool {
	return s.Index() >= 0
}

// Index returns the column position of s, or -1 for an unknown status
func (s Status) Index() int {
	for i, status := range Statuses {
		if status == s {
			return i
		}
	}
	return -1
}

// Label returns the human readable column header
func (s Status) Label() string {
	switch s {
	case StatusToDo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

// ParseStatus accepts the wire value or the column label, case-insensitively
func ParseStatus(raw string) (Status, error) {
	for _, status := range Statuses {
		if equalFoldSpaced(raw, string(status)) || equalFoldSpaced(raw, status.Label()) {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

// ============================================================================
// PRIORITY
// ============================================================================

// Priority is the urgency of a task
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Priorities lists every priority from lowest to highest
var Priorities = [...]Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Valid reports whether p is a known priority
func (p Priority) Valid() bool {
	for _, priority := range Priorities {
		if priority == p {
			return true
		}
	}
	return false
}

// ParsePriority accepts the wire value case-insensitively
func ParsePriority(raw string) (Priority, error) {
	for _, priority := range Priorities {
		if equalFoldSpaced(raw, string(priority)) {
			return priority, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
}

// ============================================================================
// DATES
// ============================================================================

// DeadlineLayout is the date-only format deadlines are stored in
const DeadlineLayout = "2006-01-02"

// TempIDPrefix marks identifiers that exist only in an optimistic preview
const TempIDPrefix = "temp-"

// equalFoldSpaced compares ignoring case and treating '_', '-' and ' ' alike
func equalFoldSpaced(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := normalizeByte(a[i]), normalizeByte(b[i])
		if ca != cb {
			return false
		}
	}
	return true
}

func normalizeByte(c byte) byte {
	switch {
	case c == '-' || c == ' ':
		return '_'
	case c >= 'a' && c <= 'z':
		return c - 'a' + 'A'
	default:
		return c
	}
}
