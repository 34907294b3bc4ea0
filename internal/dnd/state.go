package dnd

import "github.com/thenoetrevino/taskboard/internal/models"

// State is the drag session state. It is one of Idle, Dragging or
// PendingCrossColumn.
type State interface {
	isState()
}

// Idle means no drag is in progress
type Idle struct{}

// Dragging means a card is being dragged and the pointer is over its origin
// column. Pending keeps the move recorded by an earlier crossing: returning
// to the origin does not clear it.
type Dragging struct {
	ItemID  string
	Origin  models.Status
	Pending *PendingMove
}

// PendingCrossColumn means the pointer is over a column other than the origin
type PendingCrossColumn struct {
	ItemID string
	Origin models.Status
	Target models.Status
}

func (Idle) isState()               {}
func (Dragging) isState()           {}
func (PendingCrossColumn) isState() {}

// PendingMove is the cross-column move that will be committed on release
type PendingMove struct {
	ItemID      string
	Source      models.Status
	Destination models.Status
}

// PendingMoveOf returns the move a release would commit, if any
func PendingMoveOf(s State) (PendingMove, bool) {
	switch st := s.(type) {
	case PendingCrossColumn:
		return PendingMove{ItemID: st.ItemID, Source: st.Origin, Destination: st.Target}, true
	case Dragging:
		if st.Pending != nil {
			return *st.Pending, true
		}
	}
	return PendingMove{}, false
}

// Target is what the pointer is over: a column, an item, or nothing
type Target struct {
	Column models.Status
	ItemID string
}

// ColumnTarget targets the empty area of a column
func ColumnTarget(status models.Status) Target {
	return Target{Column: status}
}

// ItemTarget targets a card
func ItemTarget(id string) Target {
	return Target{ItemID: id}
}

// IsZero reports whether the target is nothing at all
func (t Target) IsZero() bool {
	return t.Column == "" && t.ItemID == ""
}

// DropKind says which mutation a release commits
type DropKind int

const (
	DropNone DropKind = iota
	DropMove
	DropReorder
)

func (k DropKind) String() string {
	switch k {
	case DropMove:
		return "move"
	case DropReorder:
		return "reorder"
	default:
		return "none"
	}
}

// Drop is the outcome of a gesture end
type Drop struct {
	Kind        DropKind
	ItemID      string
	Source      models.Status
	Destination models.Status // DropMove only
	Index       int           // DropReorder only
}
