package models

import "time"

// Task represents a single card on the board.
// Optional string fields hold "" when absent.
type Task struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	File          string    `json:"file,omitempty"`
	Status        Status    `json:"status"`
	Priority      Priority  `json:"priority"`
	Deadline      string    `json:"deadline"`
	ExecutorID    string    `json:"executor,omitempty"`
	OrderInColumn int       `json:"orderInColumn"`
	CreatedAt     time.Time `json:"createdAt"`
}

// IsTemporary reports whether the task only exists in an optimistic preview
func (t Task) IsTemporary() bool {
	return len(t.ID) > len(TempIDPrefix) && t.ID[:len(TempIDPrefix)] == TempIDPrefix
}

// TaskPatch is a partial update. Nil fields are left untouched,
// a pointer to "" clears an optional field.
type TaskPatch struct {
	Title         *string   `json:"title,omitempty"`
	Description   *string   `json:"description,omitempty"`
	File          *string   `json:"file,omitempty"`
	Status        *Status   `json:"status,omitempty"`
	Priority      *Priority `json:"priority,omitempty"`
	Deadline      *string   `json:"deadline,omitempty"`
	ExecutorID    *string   `json:"executor,omitempty"`
	OrderInColumn *int      `json:"orderInColumn,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.File == nil &&
		p.Status == nil && p.Priority == nil && p.Deadline == nil &&
		p.ExecutorID == nil && p.OrderInColumn == nil
}

// ApplyTo returns a copy of t with the patch applied
func (p TaskPatch) ApplyTo(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.File != nil {
		t.File = *p.File
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Deadline != nil {
		t.Deadline = *p.Deadline
	}
	if p.ExecutorID != nil {
		t.ExecutorID = *p.ExecutorID
	}
	if p.OrderInColumn != nil {
		t.OrderInColumn = *p.OrderInColumn
	}
	return t
}

// OrderUpdate is one row of a batched order upsert keyed by task ID
type OrderUpdate struct {
	ID            string `json:"id"`
	OrderInColumn int    `json:"orderInColumn"`
}

// Executor is a person a task can be assigned to
type Executor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
