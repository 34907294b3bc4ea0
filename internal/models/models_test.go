package models

import (
	"errors"
	"testing"
)

// ============================================================================
// Status Tests
// ============================================================================

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw      string
		expected Status
		wantErr  bool
	}{
		{"TO_DO", StatusToDo, false},
		{"to do", StatusToDo, false},
		{"in-progress", StatusInProgress, false},
		{"In Progress", StatusInProgress, false},
		{"done", StatusDone, false},
		{"blocked", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseStatus(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidStatus) {
					t.Errorf("expected ErrInvalidStatus, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestStatusIndex(t *testing.T) {
	for i, status := range Statuses {
		if status.Index() != i {
			t.Errorf("expected %s at index %d, got %d", status, i, status.Index())
		}
	}
	if Status("NOPE").Index() != -1 {
		t.Error("unknown status should have index -1")
	}
}

func TestParsePriority(t *testing.T) {
	if p, err := ParsePriority("high"); err != nil || p != PriorityHigh {
		t.Errorf("expected HIGH, got %s (%v)", p, err)
	}
	if _, err := ParsePriority("urgent"); !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("expected ErrInvalidPriority, got %v", err)
	}
}

// ============================================================================
// Task Tests
// ============================================================================

func TestTaskPatch_ApplyTo(t *testing.T) {
	title := "New title"
	empty := ""
	done := StatusDone
	task := Task{ID: "a", Title: "Old", Description: "desc", File: "f.png", Status: StatusToDo}

	got := TaskPatch{Title: &title, File: &empty, Status: &done}.ApplyTo(task)

	if got.Title != "New title" {
		t.Errorf("expected title to change, got %q", got.Title)
	}
	if got.File != "" {
		t.Errorf("expected file to be cleared, got %q", got.File)
	}
	if got.Description != "desc" {
		t.Errorf("expected description untouched, got %q", got.Description)
	}
	if got.Status != StatusDone {
		t.Errorf("expected DONE, got %s", got.Status)
	}
	if task.Title != "Old" {
		t.Error("ApplyTo must not modify its argument")
	}
}

func TestTaskPatch_IsEmpty(t *testing.T) {
	if !(TaskPatch{}).IsEmpty() {
		t.Error("zero patch should be empty")
	}
	order := 2
	if (TaskPatch{OrderInColumn: &order}).IsEmpty() {
		t.Error("patch with order should not be empty")
	}
}

func TestTask_IsTemporary(t *testing.T) {
	if !(Task{ID: "temp-1700000000000"}).IsTemporary() {
		t.Error("temp- prefixed id should be temporary")
	}
	if (Task{ID: "3f0c2a4e-0000-4000-8000-000000000000"}).IsTemporary() {
		t.Error("uuid should not be temporary")
	}
}
