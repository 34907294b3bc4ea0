package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/thenoetrevino/taskboard/internal/models"
)

type mockRetryPublisher struct {
	sendAttempts int
	failUntil    int // Fail until this attempt number (0-indexed)
	lastEvent    Event
}

func (m *mockRetryPublisher) SendEvent(event Event) error {
	m.lastEvent = event
	currentAttempt := m.sendAttempts
	m.sendAttempts++

	if currentAttempt < m.failUntil {
		return errors.New("simulated send failure")
	}
	return nil
}

// Unused interface methods
func (m *mockRetryPublisher) Connect(ctx context.Context) error                { return nil }
func (m *mockRetryPublisher) Listen(ctx context.Context) (<-chan Event, error) { return nil, nil }
func (m *mockRetryPublisher) ClientID() string                                 { return "mock" }
func (m *mockRetryPublisher) Close() error                                     { return nil }

func TestPublishWithRetry_Success(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 0}
	event := Event{
		Type:     EventItemsChanged,
		Statuses: []models.Status{models.StatusDone},
	}

	err := PublishWithRetry(mock, event, 3)
	if err != nil {
		t.Errorf("Expected success, got error: %v", err)
	}

	if mock.sendAttempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", mock.sendAttempts)
	}

	if !mock.lastEvent.Touches(models.StatusDone) {
		t.Errorf("Expected event to touch DONE, got %v", mock.lastEvent.Statuses)
	}
}

func TestPublishWithRetry_SuccessAfterRetries(t *testing.T) {
	// Fail first 2 attempts, succeed on 3rd
	mock := &mockRetryPublisher{failUntil: 2}

	err := PublishWithRetry(mock, Event{Type: EventItemsChanged}, 3)
	if err != nil {
		t.Errorf("Expected success after retries, got error: %v", err)
	}

	if mock.sendAttempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", mock.sendAttempts)
	}
}

func TestPublishWithRetry_FailureAfterAllRetries(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 999}

	err := PublishWithRetry(mock, Event{Type: EventItemsChanged}, 3)
	if err == nil {
		t.Fatal("Expected error after all retries failed, got nil")
	}

	if mock.sendAttempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", mock.sendAttempts)
	}

	if err.Error() != "simulated send failure" {
		t.Errorf("Expected simulated failure, got '%s'", err.Error())
	}
}

func TestPublishWithRetry_NilClient(t *testing.T) {
	err := PublishWithRetry(nil, Event{Type: EventItemsChanged}, 3)
	if err != nil {
		t.Errorf("Expected nil error for nil client, got: %v", err)
	}
}

func TestPublishWithRetry_ExponentialBackoff(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 2}

	start := time.Now()
	err := PublishWithRetry(mock, Event{Type: EventItemsChanged}, 3)
	duration := time.Since(start)

	if err != nil {
		t.Errorf("Expected success after retries, got error: %v", err)
	}

	// First retry: 50ms, Second retry: 100ms
	if duration < 150*time.Millisecond {
		t.Errorf("Expected at least 150ms delay for retries, got %v", duration)
	}
}

func TestPublishWithRetry_ZeroRetries(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 999}

	err := PublishWithRetry(mock, Event{Type: EventItemsChanged}, 0)
	if err != nil {
		t.Errorf("Expected nil error with 0 retries, got: %v", err)
	}

	if mock.sendAttempts != 0 {
		t.Errorf("Expected 0 attempts with maxRetries=0, got %d", mock.sendAttempts)
	}
}

func TestEventTouches(t *testing.T) {
	all := Event{Type: EventItemsChanged}
	for _, s := range models.Statuses {
		if !all.Touches(s) {
			t.Errorf("Event without statuses should touch %s", s)
		}
	}

	some := Event{Type: EventItemsChanged, Statuses: []models.Status{models.StatusToDo}}
	if !some.Touches(models.StatusToDo) {
		t.Error("Expected TO_DO to be touched")
	}
	if some.Touches(models.StatusDone) {
		t.Error("Expected DONE not to be touched")
	}
}
