package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/thenoetrevino/taskboard/internal/models"
)

// Client represents a connection to the taskboard daemon for receiving live updates.
// It handles event sending, receiving, batching and reconnection.
type Client struct {
	socketPath string
	clientID   string
	conn       net.Conn
	encoder    *json.Encoder
	decoder    *json.Decoder
	mu         sync.Mutex

	// Batching configuration
	eventQueue chan Event
	debounce   time.Duration
	closed     bool // Prevent double-close panics

	// Reconnection configuration
	maxRetries int
	baseDelay  time.Duration

	// Event tracking
	lastSequence int64

	// Context for graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc

	// Batching goroutine
	batcherOnce sync.Once
	batcherDone chan struct{}
}

// NewClient creates a new event client but does not connect.
// The socket path should be the full path to the Unix domain socket.
// The debounce duration controls event batching (default 100ms, TASKBOARD_EVENT_DEBOUNCE_MS overrides).
func NewClient(socketPath string) (*Client, error) {
	debounceMs := 100
	if envVal := os.Getenv("TASKBOARD_EVENT_DEBOUNCE_MS"); envVal != "" {
		if parsed, err := strconv.Atoi(envVal); err == nil && parsed > 0 {
			debounceMs = parsed
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		socketPath:  socketPath,
		clientID:    uuid.NewString(),
		eventQueue:  make(chan Event, 100),
		debounce:    time.Duration(debounceMs) * time.Millisecond,
		maxRetries:  5,
		baseDelay:   1 * time.Second,
		ctx:         ctx,
		cancel:      cancel,
		batcherDone: make(chan struct{}),
	}, nil
}

// ClientID returns the identifier stamped on every event this client sends
func (c *Client) ClientID() string {
	return c.clientID
}

// Connect establishes a connection to the daemon socket and introduces the client.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("failed to dial daemon socket: %w", err)
	}

	c.conn = conn
	c.encoder = json.NewEncoder(conn)
	c.decoder = json.NewDecoder(conn)

	msg := Message{
		Version: ProtocolVersion,
		Type:    "hello",
		Hello:   &HelloMessage{ClientID: c.clientID},
	}
	if err := c.encoder.Encode(msg); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			slog.Debug("error closing connection", "error", closeErr)
		}
		c.conn = nil
		return fmt.Errorf("failed to send hello: %w", err)
	}

	// Reconnects reuse the running batcher
	c.batcherOnce.Do(func() {
		go c.startBatcher()
	})

	return nil
}

// SendEvent queues an event to be sent to the daemon.
// Events are batched and sent in bursts within the debounce window.
// Returns error if the queue is full (non-blocking send).
func (c *Client) SendEvent(event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("event client closed")
	}

	select {
	case c.eventQueue <- event:
		return nil
	default:
		return fmt.Errorf("event queue full")
	}
}

// startBatcher runs in a goroutine and batches events from the queue.
// It sends a single event every debounce duration if any events are pending.
// The batched event names the union of touched columns, or none if any
// queued event touched every column.
func (c *Client) startBatcher() {
	defer close(c.batcherDone)

	ticker := time.NewTicker(c.debounce)
	defer ticker.Stop()

	var pending bool
	var allColumns bool
	touched := make(map[models.Status]bool)

	merge := func(event Event) {
		if len(event.Statuses) == 0 {
			allColumns = true
		}
		for _, s := range event.Statuses {
			touched[s] = true
		}
		pending = true
	}

	flushPending := func() {
		if !pending {
			return
		}

		batch := Event{
			Type:      EventItemsChanged,
			Origin:    c.clientID,
			Timestamp: time.Now(),
		}
		if !allColumns {
			for _, s := range models.Statuses {
				if touched[s] {
					batch.Statuses = append(batch.Statuses, s)
				}
			}
		}

		if err := c.sendToSocket(batch); err != nil {
			if !isConnectionError(err) {
				slog.Warn("failed to send batched event", "error", err)
			}
		}

		pending = false
		allColumns = false
		clear(touched)
	}

	for {
		select {
		case <-c.ctx.Done():
			flushPending()
			return

		case event, ok := <-c.eventQueue:
			if !ok {
				flushPending()
				return
			}
			merge(event)

			// Drain whatever else was queued during this batch window
		drainLoop:
			for {
				select {
				case evt, ok := <-c.eventQueue:
					if !ok {
						break drainLoop
					}
					merge(evt)
				default:
					break drainLoop
				}
			}

		case <-ticker.C:
			flushPending()
		}
	}
}

// sendToSocket sends an event to the daemon socket.
func (c *Client) sendToSocket(event Event) error {
	return c.send(Message{
		Version: ProtocolVersion,
		Type:    "event",
		Event:   &event,
	})
}

func (c *Client) send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return fmt.Errorf("not connected to daemon")
	}

	// Set a short write deadline to detect dead connections
	if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
		return fmt.Errorf("connection error: %w", err)
	}

	return c.encoder.Encode(msg)
}

// Listen starts listening for events from the daemon.
// It returns a channel that receives events and handles reconnection automatically.
// Events this client originated are not delivered.
// The channel is closed when context is done or reconnection fails.
func (c *Client) Listen(ctx context.Context) (<-chan Event, error) {
	eventChan := make(chan Event, 10)
	go c.listenLoop(ctx, eventChan)
	return eventChan, nil
}

// listenLoop reads events from the daemon and handles reconnection.
func (c *Client) listenLoop(ctx context.Context, eventChan chan Event) {
	defer close(eventChan)

	for {
		select {
		case <-ctx.Done():
			return
		default:
			err := c.readEvents(ctx, eventChan)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				slog.Info("daemon connection lost, reconnecting", "error", err)

				if c.reconnect(ctx) {
					continue
				}

				slog.Warn("failed to reconnect to daemon, giving up", "attempts", c.maxRetries)
				return
			}
		}
	}
}

// readEvents reads messages from the socket and sends them to the event channel.
func (c *Client) readEvents(ctx context.Context, eventChan chan Event) error {
	for {
		var msg Message

		c.mu.Lock()
		if c.conn == nil {
			c.mu.Unlock()
			return fmt.Errorf("connection closed")
		}
		// Daemon pings every 30s, so 60s of silence means a hung connection
		if err := c.conn.SetReadDeadline(time.Now().Add(60 * time.Second)); err != nil {
			c.mu.Unlock()
			return fmt.Errorf("failed to set read deadline: %w", err)
		}
		decoder := c.decoder
		c.mu.Unlock()

		if err := decoder.Decode(&msg); err != nil {
			return fmt.Errorf("failed to decode message: %w", err)
		}

		switch msg.Type {
		case "event":
			if msg.Event == nil {
				continue
			}
			// Basic duplicate detection
			if msg.Event.SequenceID <= c.lastSequence {
				continue
			}
			c.lastSequence = msg.Event.SequenceID
			if msg.Event.Origin == c.clientID {
				continue
			}
			select {
			case eventChan <- *msg.Event:
			case <-ctx.Done():
				return ctx.Err()
			}

		case "ping":
			pong := Message{Version: ProtocolVersion, Type: "pong", Event: &Event{Type: EventPong}}
			if err := c.send(pong); err != nil {
				if !isConnectionError(err) {
					slog.Debug("failed to send pong", "error", err)
				}
			}
		}
	}
}

// isConnectionError checks if an error is a network connection error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "broken pipe") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "use of closed network connection") ||
		strings.Contains(errStr, "not connected")
}

// reconnect attempts to reconnect to the daemon with exponential backoff.
// It tries up to maxRetries times, doubling the delay each time.
func (c *Client) reconnect(ctx context.Context) bool {
	delay := c.baseDelay

	for i := 0; i < c.maxRetries; i++ {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(delay):
			c.mu.Lock()
			if c.conn != nil {
				_ = c.conn.Close()
				c.conn = nil
			}
			c.mu.Unlock()

			if err := c.Connect(ctx); err == nil {
				slog.Info("reconnected to daemon", "attempt", i+1)
				return true
			}

			slog.Debug("reconnection attempt failed", "attempt", i+1, "max_retries", c.maxRetries, "retry_in", delay)
			delay *= 2 // 1s, 2s, 4s, 8s, 16s
		}
	}

	return false
}

// Close closes the connection to the daemon and stops all goroutines.
// Pending batched events are flushed before the connection closes.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true

	// Lets the batcher flush pending events before exiting
	close(c.eventQueue)
	c.mu.Unlock()

	// Only wait for the batcher if one was started
	started := true
	c.batcherOnce.Do(func() {
		started = false
	})
	if started {
		<-c.batcherDone
	}
	c.cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		return err
	}

	return nil
}
