package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/thenoetrevino/taskboard/internal/events"
)

const (
	pingInterval   = 30 * time.Second
	healthInterval = 60 * time.Second
	staleAfter     = 90 * time.Second
)

// client represents a connected client to the hub
type client struct {
	conn      net.Conn
	send      chan events.Message
	id        string
	lastPong  time.Time
	mu        sync.Mutex // Protects id and lastPong
	closeOnce sync.Once  // Ensures send channel is closed only once
}

func (c *client) clientID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id
}

// Server is the change-notification hub. Writers publish items_changed
// events, either over the socket or through Broadcast, and every other
// connected client receives them with a sequence number.
type Server struct {
	socketPath       string
	listener         net.Listener
	clients          map[*client]bool
	mu               sync.RWMutex
	ctx              context.Context
	cancel           context.CancelFunc
	broadcast        chan events.Event
	metrics          *Metrics
	sequenceCounter  atomic.Int64
	clientBufferSize int
	shutdownOnce     sync.Once
	logger           *slog.Logger
}

// getEnvInt reads an integer from an environment variable, returning defaultVal if not set or invalid
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultVal
}

// NewServer creates a new hub listening on socketPath
func NewServer(socketPath string) (*Server, error) {
	dir := filepath.Dir(socketPath)
	if dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create socket directory: %w", err)
		}
	}

	// Remove stale socket file if it exists
	if _, err := os.Stat(socketPath); err == nil {
		if err := os.Remove(socketPath); err != nil {
			return nil, fmt.Errorf("failed to remove stale socket: %w", err)
		}
	}

	lc := net.ListenConfig{}
	listener, err := lc.Listen(context.Background(), "unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create socket listener: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		socketPath:       socketPath,
		listener:         listener,
		clients:          make(map[*client]bool),
		ctx:              ctx,
		cancel:           cancel,
		broadcast:        make(chan events.Event, getEnvInt("TASKBOARD_DAEMON_BROADCAST_BUFFER", 100)),
		metrics:          NewMetrics(),
		clientBufferSize: getEnvInt("TASKBOARD_DAEMON_CLIENT_BUFFER", 10),
		logger:           slog.Default().With("component", "daemon"),
	}, nil
}

// Metrics returns the hub's live counters
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Start runs the hub until ctx is cancelled or Shutdown is called.
// It starts three goroutines: accept, broadcast and health monitoring.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("daemon starting", "socket", s.socketPath)

	combinedCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-s.ctx.Done()
		cancel()
	}()

	acceptErr := make(chan error, 1)
	go func() {
		acceptErr <- s.acceptLoop(combinedCtx)
	}()

	go s.broadcastLoop(combinedCtx)
	go s.monitorHealth(combinedCtx)

	select {
	case <-combinedCtx.Done():
		s.logger.Info("daemon context cancelled, shutting down")
	case err := <-acceptErr:
		if err != nil {
			s.logger.Error("accept loop failed", "error", err)
		}
	}

	return s.Shutdown()
}

// acceptLoop accepts incoming client connections
func (s *Server) acceptLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		// Deadline lets the loop observe ctx cancellation
		if ul, ok := s.listener.(*net.UnixListener); ok {
			if err := ul.SetDeadline(time.Now().Add(1 * time.Second)); err != nil {
				s.logger.Debug("error setting listener deadline", "error", err)
			}
		}

		conn, err := s.listener.Accept()
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				continue
			}
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept error: %w", err)
		}

		c := &client{
			conn:     conn,
			send:     make(chan events.Message, s.clientBufferSize),
			lastPong: time.Now(),
		}

		s.mu.Lock()
		s.clients[c] = true
		s.mu.Unlock()
		s.updateClientCount()

		s.logger.Debug("client connected", "clients", s.getClientCount())

		go s.handleClient(c)
		go s.clientWriter(c)
	}
}

// broadcastLoop stamps each event with the next sequence number and fans it
// out to every client except the one that caused it
func (s *Server) broadcastLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-s.broadcast:
			if !ok {
				return
			}
			event.SequenceID = s.sequenceCounter.Add(1)
			if event.Timestamp.IsZero() {
				event.Timestamp = time.Now()
			}
			s.metrics.IncBroadcasts()

			s.mu.RLock()
			for c := range s.clients {
				if event.Origin != "" && c.clientID() == event.Origin {
					continue
				}
				msg := events.Message{
					Version: events.ProtocolVersion,
					Type:    "event",
					Event:   &event,
				}
				if !s.sendToClient(c, msg) {
					s.logger.Warn("client send queue full, event dropped", "seq", event.SequenceID)
				}
			}
			s.mu.RUnlock()
		}
	}
}

// handleClient reads messages from a connected client
func (s *Server) handleClient(c *client) {
	defer func() {
		s.removeClient(c)
		s.logger.Debug("client disconnected", "clients", s.getClientCount())
	}()

	decoder := json.NewDecoder(c.conn)

	for {
		var msg events.Message
		if err := decoder.Decode(&msg); err != nil {
			return
		}

		if msg.Version != 0 && msg.Version != events.ProtocolVersion {
			s.logger.Warn("protocol version mismatch", "got", msg.Version, "want", events.ProtocolVersion)
		}

		switch msg.Type {
		case "event":
			if msg.Event == nil || msg.Event.Type != events.EventItemsChanged {
				continue
			}
			s.metrics.IncEventsReceived()
			if err := s.Broadcast(*msg.Event); err != nil {
				s.logger.Warn("dropping client event", "error", err)
			}

		case "hello":
			if msg.Hello != nil {
				c.mu.Lock()
				c.id = msg.Hello.ClientID
				c.mu.Unlock()
			}

		case "pong":
			c.mu.Lock()
			c.lastPong = time.Now()
			c.mu.Unlock()
		}
	}
}

// clientWriter sends messages to a client
func (s *Server) clientWriter(c *client) {
	encoder := json.NewEncoder(c.conn)

	for msg := range c.send {
		if err := encoder.Encode(msg); err != nil {
			return
		}
	}
}

// monitorHealth pings clients and removes the ones that stopped answering
func (s *Server) monitorHealth(ctx context.Context) {
	pingTicker := time.NewTicker(pingInterval)
	defer pingTicker.Stop()

	healthTicker := time.NewTicker(healthInterval)
	defer healthTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-pingTicker.C:
			pingMsg := events.Message{
				Version: events.ProtocolVersion,
				Type:    "ping",
				Event:   &events.Event{Type: events.EventPing},
			}
			for _, c := range s.snapshotClients() {
				if !s.sendToClient(c, pingMsg) {
					s.logger.Debug("failed to send ping, queue full")
				}
			}

		case <-healthTicker.C:
			// Collect first, remove outside the server lock
			now := time.Now()
			var stale []*client
			for _, c := range s.snapshotClients() {
				c.mu.Lock()
				lastPong := c.lastPong
				c.mu.Unlock()
				if now.Sub(lastPong) > staleAfter {
					stale = append(stale, c)
				}
			}
			for _, c := range stale {
				s.logger.Info("removing stale client")
				s.removeClient(c)
			}
		}
	}
}

// Broadcast queues an event for fan-out (non-blocking)
func (s *Server) Broadcast(event events.Event) (err error) {
	// Broadcasting after Shutdown closed the channel is not fatal
	defer func() {
		if recover() != nil {
			err = fmt.Errorf("daemon is shut down")
		}
	}()

	select {
	case s.broadcast <- event:
		return nil
	default:
		s.metrics.IncEventsDropped()
		return fmt.Errorf("broadcast channel full")
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() error {
	s.shutdownOnce.Do(func() {
		s.logger.Info("shutting down daemon")

		s.cancel()

		if s.listener != nil {
			if err := s.listener.Close(); err != nil {
				s.logger.Debug("error closing listener", "error", err)
			}
		}

		s.mu.Lock()
		for c := range s.clients {
			_ = c.conn.Close()
			c.closeOnce.Do(func() {
				close(c.send)
			})
		}
		s.clients = make(map[*client]bool)
		s.mu.Unlock()
		s.updateClientCount()

		if err := os.Remove(s.socketPath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to remove socket file", "error", err)
		}

		close(s.broadcast)
	})

	return nil
}

// Helper methods

func (s *Server) snapshotClients() []*client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	return clients
}

func (s *Server) getClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) updateClientCount() {
	s.metrics.SetConnectedClients(int32(s.getClientCount()))
}

// removeClient safely removes a client from the server
func (s *Server) removeClient(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()

	_ = c.conn.Close()
	c.closeOnce.Do(func() {
		close(c.send)
	})

	s.updateClientCount()
}

// sendToClient attempts to send a message to a client (non-blocking)
// Returns true if successful, false if the queue is full
func (s *Server) sendToClient(c *client, msg events.Message) (ok bool) {
	// The client may have been removed concurrently
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	select {
	case c.send <- msg:
		s.metrics.IncEventsSent()
		return true
	default:
		s.metrics.IncEventsDropped()
		return false
	}
}
