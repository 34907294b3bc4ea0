package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/taskboard/internal/daemon"
	"github.com/thenoetrevino/taskboard/internal/events"
)

// EventTimeout bounds how long tests wait for a hub delivery
const EventTimeout = 2 * time.Second

// StartHub runs a change hub on a socket in a fresh temp dir until the
// test ends. The socket accepts connections as soon as it returns.
func StartHub(t *testing.T) (*daemon.Server, string) {
	t.Helper()
	socketPath := filepath.Join(t.TempDir(), "taskboard.sock")

	server, err := daemon.NewServer(socketPath)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = server.Start(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return server, socketPath
}

// ConnectHubClient returns a client connected to the hub at socketPath
func ConnectHubClient(t *testing.T, socketPath string) *events.Client {
	t.Helper()
	client, err := events.NewClient(socketPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), EventTimeout)
	defer cancel()
	require.NoError(t, client.Connect(ctx))
	return client
}

// ListenHub starts listening on client for the rest of the test
func ListenHub(t *testing.T, client *events.Client) <-chan events.Event {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	ch, err := client.Listen(ctx)
	require.NoError(t, err)
	return ch
}

// WaitForHubClients waits until the hub counts at least n connected clients
func WaitForHubClients(t *testing.T, server *daemon.Server, n int32) {
	t.Helper()
	require.Eventually(t, func() bool {
		return server.Metrics().Snapshot().ConnectedClients >= n
	}, EventTimeout, 10*time.Millisecond)
}

// WaitForEvent returns the next event on ch or fails the test
func WaitForEvent(t *testing.T, ch <-chan events.Event) events.Event {
	t.Helper()
	select {
	case event, ok := <-ch:
		require.True(t, ok, "event channel closed")
		return event
	case <-time.After(EventTimeout):
		t.Fatal("timeout waiting for event")
		return events.Event{}
	}
}
