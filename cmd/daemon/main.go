// Command daemon runs the change hub on its own, for boards that write to a
// shared sqlite or postgres store directly rather than through taskboard serve
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/thenoetrevino/taskboard/internal/config"
	"github.com/thenoetrevino/taskboard/internal/daemon"
	"github.com/thenoetrevino/taskboard/internal/logging"
)

func main() {
	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(os.Stderr, cfg.Log.Level)

	server, err := daemon.NewServer(cfg.Server.Socket)
	if err != nil {
		slog.Error("failed to create daemon", "error", err)
		os.Exit(1)
	}

	slog.Info("taskboard hub starting", "socket_path", cfg.Server.Socket, "pid", os.Getpid())

	// Start the daemon (blocks until shutdown)
	if err := server.Start(ctx); err != nil {
		slog.Error("daemon error", "error", err)
		os.Exit(1)
	}

	slog.Info("taskboard hub shutting down gracefully")
}
