package app

import (
	"log/slog"

	"github.com/thenoetrevino/taskboard/internal/events"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	eventClient events.EventPublisher
	logger      *slog.Logger
	direct      bool
}

// WithEventPublisher sets the event publisher for the application
func WithEventPublisher(ec events.EventPublisher) Option {
	return func(cfg *appConfig) {
		cfg.eventClient = ec
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithDirectWrites marks the remote store as a database this process writes
// to itself, so the task service announces its own changes. Without it the
// server behind the store is expected to broadcast them.
func WithDirectWrites() Option {
	return func(cfg *appConfig) {
		cfg.direct = true
	}
}
