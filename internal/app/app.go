// Package app wires the store, gateway and services into one container
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/taskboard/internal/board"
	"github.com/thenoetrevino/taskboard/internal/config"
	"github.com/thenoetrevino/taskboard/internal/database"
	"github.com/thenoetrevino/taskboard/internal/events"
	"github.com/thenoetrevino/taskboard/internal/gateway"
	"github.com/thenoetrevino/taskboard/internal/postgres"
	"github.com/thenoetrevino/taskboard/internal/restclient"
	executorservice "github.com/thenoetrevino/taskboard/internal/services/executor"
	taskservice "github.com/thenoetrevino/taskboard/internal/services/task"
)

// App holds all application services and provides dependency injection.
type App struct {
	// Remote store the gateway talks to
	remote gateway.RemoteStore

	// Event system for live updates
	eventClient events.EventPublisher

	Gateway *gateway.Gateway
	Board   *board.Store

	// Service layer (business logic)
	TaskService     taskservice.Service
	ExecutorService executorservice.Service

	closers []func() error
}

// New creates a new App over an already opened remote store
func New(remote gateway.RemoteStore, opts ...Option) *App {
	cfg := &appConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	gw := gateway.New(remote, gateway.WithLogger(cfg.logger))
	store := board.NewStore()

	taskOpts := []taskservice.Option{taskservice.WithLogger(cfg.logger)}
	if cfg.direct && cfg.eventClient != nil {
		taskOpts = append(taskOpts, taskservice.WithEventPublisher(cfg.eventClient))
	}

	return &App{
		remote:          remote,
		eventClient:     cfg.eventClient,
		Gateway:         gw,
		Board:           store,
		TaskService:     taskservice.NewService(gw, store, taskOpts...),
		ExecutorService: executorservice.NewService(remote),
	}
}

// Open connects to the store named by cfg and builds the App around it
func Open(ctx context.Context, cfg config.StoreConfig, opts ...Option) (*App, error) {
	var ac appConfig
	for _, opt := range opts {
		opt(&ac)
	}

	remote, closeFn, err := OpenStore(ctx, cfg, clientIDOf(ac.eventClient))
	if err != nil {
		return nil, err
	}
	if cfg.Driver != config.DriverHTTP {
		opts = append(opts, WithDirectWrites())
	}

	a := New(remote, opts...)
	if closeFn != nil {
		a.closers = append(a.closers, closeFn)
	}
	return a, nil
}

// OpenStore opens the remote store for cfg.Driver. clientID is sent with
// HTTP requests so the server does not echo this client's changes back.
func OpenStore(ctx context.Context, cfg config.StoreConfig, clientID string) (gateway.RemoteStore, func() error, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		path := cfg.Path
		if path == "" {
			var err error
			if path, err = database.DefaultPath(); err != nil {
				return nil, nil, err
			}
		}
		db, err := database.InitDB(ctx, path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return database.NewStore(db), db.Close, nil

	case config.DriverPostgres:
		pool, err := postgres.Connect(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return postgres.NewStore(pool), func() error { pool.Close(); return nil }, nil

	case config.DriverHTTP:
		var opts []restclient.Option
		if clientID != "" {
			opts = append(opts, restclient.WithClientID(clientID))
		}
		client, err := restclient.New(cfg.URL, opts...)
		if err != nil {
			return nil, nil, err
		}
		return client, nil, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Driver)
}

// Remote returns the underlying store for direct access, as the HTTP server needs
func (a *App) Remote() gateway.RemoteStore {
	return a.remote
}

// Events returns the event publisher, or nil when live updates are off
func (a *App) Events() events.EventPublisher {
	return a.eventClient
}

// Close releases the store connection and the event client
func (a *App) Close() error {
	var errs []error
	if a.eventClient != nil {
		errs = append(errs, a.eventClient.Close())
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func clientIDOf(ec events.EventPublisher) string {
	if ec == nil {
		return ""
	}
	return ec.ClientID()
}
