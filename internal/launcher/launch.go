// Package launcher starts the interactive board
package launcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/thenoetrevino/taskboard/internal/app"
	"github.com/thenoetrevino/taskboard/internal/config"
	"github.com/thenoetrevino/taskboard/internal/events"
	"github.com/thenoetrevino/taskboard/internal/tui"
)

// Launch opens the store named by cfg, joins the change hub when one is
// running and shows the board until the user quits or a signal arrives.
// opts are appended to the program's defaults.
func Launch(ctx context.Context, cfg *config.Config, opts ...tea.ProgramOption) error {
	// Create root context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	eventClient := connectHub(ctx, cfg.Server.Socket)

	var appOpts []app.Option
	if eventClient != nil {
		appOpts = append(appOpts, app.WithEventPublisher(eventClient))
	}
	application, err := app.Open(ctx, cfg.Store, appOpts...)
	if err != nil {
		if eventClient != nil {
			_ = eventClient.Close()
		}
		return fmt.Errorf("failed to open store: %w", err)
	}
	// Closes the event client too
	defer func() {
		if err := application.Close(); err != nil {
			slog.Error("error closing store", "error", err)
		}
	}()

	model := tui.New(ctx, application.TaskService, application.Board.Updates(),
		boardOptions(ctx, cfg, eventClient)...)

	programOpts := append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	}, opts...)

	if _, err := tea.NewProgram(model, programOpts...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			slog.Info("shutdown signal received")
			return nil
		}
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// connectHub returns a client connected to the hub at socketPath, or nil
// when no hub is reachable. The board then works without live updates.
func connectHub(ctx context.Context, socketPath string) *events.Client {
	eventClient, err := events.NewClient(socketPath)
	if err != nil {
		hubErr := events.ClassifyHubError(socketPath, err)
		slog.Warn("failed to create hub client", "kind", hubErr.Kind.String(), "error", hubErr)
		slog.Info("continuing without live updates")
		return nil
	}

	if err := eventClient.Connect(ctx); err != nil {
		hubErr := events.ClassifyHubError(socketPath, err)
		slog.Warn("failed to connect to hub", "kind", hubErr.Kind.String(), "error", hubErr)
		slog.Info("continuing without live updates")
		_ = eventClient.Close()
		return nil
	}
	return eventClient
}

// boardOptions carries the config into the board and subscribes it to the
// hub when connected
func boardOptions(ctx context.Context, cfg *config.Config, eventClient *events.Client) []tui.Option {
	opts := []tui.Option{
		tui.WithKeyMappings(cfg.KeyMappings),
		tui.WithActivationDistance(int(cfg.Drag.ActivationDistance)),
		tui.WithLogger(slog.Default()),
	}
	if eventClient == nil {
		return opts
	}

	ch, err := eventClient.Listen(ctx)
	if err != nil {
		slog.Warn("live updates disabled", "error", err)
		return opts
	}
	return append(opts, tui.WithEvents(ch, eventClient.ClientID()))
}
