package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/taskboard/internal/app"
	"github.com/thenoetrevino/taskboard/internal/config"
	"github.com/thenoetrevino/taskboard/internal/events"
)

type contextKey string

const (
	cliKey    contextKey = "cli"
	configKey contextKey = "config"
)

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with services
	Config *config.Config
	owned  bool
}

// NewCLI opens the configured store and, when the hub is running, connects
// the event client so other boards refresh after this command's writes
func NewCLI(ctx context.Context, cfg *config.Config) (*CLI, error) {
	var opts []app.Option

	// Try to connect to the hub (optional - silent fallback)
	if client, err := events.NewClient(cfg.Server.Socket); err == nil {
		if err := client.Connect(ctx); err == nil {
			opts = append(opts, app.WithEventPublisher(client))
		} else {
			slog.Debug("event hub not reachable", "socket", cfg.Server.Socket, "error", err)
			_ = client.Close()
		}
	}

	application, err := app.Open(ctx, cfg.Store, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return &CLI{App: application, Config: cfg, owned: true}, nil
}

// WithCLI stores a ready CLI in ctx. Commands then use it instead of opening
// their own store, and do not close it.
func WithCLI(ctx context.Context, c *CLI) context.Context {
	return context.WithValue(ctx, cliKey, c)
}

// WithConfig stores the loaded config in ctx
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// ConfigFromContext returns the config stored by WithConfig, or loads it
func ConfigFromContext(ctx context.Context) (*config.Config, error) {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok && cfg != nil {
		return cfg, nil
	}
	return config.Load()
}

// GetCLIFromContext returns the injected CLI or opens a new one
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if c, ok := ctx.Value(cliKey).(*CLI); ok && c != nil {
		return c, nil
	}
	cfg, err := ConfigFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return NewCLI(ctx, cfg)
}

// Close cleans up CLI resources it opened itself
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	return c.App.Close()
}
