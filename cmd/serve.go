package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskboard/internal/api"
	"github.com/thenoetrevino/taskboard/internal/app"
	"github.com/thenoetrevino/taskboard/internal/cli"
	"github.com/thenoetrevino/taskboard/internal/config"
	"github.com/thenoetrevino/taskboard/internal/daemon"
	"github.com/thenoetrevino/taskboard/internal/logging"
	"golang.org/x/sync/errgroup"
)

var errServeOverHTTP = errors.New("serve needs a sqlite or postgres store, not the http driver")

func serveCmd() *cobra.Command {
	var (
		addr   string
		noHub  bool
		socket string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the store over HTTP and run the change hub",
		Long: `Serve exposes the configured store as the items and executors HTTP
resources. Every successful write is broadcast to boards connected to the
change hub socket, so they refresh without polling.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := cli.ConfigFromContext(ctx)
			if err != nil {
				return err
			}
			logging.Setup(cmd.ErrOrStderr(), cfg.Log.Level)

			if cfg.Store.Driver == config.DriverHTTP {
				return usageError(cmd, errServeOverHTTP)
			}
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}
			if !cmd.Flags().Changed("socket") {
				socket = cfg.Server.Socket
			}

			remote, closeStore, err := app.OpenStore(ctx, cfg.Store, "")
			if err != nil {
				return err
			}
			if closeStore != nil {
				defer func() { _ = closeStore() }()
			}

			var opts []api.Option
			g, gctx := errgroup.WithContext(ctx)

			if !noHub {
				hub, err := daemon.NewServer(socket)
				if err != nil {
					return fmt.Errorf("failed to create hub: %w", err)
				}
				opts = append(opts,
					api.WithNotifier(hub),
					api.WithHealth(func() any { return hub.Metrics().Snapshot() }),
				)
				g.Go(func() error { return hub.Start(gctx) })
			}

			router := api.NewRouter(remote, append(opts, api.WithLogger(slog.Default()))...)
			g.Go(func() error { return api.ListenAndServe(gctx, addr, router) })

			err = g.Wait()
			slog.Info("server stopped")
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringVar(&socket, "socket", "", "change hub socket path (default from config)")
	cmd.Flags().BoolVar(&noHub, "no-hub", false, "do not run the change hub")

	return cmd
}
