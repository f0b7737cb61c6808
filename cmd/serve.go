package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/agentctl/internal/adapters/httpapi"
)

func newServeCmd(app *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Poll continuously and serve the HTTP control API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, app, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to server.addr)")

	return cmd
}

func serve(ctx context.Context, app *app, addr string) error {
	if addr == "" {
		addr = app.cfg.ServerAddr
	}
	if err := app.lifecycle.LoadInstance(ctx); err != nil {
		return err
	}

	server := &http.Server{
		Addr: addr,
		Handler: httpapi.NewRouter(httpapi.Deps{
			Lifecycle: app.lifecycle,
			Gatherer:  app.registry,
			Clock:     app.clock,
			Logger:    app.logger.With().Str("component", "httpapi").Logger(),
		}),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	server.BaseContext = func(net.Listener) context.Context { return gctx }
	g.Go(func() error {
		return app.coordinator.Run(gctx)
	})
	g.Go(func() error {
		app.logger.Info().Str("addr", addr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
