package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hoodion/prefiction-2/internal/config"
	"github.com/hoodion/prefiction-2/internal/httpserver"
	"github.com/hoodion/prefiction-2/internal/observability"
)

func newServeCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := config.Load(ctx)
			if err != nil {
				return err
			}
			logger, err := observability.NewLogger(cfg.Log.Level)
			if err != nil {
				return fmt.Errorf("initialise logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()
			logger = logger.Named("web")

			srv, err := httpserver.New(cfg, httpserver.Deps{Logger: logger})
			if err != nil {
				return err
			}
			if addr != "" {
				srv.Addr = addr
			}
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", srv.Addr, err)
			}
			return serve(ctx, srv, ln, cfg, logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (default \":$PORT\")")
	return cmd
}

// serve runs srv on ln until ctx is canceled, then drains in-flight requests.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, cfg config.Config, logger *zap.Logger) error {
	serverLogger := logger.Named("http").With(
		zap.String("addr", ln.Addr().String()),
		zap.String("env", cfg.Server.Environment),
	)

	errCh := make(chan error, 1)
	go func() {
		serverLogger.Info("prefiction web listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received; draining requests")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	<-errCh
	return nil
}
