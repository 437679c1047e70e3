package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/3-lines-studio/ssrkit"
	"github.com/3-lines-studio/ssrkit/internal/adapters/env"
	"github.com/3-lines-studio/ssrkit/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var (
		paths pathFlags
		port  string
		dev   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := env.Load()
			if err != nil {
				return err
			}
			paths.apply(cmd, cfg)
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("dev") {
				cfg.Dev = dev
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, logger)
		},
	}

	paths.register(cmd)
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (PORT)")
	cmd.Flags().BoolVar(&dev, "dev", false, "reload bundle and template on change (SSR_DEV)")
	return cmd
}

func serve(ctx context.Context, cfg *env.Config, logger *slog.Logger) error {
	app, err := ssrkit.New(
		ssrkit.WithBundlePath(cfg.BundlePath),
		ssrkit.WithTemplatePath(cfg.TemplatePath),
		ssrkit.WithPublicDir(cfg.PublicDir),
		ssrkit.WithDistDir(cfg.DistDir),
		ssrkit.WithRuntime(cfg.Runtime),
		ssrkit.WithRenderTimeout(cfg.RenderTimeout),
		ssrkit.WithDistinguishNotFound(cfg.DistinguishNotFound),
		ssrkit.WithDev(cfg.Dev),
		ssrkit.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Stop(); err != nil {
			logger.Warn("renderer stop failed", "error", err)
		}
	}()

	servers := []*http.Server{{
		Addr:              cfg.Addr(),
		Handler:           app.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}}
	if cfg.MetricsAddr != "" {
		servers = append(servers, &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           app.MetricsHandler(),
			ReadHeaderTimeout: 10 * time.Second,
		})
	}

	errCh := make(chan error, len(servers))
	for _, srv := range servers {
		go func(srv *http.Server) {
			logger.Info("listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("server on %s: %w", srv.Addr, err)
			}
		}(srv)
	}

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown failed", "addr", srv.Addr, "error", err)
		}
	}

	return serveErr
}
