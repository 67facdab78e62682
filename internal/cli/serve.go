package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrops-br/catalog-viewer/internal/app/service"
	"github.com/mrops-br/catalog-viewer/internal/infrastructure/config"
	"github.com/mrops-br/catalog-viewer/internal/infrastructure/fakestore"
	"github.com/mrops-br/catalog-viewer/internal/infrastructure/http"
	"github.com/mrops-br/catalog-viewer/internal/infrastructure/http/handler"
	"github.com/mrops-br/catalog-viewer/internal/infrastructure/http/views"
	"github.com/mrops-br/catalog-viewer/internal/infrastructure/repository/memory"
	"github.com/mrops-br/catalog-viewer/internal/infrastructure/telemetry"
	"github.com/spf13/cobra"
)

const instrumentationName = "catalog-viewer"

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog web UI and JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return runServe(cmd.Context(), cfg)
		},
	}
}

func newTelemetry(cfg *config.Config) (*telemetry.Telemetry, error) {
	level := telemetry.ParseLevel(cfg.LogLevel)
	if !cfg.OTLP.Enabled {
		return telemetry.NewNoOpTelemetry(&cfg.OTLP, level, os.Stdout, true), nil
	}
	return telemetry.NewTelemetry(&cfg.OTLP, level)
}

func runServe(ctx context.Context, cfg *config.Config) error {
	telem, err := newTelemetry(cfg)
	if err != nil {
		return fmt.Errorf("initialize telemetry: %w", err)
	}

	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := telem.Shutdown(shutdownCtx); err != nil {
			telem.Logger.Error("Error shutting down telemetry", slog.String("error", err.Error()))
		}
	}()

	tracer := telem.TracerProvider.Tracer(instrumentationName)
	meter := telem.MeterProvider.Meter(instrumentationName)
	logger := telem.Logger

	logger.Info("Starting catalog viewer",
		slog.String("products_api", cfg.Upstream.BaseURL),
	)

	source := fakestore.NewClient(&cfg.Upstream, tracer, meter, logger)
	sessions := memory.NewSessionRepository(tracer, logger)
	catalogService := service.NewCatalogService(source, sessions, tracer, meter, logger)

	renderer, err := views.NewRenderer()
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	server := http.NewServer(
		&cfg.Server,
		handler.NewCatalogHandler(catalogService, renderer, logger, cfg.Server.SecureCookie),
		handler.NewAPIHandler(catalogService, logger),
		logger,
		telem,
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweepInterval := cfg.Server.SessionTTL / 2
	if sweepInterval < time.Second {
		sweepInterval = time.Second
	}
	sweeperDone := make(chan struct{})
	go func() {
		defer close(sweeperDone)
		catalogService.RunSweeper(ctx, cfg.Server.SessionTTL, sweepInterval)
	}()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server...")
	case err = <-serverErr:
		if err != nil {
			logger.Error("Server error", slog.String("error", err.Error()))
		}
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Error("Server shutdown failed", slog.String("error", shutdownErr.Error()))
	}
	<-sweeperDone

	logger.Info("Server stopped")
	return err
}
