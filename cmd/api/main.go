package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"order-dashboard/internal/client"
	"order-dashboard/internal/config"
	"order-dashboard/internal/database"
	"order-dashboard/internal/export"
	"order-dashboard/internal/handler"
	"order-dashboard/internal/metrics"
	"order-dashboard/internal/notify"
	"order-dashboard/internal/orders"
	"order-dashboard/internal/repository"
	"order-dashboard/internal/router"
	"order-dashboard/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().
		Str("orders_api", cfg.OrdersAPI.BaseURL).
		Str("settings_backend", cfg.Settings.Backend).
		Msg("starting order dashboard server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var m *metrics.Metrics
	clientOpts := []client.Option{}
	if cfg.Metrics.Enabled {
		m = metrics.New()
		clientOpts = append(clientOpts, client.WithObserver(m))
	}

	apiClient := client.New(client.Config{
		BaseURL: cfg.OrdersAPI.BaseURL,
		Timeout: cfg.OrdersAPI.RequestTimeout(),
	}, logger, clientOpts...)

	// Preferences live in a JSON file by default, or in PostgreSQL.
	prefRepo, closeRepo, err := newPreferenceRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	// CSV exports go to S3 when enabled, with the local directory as fallback.
	fileSaver := export.NewFileSaver(cfg.Export.Dir, logger)
	var s3Saver export.Saver
	if cfg.S3.Enabled {
		s3Saver, err = export.NewS3Saver(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 saver, falling back to local file system only")
			s3Saver = nil
		}
	} else {
		logger.Info().Str("dir", cfg.Export.Dir).Msg("using local file system for CSV exports (S3 disabled)")
	}
	saver := export.NewFallbackSaver(s3Saver, fileSaver, cfg.S3.Enabled, logger)

	notifications := notify.NewCenter(notify.DefaultDisplayDuration, logger)

	var recorder service.Recorder
	if m != nil {
		recorder = m
	}

	dashboardService := service.NewDashboardService(
		apiClient,
		orders.NewStore(),
		notifications,
		saver,
		recorder,
		service.DashboardOptions{
			PageSize:     cfg.Dashboard.PageSize,
			RefreshDelay: cfg.Dashboard.RefreshDelay(),
			Location:     cfg.Dashboard.Location(),
		},
		logger,
	)
	defer dashboardService.Close()

	settingsService := service.NewSettingsService(prefRepo, logger)
	if _, err := settingsService.Load(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to load preferences, using defaults")
	}

	// Initial load; a failure is already surfaced as a notification.
	if err := dashboardService.Refresh(ctx); err != nil {
		logger.Warn().Err(err).Msg("initial order fetch failed")
	}

	mux := router.New(
		handler.NewDashboardHandler(dashboardService, notifications, logger),
		handler.NewSettingsHandler(settingsService, logger),
		m,
		logger,
	)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.OrdersAPI.RequestTimeout() + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newPreferenceRepository builds the configured settings backend. The returned
// close function releases any database pool.
func newPreferenceRepository(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.PreferenceRepository, func(), error) {
	if cfg.Settings.Backend != config.SettingsBackendPostgres {
		logger.Info().Str("file", cfg.Settings.File).Msg("storing preferences in local file")
		return repository.NewFilePreferenceRepository(cfg.Settings.File, logger), func() {}, nil
	}

	if err := database.Migrate(cfg.Database.ConnectionString(), cfg.Database.MigrationsPath, logger); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repository.NewPostgresPreferenceRepository(pool, logger), pool.Close, nil
}
