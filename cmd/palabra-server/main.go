package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/at-ishikawa/palabra/internal/assets"
	"github.com/at-ishikawa/palabra/internal/bootstrap"
	"github.com/at-ishikawa/palabra/internal/config"
	"github.com/at-ishikawa/palabra/internal/drill"
	"github.com/at-ishikawa/palabra/internal/lesson"
	"github.com/at-ishikawa/palabra/internal/metrics"
	"github.com/at-ishikawa/palabra/internal/server"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}
	logger := bootstrap.NewLogger(cfg.Log, os.Stderr, false)
	slog.SetDefault(logger)

	app := bootstrap.New(logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	sessions, closeSessions, err := bootstrap.NewSessionStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("bootstrap.NewSessionStore() > %w", err)
	}
	app.AddShutdownHook("sessions", func(context.Context) error {
		return closeSessions()
	})

	recorder, closeRecorder, err := bootstrap.NewRecorder(ctx, cfg)
	if err != nil {
		_ = closeSessions()
		return fmt.Errorf("bootstrap.NewRecorder() > %w", err)
	}
	app.AddShutdownHook("progress", func(context.Context) error {
		return closeRecorder()
	})

	page, err := assets.ParseIndexTemplate(cfg.Server.TemplateFile)
	if err != nil {
		_ = closeSessions()
		_ = closeRecorder()
		return fmt.Errorf("assets.ParseIndexTemplate() > %w", err)
	}

	catalog := lesson.NewCatalog(cfg.Lessons.DictionaryFile, cfg.Lessons.Directory,
		lesson.WithLogger(logger),
		lesson.WithObserver(m),
	)
	service := drill.NewService(catalog,
		drill.WithRecorder(recorder),
		drill.WithObserver(m),
		drill.WithLogger(logger),
	)
	srv := server.New(cfg.Server, service, catalog, sessions, page,
		server.WithLogger(logger),
		server.WithMetrics(m),
	).HTTPServer()
	app.AddShutdownHook("http", srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		// Load the main dictionary before the first request.
		if _, err := catalog.Load(lesson.DefaultLessonID); err != nil {
			logger.Warn("failed to load the main dictionary", "error", err)
		}

		logger.Info("starting server", "addr", srv.Addr, "sessions", cfg.Sessions.Backend, "progress", cfg.Progress.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("srv.ListenAndServe() > %w", err)
		}
		return nil
	})
}

func loadConfig() (*config.Config, error) {
	configFile := os.Getenv("PALABRA_CONFIG")
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}
