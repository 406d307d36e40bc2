package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/at-ishikawa/palabra/internal/bootstrap"
	"github.com/at-ishikawa/palabra/internal/config"
	"github.com/at-ishikawa/palabra/internal/lesson"
)

// loadConfig loads the configuration, applies the --progress override and
// replaces the default logger with the one it configures.
func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if progressBackend != "" {
		cfg.Progress.Backend = progressBackend.String()
	}
	slog.SetDefault(bootstrap.NewLogger(cfg.Log, os.Stderr, debugMode))
	return cfg, nil
}

func newCatalog(cfg *config.Config) *lesson.Catalog {
	return lesson.NewCatalog(cfg.Lessons.DictionaryFile, cfg.Lessons.Directory)
}
