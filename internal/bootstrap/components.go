package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/at-ishikawa/palabra/internal/config"
	"github.com/at-ishikawa/palabra/internal/database"
	"github.com/at-ishikawa/palabra/internal/drill"
	"github.com/at-ishikawa/palabra/internal/progress"
	"github.com/at-ishikawa/palabra/schemas"
)

// NewLogger builds a logger from the log section. debug forces the debug level.
func NewLogger(cfg config.LogConfig, w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			level = slog.LevelInfo
		}
	}
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// NewRecorder opens the progress backend selected in cfg. The returned
// function releases it.
func NewRecorder(ctx context.Context, cfg *config.Config) (progress.Recorder, func() error, error) {
	switch cfg.Progress.Backend {
	case config.ProgressBackendNone:
		return progress.NopRecorder{}, noop, nil
	case config.ProgressBackendMySQL:
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("database.Open() > %w", err)
		}
		if err := database.Migrate(ctx, db, schemas.Migrations); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("database.Migrate() > %w", err)
		}
		return progress.NewDBRecorder(db), db.Close, nil
	default:
		return progress.NewYAMLRecorder(cfg.Progress.Directory), noop, nil
	}
}

// NewSessionStore opens the session backend selected in cfg. The returned
// function releases it.
func NewSessionStore(ctx context.Context, cfg *config.Config) (drill.Store, func() error, error) {
	ttl := time.Duration(cfg.Server.SessionTTLMinutes) * time.Minute
	if cfg.Sessions.Backend != config.SessionBackendRedis {
		return drill.NewMemoryStore(ttl), noop, nil
	}

	client, err := drill.NewRedisClient(ctx, cfg.Sessions.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("drill.NewRedisClient() > %w", err)
	}
	return drill.NewRedisStore(client, cfg.Sessions.Redis.KeyPrefix, ttl), client.Close, nil
}

func noop() error {
	return nil
}
