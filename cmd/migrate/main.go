// Command migrate applies the embedded schema migrations to the PostgreSQL
// database configured in database.dsn. The server does the same on startup
// when database.auto_migrate is set; this command is for deployments that
// keep it off.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/howzue/internal/adapter/postgres"
	"github.com/heartmarshall/howzue/internal/app"
	"github.com/heartmarshall/howzue/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log, os.Stderr)

	if cfg.Database.DSN == "" {
		logger.Error("database.dsn is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	start := time.Now()
	if err := postgres.Migrate(ctx, logger, cfg.Database.DSN); err != nil {
		logger.Error("migrate failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("migrations completed", slog.Duration("took", time.Since(start)))
}
