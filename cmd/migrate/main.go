// Command migrate applies or inspects the embedded database migrations.
//
// Usage:
//
//	migrate [up|down|status]
//
// The command defaults to up. Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/culops-pantry/internal/app"
	"github.com/heartmarshall/culops-pantry/internal/config"
)

func main() {
	command := app.MigrateUp
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := app.Migrate(ctx, cfg.Database, command, logger); err != nil {
		logger.Error("migrate", slog.String("command", command), slog.String("error", err.Error()))
		cancel()
		os.Exit(1)
	}
}
