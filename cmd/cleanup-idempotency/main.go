// Command cleanup-idempotency removes idempotency keys whose lifetime has
// ended. It is intended to be invoked by an external cron job, not as an
// in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/culops-pantry/internal/adapter/postgres"
	"github.com/heartmarshall/culops-pantry/internal/adapter/postgres/idempotency"
	"github.com/heartmarshall/culops-pantry/internal/app"
	"github.com/heartmarshall/culops-pantry/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database, logger, false)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	keys := idempotency.New(pool, cfg.Idempotency.TTL())

	deleted, err := keys.DeleteExpired(ctx)
	if err != nil {
		logger.Error("delete expired idempotency keys", slog.String("error", err.Error()))
		pool.Close()
		os.Exit(1)
	}

	logger.Info("idempotency cleanup completed", slog.Int64("deleted", deleted))
}
