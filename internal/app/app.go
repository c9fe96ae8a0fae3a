package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/culops-pantry/internal/adapter/postgres"
	assemblyrepo "github.com/heartmarshall/culops-pantry/internal/adapter/postgres/assembly"
	"github.com/heartmarshall/culops-pantry/internal/adapter/postgres/idempotency"
	pantryrepo "github.com/heartmarshall/culops-pantry/internal/adapter/postgres/pantry"
	"github.com/heartmarshall/culops-pantry/internal/adapter/postgres/partner"
	reciperepo "github.com/heartmarshall/culops-pantry/internal/adapter/postgres/recipe"
	"github.com/heartmarshall/culops-pantry/internal/adapter/provider/culops"
	"github.com/heartmarshall/culops-pantry/internal/config"
	"github.com/heartmarshall/culops-pantry/internal/service/assembly"
	"github.com/heartmarshall/culops-pantry/internal/service/pantry"
	"github.com/heartmarshall/culops-pantry/internal/service/plan"
	"github.com/heartmarshall/culops-pantry/internal/service/recipe"
	"github.com/heartmarshall/culops-pantry/internal/transport/middleware"
	"github.com/heartmarshall/culops-pantry/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, applies
// migrations, wires stores, services and handlers, and serves HTTP until
// ctx is cancelled. Shutdown drains in-flight requests within
// ShutdownTimeout.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("environment", cfg.Deploy.Environment),
	)

	if err := Migrate(ctx, cfg.Database, MigrateUp, logger); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database, logger, !cfg.Deploy.IsProduction())
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	registry, err := plan.NewRegistry(cfg.Plans.Strategies)
	if err != nil {
		return fmt.Errorf("plan strategies: %w", err)
	}

	handler := newHandler(cfg, pool, registry, logger)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("stopped")
	return nil
}

// newHandler builds the full HTTP handler: stores, services, routes and
// middleware.
func newHandler(cfg *config.Config, pool *postgres.Pool, registry *plan.Registry, logger *slog.Logger) http.Handler {
	txm := postgres.NewTxManager(pool)

	assemblies := assemblyrepo.New(pool, txm)
	keys := idempotency.New(pool, cfg.Idempotency.TTL())
	pantries := pantryrepo.New(pool, txm)
	partners := partner.New(pool, txm)
	recipes := reciperepo.New(pool, txm)

	client := culops.NewClient(cfg.Culops, logger, culops.WithUserAgent(UserAgent()))

	assemblySvc := assembly.NewService(logger, assemblies, keys, txm)
	pantrySvc := pantry.NewService(logger, pantries, keys, client, txm, cfg.Pantry)
	recipeSvc := recipe.NewService(logger, recipes, pantries, partners, client, registry)

	mux := rest.NewRouter(rest.Handlers{
		Health: rest.NewHealthHandler(BuildVersion(),
			rest.HealthCheck{Name: "database", Pinger: pool, Critical: true},
			rest.HealthCheck{Name: "culops", Pinger: client},
		),
		Pantry:   rest.NewPantryHandler(pantrySvc, logger),
		Assembly: rest.NewAssemblyHandler(assemblySvc, logger),
		Recipe:   rest.NewRecipeHandler(recipeSvc, logger),
	})

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.MaxBodyBytes(cfg.Server.MaxBodyBytes),
	)(mux)
}
