// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Command api serves the Inkwell HTTP API.

Boot order:

 1. JSON logger, then configuration from the environment.
 2. PostgreSQL pool and Redis client, both verified with a ping.
 3. Schema migrations (a no-op when already current).
 4. Token verifier, metrics registry, repositories, services, handlers.
 5. HTTP listener until SIGINT or SIGTERM, then a bounded drain.

Every dependency is passed through constructors; nothing here holds domain logic.
*/
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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/inkwell/internal/api"
	"github.com/taibuivan/inkwell/internal/catalog/access"
	"github.com/taibuivan/inkwell/internal/catalog/blob"
	"github.com/taibuivan/inkwell/internal/catalog/book"
	"github.com/taibuivan/inkwell/internal/catalog/chapter"
	"github.com/taibuivan/inkwell/internal/library/progress"
	"github.com/taibuivan/inkwell/internal/platform/config"
	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/internal/platform/metrics"
	"github.com/taibuivan/inkwell/internal/platform/migration"
	pgstore "github.com/taibuivan/inkwell/internal/platform/postgres"
	redisstore "github.com/taibuivan/inkwell/internal/platform/redis"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/internal/reader"
	"github.com/taibuivan/inkwell/internal/render"
	"github.com/taibuivan/inkwell/internal/users/preference"
)

// bootTimeout bounds connecting to the backing stores.
const bootTimeout = 30 * time.Second

func main() {
	logger := newLogger(false)
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("api_exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	logger.Info("api_starting", slog.String("version", constants.AppVersion))

	// # Configuration

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.Debug {
		logger = newLogger(true)
		slog.SetDefault(logger)
	}

	policy, err := access.ParsePolicy(cfg.PremiumAccessPolicy)
	if err != nil {
		return err
	}

	logger.Info("api_configured",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("premium_policy", string(policy)),
		slog.Duration("render_cache_ttl", cfg.RenderCacheTTL),
	)

	// Cancelled by SIGINT/SIGTERM; also stops the rate limiter janitor.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// # Backing Stores

	bootCtx, cancelBoot := context.WithTimeout(ctx, bootTimeout)
	defer cancelBoot()

	pool, err := pgstore.NewPool(bootCtx, cfg.DatabaseURL, logger)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	cache, err := redisstore.NewClient(bootCtx, cfg.RedisURL, logger)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func() {
		if err := cache.Close(); err != nil {
			logger.Warn("redis_close_failed", slog.Any("error", err))
		}
	}()

	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// Tokens come from the identity provider, so only the public key is loaded.
	verifier, err := sec.NewTokenService("", cfg.JWTPubKeyPath, constants.AuthIssuer)
	if err != nil {
		return err
	}

	// # Wiring

	registry := metrics.New()
	handlers := wire(cfg, logger, pool, cache, registry, policy)
	server := api.NewServer(ctx, cfg, logger, verifier, registry, handlers)

	// # Serve

	failed := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("api_stopping", slog.Duration("drain", constants.ShutdownTimeout))
	case err := <-failed:
		return fmt.Errorf("listen: %w", err)
	}

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		return fmt.Errorf("drain: %w", err)
	}

	logger.Info("api_stopped")
	return nil
}

// wire builds every repository, service and handler the router mounts.
func wire(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool, cache *redis.Client, registry *metrics.Registry, policy access.Policy) api.Handlers {
	blobs := blob.NewRepository(pool)

	books := book.NewService(book.NewRepository(pool), logger)
	chapters := chapter.NewService(chapter.NewRepository(pool, blobs), blobs, books, logger)
	positions := progress.NewService(progress.NewRepository(pool), logger)
	preferences := preference.NewService(preference.NewRepository(pool), logger)

	renderer := render.NewCachedRenderer(
		render.NewMarkdownRenderer(),
		render.NewRedisCache(cache),
		cfg.RenderCacheTTL,
		registry,
		logger,
	)
	reading := reader.NewService(books, chapters, positions, renderer, policy, logger)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckCache:    func(ctx context.Context) error { return redisstore.Ping(ctx, cache) },
	}, logger)

	return api.Handlers{
		Liveness:    liveness,
		Readiness:   readiness,
		Books:       book.NewHandler(books),
		Chapters:    chapter.NewHandler(chapters),
		Reader:      reader.NewHandler(reading),
		Progress:    progress.NewHandler(positions),
		Preferences: preference.NewHandler(preferences),
	}
}

// newLogger builds the process-wide JSON logger tagged with the app name.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String(constants.FieldApp, constants.AppName))
}
