package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/JonMunkholm/fakedata/internal/activity"
	"github.com/JonMunkholm/fakedata/internal/cache"
	"github.com/JonMunkholm/fakedata/internal/config"
	"github.com/JonMunkholm/fakedata/internal/core"
	"github.com/JonMunkholm/fakedata/internal/logging"
	"github.com/JonMunkholm/fakedata/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"universe_size", cfg.Generator.UniverseSize,
		"page_size", cfg.Generator.PageSize,
		"seeded_errors", cfg.Generator.SeededErrors,
		"max_concurrent", cfg.Generator.MaxConcurrent,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"database", cfg.Database.Enabled(),
		"redis", cfg.Cache.RedisURL != "",
	)

	ctx := context.Background()

	store, closeStore, err := openActivityStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open activity store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	universeCache, closeCache, err := openCache(ctx, cfg)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer closeCache()

	limiter := core.NewLimiter(cfg.Generator.MaxConcurrent, cfg.Generator.MaxWaitTime)
	service := core.NewService(core.Config{
		UniverseSize: cfg.Generator.UniverseSize,
		PageSize:     cfg.Generator.PageSize,
		SeededErrors: cfg.Generator.SeededErrors,
	}, store, universeCache, limiter)

	server := web.NewServer(service, cfg)

	// Cancelled on shutdown to stop the retention job and rate limiter cleanup
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()

	go activity.StartRetentionScheduler(jobCtx, store, activity.RetentionConfig{
		MaxAge:        cfg.Activity.Retention(),
		CheckInterval: cfg.Activity.CheckInterval,
	})

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Let in-flight generations finish before closing connections
		if status := limiter.Status(); status.Active > 0 {
			slog.Info("waiting for requests to complete", "active", status.Active)
			if err := limiter.WaitForDrain(shutdownCtx); err != nil {
				slog.Warn("requests did not complete in time", "error", err)
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(jobCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openActivityStore connects to PostgreSQL when DATABASE_URL is set and
// falls back to a bounded in-memory log otherwise.
func openActivityStore(ctx context.Context, cfg *config.Config) (activity.Store, func(), error) {
	if !cfg.Database.Enabled() {
		slog.Info("no database configured, keeping activity log in memory",
			"capacity", cfg.Activity.MemoryCapacity)
		return activity.NewMemoryStore(cfg.Activity.MemoryCapacity), func() {}, nil
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, nil, err
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)
	poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	if u, err := url.Parse(cfg.Database.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	} else {
		slog.Info("connected to database")
	}

	store := activity.NewPostgresStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return store, pool.Close, nil
}

// openCache returns a Redis-backed universe cache when REDIS_URL is set,
// otherwise an in-process LRU.
func openCache(ctx context.Context, cfg *config.Config) (cache.Cache, func(), error) {
	if cfg.Cache.RedisURL == "" {
		return cache.NewMemory(cfg.Cache.TTL, cfg.Cache.MaxEntries), func() {}, nil
	}

	c, err := cache.NewRedis(ctx, cfg.Cache.RedisURL, cfg.Cache.TTL)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("using redis universe cache", "ttl", cfg.Cache.TTL)
	return c, func() {
		if err := c.Close(); err != nil {
			slog.Warn("redis close error", "error", err)
		}
	}, nil
}
