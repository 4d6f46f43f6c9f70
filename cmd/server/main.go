// Campus Events Hub API server.
//
// Wires configuration, storage (PostgreSQL or in-memory), the Redis view
// counter, and the HTTP interface, then runs until interrupted.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/campushub/campus-events-hub/config"
	"github.com/campushub/campus-events-hub/internal/domain/storage"
	"github.com/campushub/campus-events-hub/internal/infrastructure/persistence/memory"
	"github.com/campushub/campus-events-hub/internal/infrastructure/persistence/postgres"
	"github.com/campushub/campus-events-hub/internal/infrastructure/persistence/redis"
	httpserver "github.com/campushub/campus-events-hub/internal/interface/http"
	"github.com/campushub/campus-events-hub/internal/service"
	"github.com/campushub/campus-events-hub/pkg/logger"
	"github.com/campushub/campus-events-hub/pkg/retry"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. CONFIGURATION
	// ─────────────────────────────────────────────────────────────────────────

	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. LOGGING
	// ─────────────────────────────────────────────────────────────────────────

	log := logger.New(logger.Options{
		Output:    os.Stdout,
		Level:     logger.ParseLevel(cfg.Observability.LogLevel),
		AddCaller: cfg.App.Debug,
	}).With(logger.Component("server"))

	log.Info("starting Campus Events Hub",
		logger.String("env", string(cfg.App.Environment)),
		logger.String("version", cfg.App.Version),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. STORAGE
	// ─────────────────────────────────────────────────────────────────────────

	var store storage.Store
	if cfg.Database.URL != "" {
		log.Info("connecting to database...")
		conn, err := retry.DoWithData(ctx, func(ctx context.Context) (*postgres.Connection, error) {
			c, err := postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
			if err != nil {
				return nil, err
			}
			if err := c.Ping(ctx); err != nil {
				c.Close()
				return nil, err
			}
			return c, nil
		}, retry.WithMaxAttempts(5), retry.WithInitialDelay(500*time.Millisecond),
			retry.WithRetryIf(func(error) bool { return true }),
			retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
				log.Warn("database not ready, retrying",
					logger.Int("attempt", attempt),
					logger.Duration("backoff", delay),
					logger.Err(err),
				)
			}))
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer func() {
			log.Info("closing database connection...")
			conn.Close()
		}()

		log.Info("running database migrations...")
		if err := postgres.NewMigrator(conn).Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		store = postgres.NewStore(conn)
		log.Info("database storage ready")
	} else {
		log.Warn("DATABASE_URL not set, using in-memory storage")
		store = memory.NewStore()
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 4. REDIS (optional)
	// ─────────────────────────────────────────────────────────────────────────

	var views service.ViewTracker
	if !cfg.Redis.Disabled {
		cache, err := redis.NewCache(redis.Config{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			log.Warn("failed to connect to Redis, view counting disabled", logger.Err(err))
		} else {
			defer cache.Close()
			views = redis.NewViewCounter(cache)
			log.Info("Redis connection established")
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. HTTP SERVER
	// ─────────────────────────────────────────────────────────────────────────

	server := httpserver.NewServer(httpserver.Config{
		Host:               cfg.HTTP.Host,
		Port:               cfg.HTTP.Port,
		ReadTimeout:        cfg.HTTP.ReadTimeout,
		WriteTimeout:       cfg.HTTP.WriteTimeout,
		IdleTimeout:        cfg.HTTP.IdleTimeout,
		EnableCORS:         cfg.HTTP.EnableCORS,
		AllowedOrigins:     cfg.HTTP.AllowedOrigins,
		RateLimitPerMinute: cfg.HTTP.RateLimitPerMinute,
	}, httpserver.Dependencies{
		Store:  store,
		Views:  views,
		Tokens: httpserver.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Logger: log,
	})

	errCh := server.StartAsync()
	log.Info("HTTP server listening", logger.String("address", server.Address()))

	// ─────────────────────────────────────────────────────────────────────────
	// 6. GRACEFUL SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", logger.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("shutdown complete")
	return nil
}
