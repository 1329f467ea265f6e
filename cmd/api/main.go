package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"corralon_backend/internal/assistant"
	"corralon_backend/internal/budgets"
	"corralon_backend/internal/catalog"
	"corralon_backend/internal/catalog/cache"
	apphttp "corralon_backend/internal/http"
	"corralon_backend/internal/http/router"
	"corralon_backend/internal/knowledge"
	"corralon_backend/platform/config"
	"corralon_backend/platform/logger"
	"corralon_backend/platform/validator"

	"github.com/bwmarrin/snowflake"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	snapshotStore := initSnapshotStore(ctx, cfg, log)

	node, err := snowflake.NewNode(1)
	if err != nil {
		log.Error("failed to initialize id generator", "error", err)
		panic("failed to initialize id generator: " + err.Error())
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	catalogModule := catalog.NewModule(cfg, snapshotStore, val, log)

	assistantModule, err := assistant.NewModule(cfg, catalogModule.Service(), log)
	if err != nil {
		log.Error("failed to initialize assistant module", "error", err)
		panic("failed to initialize assistant module: " + err.Error())
	}

	// The intent extractor doubles as budget summarizer
	budgetsModule, err := budgets.NewModule(assistantModule.Extractor(), node, cfg, cfg)
	if err != nil {
		log.Error("failed to initialize budgets module", "error", err)
		panic("failed to initialize budgets module: " + err.Error())
	}

	knowledgeModule, err := knowledge.NewModule(cfg)
	if err != nil {
		log.Error("failed to initialize knowledge module", "error", err)
		panic("failed to initialize knowledge module: " + err.Error())
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Modules: []apphttp.Module{
			catalogModule,
			assistantModule,
			budgetsModule,
			knowledgeModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initSnapshotStore picks the catalog cache backend: Redis when configured,
// in-process memory otherwise.
func initSnapshotStore(ctx context.Context, cfg *config.Config, log *logger.Logger) cache.SnapshotStore {
	if !cfg.IsRedisEnabled() {
		log.Info("REDIS_URL not configured; using in-memory catalog cache")
		return cache.NewMemoryStore()
	}

	var store *cache.RedisStore
	if err := withRetry(ctx, log, "redis connection", 5, 2*time.Second, func() error {
		s, err := cache.NewRedisStoreFromURL(cfg.GetRedisURL())
		if err != nil {
			return err
		}
		if err := s.Ping(ctx); err != nil {
			return err
		}
		store = s
		return nil
	}); err != nil {
		log.Warn("redis unavailable; falling back to in-memory catalog cache", "error", err)
		return cache.NewMemoryStore()
	}

	log.Info("redis catalog cache initialized")
	return store
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
