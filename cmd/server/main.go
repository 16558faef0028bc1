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

	"conquest-server/internal/auth"
	"conquest-server/internal/game"
	"conquest-server/internal/hub"
	"conquest-server/internal/middleware"
	"conquest-server/internal/save"
	"conquest-server/internal/server"
	serverHandlers "conquest-server/internal/server/handlers"
	"conquest-server/internal/shared/config"
	"conquest-server/internal/shared/database"
	"conquest-server/internal/shared/logger"
	"conquest-server/internal/shared/redis"

	"golang.org/x/sync/errgroup"
)

func main() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init()
	if err := run(log); err != nil {
		log.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg := config.GlobalConfig
	logger := log.With("component", "main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	balance, err := game.LoadBalance(cfg.Game.BalanceFile)
	if err != nil {
		return fmt.Errorf("failed to load balance: %w", err)
	}

	store, checks, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	engine := newEngine(ctx, cfg, balance, store, log)

	sessions, err := auth.NewSessions(cfg.Auth.JWTSecret, cfg.Auth.AccessKey, cfg.Auth.TokenExpiration)
	if err != nil {
		return fmt.Errorf("failed to set up sessions: %w", err)
	}

	statsHub := hub.New(cfg.Frontend.URL, log.With("component", "hub"))
	runner := game.NewRunner(engine, game.RunnerConfig{
		TickInterval:  cfg.Game.TickInterval,
		AutosaveEvery: cfg.Game.AutosaveTicks,
		Slot:          cfg.Store.Slot,
	}, store, statsHub, log)
	limiter := middleware.NewRateLimiter(cfg.RateLimit, log)

	routes := server.NewRoutes(cfg, runner, sessions, statsHub, checks, log)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      routes.Handler(limiter),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return runner.Run(gctx) })
	g.Go(func() error { return runner.RunSaver(gctx) })
	g.Go(func() error { return statsHub.Run(gctx) })
	g.Go(func() error { return limiter.Run(gctx) })
	g.Go(func() error {
		logger.Info("Conquest server starting", "port", cfg.Server.Port, "environment", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("Shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openStore picks the configured save backend and wraps it with the Redis
// cache when enabled. The returned checks feed the health endpoint.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (save.Store, map[string]serverHandlers.Check, func(), error) {
	logger := log.With("component", "main", "operation", "open_store", "driver", cfg.Store.Driver)
	checks := make(map[string]serverHandlers.Check)

	var store save.Store
	switch cfg.Store.Driver {
	case "postgres":
		db, err := database.Connect(ctx, cfg.Database, log)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.RunMigrations(ctx, log); err != nil {
			_ = db.Close()
			return nil, nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		checks["database"] = db.PingContext
		store = save.NewPostgresStore(db)
	case "sqlite":
		s, err := save.OpenSQLite(ctx, cfg.Store.SQLitePath, log)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		store = s
	default:
		logger.Warn("Using in-memory store, progress is lost on restart")
		store = save.NewMemoryStore()
	}

	rdb, err := redis.Connect(ctx, cfg.Redis, log)
	if err != nil {
		_ = store.Close()
		return nil, nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	backing := store
	closeStore := func() {
		if err := backing.Close(); err != nil {
			logger.Error("Failed to close save store", "error", err)
		}
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		store = save.NewCachedStore(store, rdb, log)
		closeStore = func() {
			if err := store.Close(); err != nil {
				logger.Error("Failed to close save store", "error", err)
			}
			if err := rdb.Close(); err != nil {
				logger.Error("Failed to close redis", "error", err)
			}
		}
	}

	logger.Info("Save store ready", "cached", rdb != nil)
	return store, checks, closeStore, nil
}

// newEngine resumes the saved game for the configured slot, or starts a new
// one when there is no usable save.
func newEngine(ctx context.Context, cfg *config.Config, balance game.Balance, store save.Store, log *slog.Logger) *game.Engine {
	logger := log.With("component", "main", "operation", "load_game", "slot", cfg.Store.Slot)

	opts := []game.Option{game.WithLogger(log)}
	if cfg.Game.Seed != 0 {
		opts = append(opts, game.WithSeed(cfg.Game.Seed))
	}
	engine := game.New(balance, opts...)

	blob, err := store.Load(ctx, cfg.Store.Slot)
	switch {
	case errors.Is(err, save.ErrNotFound):
		logger.Info("No saved game, starting fresh")
		return engine
	case err != nil:
		logger.Error("Failed to read saved game, starting fresh", "error", err)
		return engine
	}

	if err := engine.Load(blob); err != nil {
		logger.Error("Saved game is unreadable, starting fresh", "error", err, "bytes", len(blob))
		return engine
	}
	logger.Info("Saved game restored", "tick", engine.Statistics().CurrentTick)
	return engine
}
