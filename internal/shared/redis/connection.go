package redis

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"conquest-server/internal/shared/config"

	"github.com/redis/go-redis/v9"
)

type Client struct {
	*redis.Client
}

// Options builds client options from a URL when one is set, otherwise from
// host and port.
func Options(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		return opts, nil
	}
	return &redis.Options{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     4,
	}, nil
}

// Connect returns a nil client without error when Redis is disabled.
func Connect(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (*Client, error) {
	logger = logger.With("component", "redis")
	if !cfg.Enabled {
		logger.Info("Redis disabled, snapshots are not cached")
		return nil, nil
	}

	opts, err := Options(cfg)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping Redis at %s: %w", opts.Addr, err)
	}

	logger.Info("Redis connected", "addr", opts.Addr, "db", opts.DB)
	return &Client{rdb}, nil
}
