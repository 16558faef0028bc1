package save

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	cacheKeyPrefix = "conquest:save:"
	cacheTTL       = 24 * time.Hour
)

// CachedStore writes through to a backing store and keeps the latest blob of
// every slot in Redis. Cache failures are logged, never returned. Concurrent
// loads of one slot share a single lookup.
type CachedStore struct {
	inner  Store
	cache  redis.Cmdable
	group  singleflight.Group
	logger *slog.Logger
}

func NewCachedStore(inner Store, cache redis.Cmdable, logger *slog.Logger) *CachedStore {
	return &CachedStore{inner: inner, cache: cache, logger: logger}
}

func cacheKey(slot string) string {
	return cacheKeyPrefix + slot
}

func (s *CachedStore) Save(ctx context.Context, slot string, blob []byte) error {
	if err := s.inner.Save(ctx, slot, blob); err != nil {
		return err
	}
	if err := s.cache.Set(ctx, cacheKey(slot), blob, cacheTTL).Err(); err != nil {
		s.logger.Warn("Failed to cache save", "component", "save_cache", "slot", slot, "error", err)
	}
	return nil
}

func (s *CachedStore) Load(ctx context.Context, slot string) ([]byte, error) {
	v, err, _ := s.group.Do(slot, func() (any, error) {
		return s.load(ctx, slot)
	})
	if err != nil {
		return nil, err
	}
	return bytes.Clone(v.([]byte)), nil
}

func (s *CachedStore) load(ctx context.Context, slot string) ([]byte, error) {
	blob, err := s.cache.Get(ctx, cacheKey(slot)).Bytes()
	if err == nil {
		return blob, nil
	}
	if !errors.Is(err, redis.Nil) {
		s.logger.Warn("Save cache unavailable", "component", "save_cache", "slot", slot, "error", err)
	}

	blob, err = s.inner.Load(ctx, slot)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, cacheKey(slot), blob, cacheTTL).Err(); err != nil {
		s.logger.Warn("Failed to backfill save cache", "component", "save_cache", "slot", slot, "error", err)
	}
	return blob, nil
}

func (s *CachedStore) Close() error {
	return s.inner.Close()
}
