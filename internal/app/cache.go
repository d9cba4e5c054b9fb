package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/cache"
	"github.com/goodnatureofminers/ledgersync-backend/internal/metrics"
)

// CacheOptions select the verification cache backend.
type CacheOptions struct {
	Cache         string        `long:"cache" env:"LEDGERSYNC_CACHE" description:"verification cache backend" choice:"memory" choice:"redis" choice:"none" default:"memory"`
	CacheMaxTTL   time.Duration `long:"cache-max-ttl" env:"LEDGERSYNC_CACHE_MAX_TTL" description:"upper bound of cached result lifetime" default:"10m"`
	SweepInterval time.Duration `long:"cache-sweep-interval" env:"LEDGERSYNC_CACHE_SWEEP_INTERVAL" description:"memory cache sweep interval" default:"1m"`
	RedisAddr     string        `long:"redis-addr" env:"LEDGERSYNC_REDIS_ADDR" description:"Redis address" default:"localhost:6379"`
	RedisPassword string        `long:"redis-password" env:"LEDGERSYNC_REDIS_PASSWORD" description:"Redis password"`
	RedisDB       int           `long:"redis-db" env:"LEDGERSYNC_REDIS_DB" description:"Redis database"`
}

// OpenCache builds the configured cache, or returns nil when caching is
// disabled. A memory cache is swept until ctx is done. The returned close func
// is never nil.
func (o CacheOptions) OpenCache(ctx context.Context, logger *zap.Logger) (Cache, func(), error) {
	switch o.Cache {
	case "none":
		return nil, func() {}, nil
	case "memory", "":
		c := cache.NewMemory(o.CacheMaxTTL, metrics.NewVerificationCache("memory"))
		go c.RunSweeper(ctx, o.SweepInterval)
		return c, func() {}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     o.RedisAddr,
			Password: o.RedisPassword,
			DB:       o.RedisDB,
		})
		closeClient := func() {
			if err := client.Close(); err != nil {
				logger.Warn("close redis", zap.Error(err))
			}
		}
		if err := client.Ping(ctx).Err(); err != nil {
			closeClient()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		c, err := cache.NewRedis(client, o.CacheMaxTTL, metrics.NewVerificationCache("redis"), logger)
		if err != nil {
			closeClient()
			return nil, nil, err
		}
		return c, closeClient, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache %q", o.Cache)
	}
}
