package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
)

const (
	redisKeyPrefix       = "ledgersync:verification:"
	redisTombstonePrefix = "ledgersync:verification:tombstone:"
)

// putScript stores ARGV[1] under KEYS[1] for ARGV[3] ms unless the tombstone
// at KEYS[2] is not older than the result's computed-at time ARGV[2].
const putScript = `
local invalidated = redis.call('GET', KEYS[2])
if invalidated and tonumber(invalidated) >= tonumber(ARGV[2]) then
	return 0
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
return 1
`

const invalidateScript = `
redis.call('DEL', KEYS[1])
local previous = redis.call('GET', KEYS[2])
if previous and tonumber(previous) > tonumber(ARGV[1]) then
	return 0
end
redis.call('SET', KEYS[2], ARGV[1], 'PX', ARGV[2])
return 1
`

// Redis keeps verification results in Redis so every api-gateway replica
// shares them. Redis failures are logged and treated as misses.
type Redis struct {
	client  RedisClient
	maxTTL  time.Duration
	metrics Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewRedis creates a Redis cache.
func NewRedis(client RedisClient, maxTTL time.Duration, metrics Metrics, logger *zap.Logger) (*Redis, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if maxTTL <= 0 {
		return nil, errors.New("max ttl must be positive")
	}
	if metrics == nil {
		return nil, errors.New("metrics is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Redis{
		client:  client,
		maxTTL:  maxTTL,
		metrics: metrics,
		logger:  logger.Named("verification_cache"),
		now:     time.Now,
	}, nil
}

// Get returns the cached result for recordID.
func (c *Redis) Get(ctx context.Context, recordID string) (model.VerificationResult, bool) {
	raw, err := c.client.Get(ctx, redisKeyPrefix+recordID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.metrics.ObserveLookup(false, nil)
			return model.VerificationResult{}, false
		}
		c.logger.Warn("cache get failed", zap.String("record_id", recordID), zap.Error(err))
		c.metrics.ObserveLookup(false, err)
		return model.VerificationResult{}, false
	}

	var result model.VerificationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		c.logger.Warn("cache entry undecodable", zap.String("record_id", recordID), zap.Error(err))
		c.metrics.ObserveLookup(false, err)
		return model.VerificationResult{}, false
	}
	c.metrics.ObserveLookup(true, nil)
	return result, true
}

// Put stores result for ttl unless recordID was invalidated after the result was computed.
func (c *Redis) Put(ctx context.Context, recordID string, result model.VerificationResult, ttl time.Duration) bool {
	ttl = clampTTL(ttl, c.maxTTL)
	if ttl <= 0 {
		c.metrics.ObservePut(false, nil)
		return false
	}
	raw, err := json.Marshal(result)
	if err != nil {
		c.logger.Warn("cache entry unencodable", zap.String("record_id", recordID), zap.Error(err))
		c.metrics.ObservePut(false, err)
		return false
	}

	stored, err := c.client.Eval(ctx, putScript,
		[]string{redisKeyPrefix + recordID, redisTombstonePrefix + recordID},
		string(raw), result.ComputedAt.UnixMicro(), ttl.Milliseconds(),
	).Int64()
	if err != nil {
		c.logger.Warn("cache put failed", zap.String("record_id", recordID), zap.Error(err))
		c.metrics.ObservePut(false, err)
		return false
	}
	c.metrics.ObservePut(stored == 1, nil)
	return stored == 1
}

// Invalidate removes the cached result and writes a tombstone.
func (c *Redis) Invalidate(ctx context.Context, recordID string) {
	c.metrics.ObserveInvalidate()
	err := c.client.Eval(ctx, invalidateScript,
		[]string{redisKeyPrefix + recordID, redisTombstonePrefix + recordID},
		c.now().UnixMicro(), c.maxTTL.Milliseconds(),
	).Err()
	if err != nil {
		c.logger.Error("cache invalidate failed", zap.String("record_id", recordID), zap.Error(err))
	}
}
