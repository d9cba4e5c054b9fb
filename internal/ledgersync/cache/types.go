package cache

import (
	"context"

	"github.com/go-redis/redis/v8"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Metrics observes cache traffic.
	Metrics interface {
		ObserveLookup(hit bool, err error)
		ObservePut(stored bool, err error)
		ObserveInvalidate()
	}

	// RedisClient is the subset of *redis.Client used by the Redis backend.
	RedisClient interface {
		Get(ctx context.Context, key string) *redis.StringCmd
		Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
	}
)
