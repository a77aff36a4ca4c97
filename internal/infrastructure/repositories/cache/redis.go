package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gold-pricing-service/internal/domain/entities"
	"gold-pricing-service/internal/domain/interfaces"
	"gold-pricing-service/internal/infrastructure/logging"
	"gold-pricing-service/internal/infrastructure/metrics"

	"github.com/redis/go-redis/v9"
)

const backendRedis = "redis"

// RedisQuoteCache guarda el mismo registro JSON que FileQuoteCache bajo una única clave.
// La clave no expira: la frescura la decide el QuoteManager con su TTL.
type RedisQuoteCache struct {
	client    *redis.Client
	key       string
	ioTimeout time.Duration
	now       func() time.Time
}

// NewRedisQuoteCache creates a Redis-backed durable cache
func NewRedisQuoteCache(addr, password string, db int, key string, ioTimeout time.Duration) *RedisQuoteCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		ReadTimeout:  ioTimeout,
		WriteTimeout: ioTimeout,
	})
	return NewRedisQuoteCacheWithClient(rdb, key, ioTimeout)
}

// NewRedisQuoteCacheWithClient wraps an existing client
func NewRedisQuoteCacheWithClient(client *redis.Client, key string, ioTimeout time.Duration) *RedisQuoteCache {
	return &RedisQuoteCache{
		client:    client,
		key:       key,
		ioTimeout: ioTimeout,
		now:       time.Now,
	}
}

var _ interfaces.DurableCache = (*RedisQuoteCache)(nil)

// Load devuelve false ante clave ausente, registro inválido o Redis caído
func (r *RedisQuoteCache) Load(ctx context.Context) (entities.Quote, bool) {
	ctx, cancel := context.WithTimeout(ctx, r.ioTimeout)
	defer cancel()

	val, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.RecordCacheOperation(backendRedis, "load", "miss")
		logging.Cache().Miss(ctx, backendRedis, r.key)
		return entities.Quote{}, false
	}
	if err != nil {
		metrics.RecordCacheOperation(backendRedis, "load", "error")
		logging.Cache().CacheError(ctx, backendRedis, logging.CacheOpLoad, r.key, err)
		return entities.Quote{}, false
	}

	now := r.now()
	quote, err := decodeRecord(val, now)
	if err != nil {
		metrics.RecordCacheOperation(backendRedis, "load", "invalid")
		logging.Cache().Rejected(ctx, backendRedis, r.key, err.Error())
		return entities.Quote{}, false
	}

	metrics.RecordCacheOperation(backendRedis, "load", "hit")
	logging.Cache().Loaded(ctx, backendRedis, r.key, quote.Age(now))
	return quote, true
}

// Persist sobrescribe la clave sin expiración
func (r *RedisQuoteCache) Persist(ctx context.Context, quote entities.Quote) error {
	data, err := encodeRecord(quote)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, r.ioTimeout)
	defer cancel()

	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		metrics.RecordCacheOperation(backendRedis, "persist", "error")
		return fmt.Errorf("persist quote to redis key %s: %w", r.key, err)
	}

	metrics.RecordCacheOperation(backendRedis, "persist", "success")
	logging.Cache().Persisted(ctx, backendRedis, r.key)
	return nil
}

// Ping checks if Redis connection is alive
func (r *RedisQuoteCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (r *RedisQuoteCache) Close() error {
	return r.client.Close()
}
