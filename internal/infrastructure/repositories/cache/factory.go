package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gold-pricing-service/internal/domain/interfaces"
	"gold-pricing-service/internal/infrastructure/config"
	"gold-pricing-service/internal/infrastructure/logging"
)

// Backend identifica la implementación de la cache durable
type Backend string

const (
	BackendFile  Backend = backendFile
	BackendRedis Backend = backendRedis
)

const redisConnectTimeout = 5 * time.Second

// NewDurableCache crea la cache durable indicada por la configuración.
// Para Redis se verifica la conexión antes de devolverla.
func NewDurableCache(ctx context.Context, cfg config.CacheConfig) (interfaces.DurableCache, error) {
	switch Backend(strings.ToLower(cfg.Backend)) {
	case BackendFile:
		logging.Info(ctx, "Using file durable cache", logging.Fields{
			logging.FieldCacheBackend: backendFile,
			"path":                    cfg.FilePath,
		})
		return NewFileQuoteCache(cfg.FilePath, cfg.IOTimeout), nil

	case BackendRedis:
		c := NewRedisQuoteCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Key, cfg.IOTimeout)

		pingCtx, cancel := context.WithTimeout(ctx, redisConnectTimeout)
		defer cancel()
		if err := c.Ping(pingCtx); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Redis.Addr, err)
		}

		logging.Info(ctx, "Using Redis durable cache", logging.Fields{
			logging.FieldCacheBackend: backendRedis,
			"addr":                    cfg.Redis.Addr,
			"database":                cfg.Redis.DB,
			logging.FieldCacheKey:     cfg.Redis.Key,
		})
		return c, nil

	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", cfg.Backend)
	}
}
