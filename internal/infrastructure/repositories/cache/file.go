package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gold-pricing-service/internal/domain/entities"
	"gold-pricing-service/internal/domain/interfaces"
	"gold-pricing-service/internal/infrastructure/logging"
	"gold-pricing-service/internal/infrastructure/metrics"
)

const backendFile = "file"

// FileQuoteCache persiste la última cotización en un archivo JSON.
// Las escrituras van a un temporal en el mismo directorio y luego se renombran.
type FileQuoteCache struct {
	path      string
	ioTimeout time.Duration
	now       func() time.Time

	writeMu     sync.Mutex
	lastWritten time.Time
}

// NewFileQuoteCache crea la cache sobre path; el archivo puede no existir todavía
func NewFileQuoteCache(path string, ioTimeout time.Duration) *FileQuoteCache {
	return &FileQuoteCache{
		path:      path,
		ioTimeout: ioTimeout,
		now:       time.Now,
	}
}

var _ interfaces.DurableCache = (*FileQuoteCache)(nil)

// Path devuelve la ruta del archivo de cache
func (c *FileQuoteCache) Path() string {
	return c.path
}

// Load nunca falla: archivo ausente, ilegible, corrupto o lento equivale a "sin cache"
func (c *FileQuoteCache) Load(ctx context.Context) (entities.Quote, bool) {
	data, err := bounded(ctx, c.ioTimeout, func() ([]byte, error) {
		return os.ReadFile(c.path)
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			metrics.RecordCacheOperation(backendFile, "load", "miss")
			logging.Cache().Miss(ctx, backendFile, c.path)
			return entities.Quote{}, false
		}
		metrics.RecordCacheOperation(backendFile, "load", "error")
		logging.Cache().CacheError(ctx, backendFile, logging.CacheOpLoad, c.path, err)
		return entities.Quote{}, false
	}

	now := c.now()
	quote, err := decodeRecord(data, now)
	if err != nil {
		metrics.RecordCacheOperation(backendFile, "load", "invalid")
		logging.Cache().Rejected(ctx, backendFile, c.path, err.Error())
		return entities.Quote{}, false
	}

	metrics.RecordCacheOperation(backendFile, "load", "hit")
	logging.Cache().Loaded(ctx, backendFile, c.path, quote.Age(now))
	return quote, true
}

// Persist sobrescribe el slot. Una cotización más vieja que la última escrita se ignora.
func (c *FileQuoteCache) Persist(ctx context.Context, quote entities.Quote) error {
	data, err := encodeRecord(quote)
	if err != nil {
		return err
	}

	_, err = bounded(ctx, c.ioTimeout, func() (struct{}, error) {
		return struct{}{}, c.write(quote.FetchedAt, data)
	})
	if err != nil {
		metrics.RecordCacheOperation(backendFile, "persist", "error")
		return fmt.Errorf("persist quote to %s: %w", c.path, err)
	}

	metrics.RecordCacheOperation(backendFile, "persist", "success")
	logging.Cache().Persisted(ctx, backendFile, c.path)
	return nil
}

func (c *FileQuoteCache) write(fetchedAt time.Time, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if fetchedAt.Before(c.lastWritten) {
		return nil
	}

	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		return err
	}

	c.lastWritten = fetchedAt
	return nil
}

// Close no libera nada; existe para cumplir con DurableCache
func (c *FileQuoteCache) Close() error {
	return nil
}
