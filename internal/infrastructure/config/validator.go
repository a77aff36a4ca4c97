package config

import (
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"
)

// Validator valida la configuración cargada
type Validator struct{}

// NewValidator crea una nueva instancia del validador
func NewValidator() *Validator {
	return &Validator{}
}

// Validate valida toda la configuración; el arranque aborta ante el primer error
func (v *Validator) Validate(config *Config) error {
	if err := v.validateServer(config.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := v.validateQuote(config.Quote); err != nil {
		return fmt.Errorf("quote config validation failed: %w", err)
	}

	if err := v.validateCache(config.Cache); err != nil {
		return fmt.Errorf("cache config validation failed: %w", err)
	}

	if strings.TrimSpace(config.Catalog.Path) == "" {
		return fmt.Errorf("catalog config validation failed: path cannot be empty")
	}

	if err := v.validateRateLimit(config.RateLimit); err != nil {
		return fmt.Errorf("rate limit config validation failed: %w", err)
	}

	if err := v.validateLogging(config.Logging); err != nil {
		return fmt.Errorf("logging config validation failed: %w", err)
	}

	return nil
}

func (v *Validator) validateServer(config ServerConfig) error {
	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("invalid port: %d, must be between 1-65535", config.Port)
	}

	if config.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got: %v", config.ShutdownTimeout)
	}

	if config.ShutdownTimeout > 5*time.Minute {
		return fmt.Errorf("shutdown_timeout too long: %v, max 5 minutes", config.ShutdownTimeout)
	}

	return nil
}

func (v *Validator) validateQuote(config QuoteConfig) error {
	if err := v.validateTTL(config.TTL); err != nil {
		return err
	}

	if math.IsNaN(config.FallbackPerOunce) || math.IsInf(config.FallbackPerOunce, 0) || config.FallbackPerOunce <= 0 {
		return fmt.Errorf("fallback_per_ounce must be a positive number, got: %v", config.FallbackPerOunce)
	}

	if err := v.validateURL(config.ProviderURL, "provider_url"); err != nil {
		return err
	}

	if config.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got: %v", config.RequestTimeout)
	}

	if config.FetchTimeout < config.RequestTimeout {
		return fmt.Errorf("fetch_timeout (%v) must be at least request_timeout (%v)", config.FetchTimeout, config.RequestTimeout)
	}

	if config.MaxRetries < 1 || config.MaxRetries > 10 {
		return fmt.Errorf("max_retries must be between 1-10, got: %d", config.MaxRetries)
	}

	return nil
}

// validateTTL sólo exige un TTL positivo; no hay cota superior para la cotización
func (v *Validator) validateTTL(ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("quote TTL must be positive, got: %v", ttl)
	}
	return nil
}

func (v *Validator) validateCache(config CacheConfig) error {
	validBackends := []string{"file", "redis"}
	if !contains(validBackends, config.Backend) {
		return fmt.Errorf("invalid cache backend: %s, must be one of: %v", config.Backend, validBackends)
	}

	if config.IOTimeout <= 0 {
		return fmt.Errorf("io_timeout must be positive, got: %v", config.IOTimeout)
	}

	switch strings.ToLower(config.Backend) {
	case "file":
		if strings.TrimSpace(config.FilePath) == "" {
			return fmt.Errorf("file_path cannot be empty for the file backend")
		}
	case "redis":
		if err := v.validateRedis(config.Redis); err != nil {
			return err
		}
	}

	return nil
}

func (v *Validator) validateRedis(config RedisConfig) error {
	if config.Addr == "" {
		return fmt.Errorf("redis addr cannot be empty")
	}

	if !strings.Contains(config.Addr, ":") {
		return fmt.Errorf("invalid redis addr format: %s, expected host:port", config.Addr)
	}

	if config.DB < 0 || config.DB > 15 {
		return fmt.Errorf("invalid redis DB: %d, must be between 0-15", config.DB)
	}

	if config.Key == "" {
		return fmt.Errorf("redis key cannot be empty")
	}

	return nil
}

func (v *Validator) validateRateLimit(config RateLimitConfig) error {
	if !config.Enabled {
		return nil
	}

	if config.Capacity <= 0 {
		return fmt.Errorf("rate_limit capacity must be positive when enabled, got: %d", config.Capacity)
	}

	if config.RefillRate <= 0 {
		return fmt.Errorf("rate_limit refill_rate must be positive when enabled, got: %d", config.RefillRate)
	}

	if config.Capacity > 10000 {
		return fmt.Errorf("rate_limit capacity too high: %d, max 10000", config.Capacity)
	}

	if config.RefillRate > 1000 {
		return fmt.Errorf("rate_limit refill_rate too high: %d, max 1000", config.RefillRate)
	}

	return nil
}

func (v *Validator) validateLogging(config LoggingConfig) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, config.Level) {
		return fmt.Errorf("invalid log level: %s, must be one of: %v", config.Level, validLevels)
	}

	validFormats := []string{"json", "text"}
	if !contains(validFormats, config.Format) {
		return fmt.Errorf("invalid log format: %s, must be one of: %v", config.Format, validFormats)
	}

	return nil
}

// validateURL valida que una URL sea válida para HTTP/HTTPS
func (v *Validator) validateURL(rawURL, fieldName string) error {
	if rawURL == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid %s: %s, error: %v", fieldName, rawURL, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("invalid %s scheme: %s, must be http or https", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s must have a host", fieldName)
	}

	return nil
}

// contains compara sin distinguir mayúsculas
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}
