package config

import (
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Quote     QuoteConfig     `yaml:"quote" mapstructure:"quote"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Catalog   CatalogConfig   `yaml:"catalog" mapstructure:"catalog"`
	RateLimit RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" mapstructure:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// QuoteConfig contains the gold quote provider and freshness settings
type QuoteConfig struct {
	ProviderURL      string        `yaml:"provider_url" mapstructure:"provider_url"`
	APIKey           string        `yaml:"api_key" mapstructure:"api_key"`
	TTL              time.Duration `yaml:"ttl" mapstructure:"ttl"`
	FallbackPerOunce float64       `yaml:"fallback_per_ounce" mapstructure:"fallback_per_ounce"`
	RequestTimeout   time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`
	FetchTimeout     time.Duration `yaml:"fetch_timeout" mapstructure:"fetch_timeout"`
	MaxRetries       int           `yaml:"max_retries" mapstructure:"max_retries"`
}

// CacheConfig contains the durable quote cache configuration
type CacheConfig struct {
	Backend   string        `yaml:"backend" mapstructure:"backend"`
	FilePath  string        `yaml:"file_path" mapstructure:"file_path"`
	IOTimeout time.Duration `yaml:"io_timeout" mapstructure:"io_timeout"`
	Redis     RedisConfig   `yaml:"redis" mapstructure:"redis"`
}

// RedisConfig contains Redis-specific configuration
type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
	Key      string `yaml:"key" mapstructure:"key"`
}

// CatalogConfig points at the product catalog file (JSON or YAML)
type CatalogConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled    bool `yaml:"enabled" mapstructure:"enabled"`
	Capacity   int  `yaml:"capacity" mapstructure:"capacity"`
	RefillRate int  `yaml:"refill_rate" mapstructure:"refill_rate"`
}

// LoggingConfig contains logging system configuration
type LoggingConfig struct {
	Level       string `yaml:"level" mapstructure:"level"`
	Format      string `yaml:"format" mapstructure:"format"`
	AddSource   bool   `yaml:"add_source" mapstructure:"add_source"`
	Environment string `yaml:"environment" mapstructure:"environment"`
}

const (
	DefaultQuoteTTL         = 8 * time.Hour
	DefaultFallbackPerOunce = 2400.0
	DefaultProviderURL      = "https://www.goldapi.io/api/XAU/USD"
)

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            5000,
			ShutdownTimeout: 30 * time.Second,
		},
		Quote: QuoteConfig{
			ProviderURL:      DefaultProviderURL,
			TTL:              DefaultQuoteTTL,
			FallbackPerOunce: DefaultFallbackPerOunce,
			RequestTimeout:   5 * time.Second,
			FetchTimeout:     15 * time.Second,
			MaxRetries:       3,
		},
		Cache: CacheConfig{
			Backend:   "file",
			FilePath:  "gold-cache.json",
			IOTimeout: 2 * time.Second,
			Redis: RedisConfig{
				Addr: "localhost:6379",
				Key:  "gold:quote:XAU/USD",
			},
		},
		Catalog: CatalogConfig{
			Path: "configs/products.json",
		},
		RateLimit: RateLimitConfig{
			Enabled:    true,
			Capacity:   100,
			RefillRate: 10,
		},
		Logging: LoggingConfig{
			Level:       "info",
			Format:      "json",
			Environment: "development",
		},
	}
}
