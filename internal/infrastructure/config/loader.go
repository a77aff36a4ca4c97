package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every env override: GOLD_PRICING_QUOTE_TTL, GOLD_PRICING_CACHE_BACKEND, ...
const EnvPrefix = "GOLD_PRICING"

// Loader handles configuration loading using Viper
type Loader struct {
	v           *viper.Viper
	configPaths []string
	getenv      func(string) string
}

// NewLoader creates a loader that searches the usual config locations
func NewLoader() *Loader {
	return &Loader{
		v:           viper.New(),
		configPaths: []string{"./configs", "../configs", ".", "/etc/gold-pricing"},
		getenv:      os.Getenv,
	}
}

// WithConfigPaths overrides where config.yaml is searched for
func (l *Loader) WithConfigPaths(paths ...string) *Loader {
	l.configPaths = paths
	return l
}

// LoadDotEnv loads a .env file if present. Existing env vars win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Load loads configuration from files and environment variables
func (l *Loader) Load() (*Config, error) {
	l.setupViper()

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := GetDefaultConfig()
	if err := l.v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := l.overrideWithEnvVars(config); err != nil {
		return nil, err
	}

	return config, nil
}

func (l *Loader) setupViper() {
	l.v.SetConfigName("config")
	l.v.SetConfigType("yaml")
	for _, p := range l.configPaths {
		l.v.AddConfigPath(p)
	}

	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	l.bindEnvVars()
}

// configKeys lists every leaf key so viper unmarshals env-only values too
var configKeys = []string{
	"server.port",
	"server.shutdown_timeout",
	"quote.provider_url",
	"quote.api_key",
	"quote.ttl",
	"quote.fallback_per_ounce",
	"quote.request_timeout",
	"quote.fetch_timeout",
	"quote.max_retries",
	"cache.backend",
	"cache.file_path",
	"cache.io_timeout",
	"cache.redis.addr",
	"cache.redis.password",
	"cache.redis.db",
	"cache.redis.key",
	"catalog.path",
	"rate_limit.enabled",
	"rate_limit.capacity",
	"rate_limit.refill_rate",
	"logging.level",
	"logging.format",
	"logging.add_source",
	"logging.environment",
}

// legacyEnv maps the service's historical env names to config keys
var legacyEnv = map[string]string{
	"server.port":              "PORT",
	"quote.api_key":            "GOLDAPI_KEY",
	"quote.provider_url":       "GOLDAPI_URL",
	"quote.fallback_per_ounce": "FALLBACK_XAUUSD_PER_OUNCE",
	"cache.file_path":          "CACHE_FILE",
	"cache.backend":            "CACHE_BACKEND",
	"cache.redis.addr":         "REDIS_ADDR",
	"cache.redis.password":     "REDIS_PASSWORD",
	"cache.redis.db":           "REDIS_DB",
	"catalog.path":             "CATALOG_FILE",
	"logging.level":            "LOG_LEVEL",
	"logging.format":           "LOG_FORMAT",
	"rate_limit.enabled":       "RATE_LIMIT_ENABLED",
	"rate_limit.capacity":      "RATE_LIMIT_CAPACITY",
	"rate_limit.refill_rate":   "RATE_LIMIT_REFILL_RATE",
}

// bindEnvVars binds GOLD_PRICING_<KEY> first and the legacy name second
func (l *Loader) bindEnvVars() {
	for _, key := range configKeys {
		names := []string{key, EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}
		if legacy, ok := legacyEnv[key]; ok {
			names = append(names, legacy)
		}
		_ = l.v.BindEnv(names...)
	}
}

// overrideWithEnvVars handles values viper cannot decode on its own.
// GOLD_TTL_MS is a bare millisecond count, which viper would read as nanoseconds.
func (l *Loader) overrideWithEnvVars(config *Config) error {
	if raw := strings.TrimSpace(l.getenv("GOLD_TTL_MS")); raw != "" {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return &ConfigError{Field: "GOLD_TTL_MS", Value: raw, Message: "must be an integer number of milliseconds"}
		}
		config.Quote.TTL = time.Duration(ms) * time.Millisecond
	}

	if env := l.getenv("ENVIRONMENT"); env != "" {
		config.Logging.Environment = strings.ToLower(env)
	}

	return nil
}

// ConfigError reports a single invalid configuration value
type ConfigError struct {
	Field   string
	Value   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s=%q: %s", e.Field, e.Value, e.Message)
}
