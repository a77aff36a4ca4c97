package logging

import (
	"fmt"
	"sync"
)

// LoggerSet agrupa el logger base y los loggers por dominio
type LoggerSet struct {
	Base        Logger
	HTTP        HTTPLogger
	ExternalAPI ExternalAPILogger
	Cache       CacheLogger
	Business    BusinessLogger
	Security    SecurityLogger
}

// NewLoggerSet construye todos los loggers de dominio sobre un mismo logger base
func NewLoggerSet(base Logger) *LoggerSet {
	return &LoggerSet{
		Base:        base,
		HTTP:        NewHTTPLogger(base),
		ExternalAPI: NewExternalAPILogger(base),
		Cache:       NewCacheLogger(base),
		Business:    NewBusinessLogger(base),
		Security:    NewSecurityLogger(base),
	}
}

// NewLoggerSetFromConfig crea el logger estructurado y sus derivados
func NewLoggerSetFromConfig(config *LoggerConfig) (*LoggerSet, error) {
	base, err := NewStructuredLogger(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create base logger: %w", err)
	}
	return NewLoggerSet(base), nil
}

var (
	globalMu      sync.RWMutex
	globalLoggers *LoggerSet
)

// InitializeGlobalLoggers reemplaza el set global
func InitializeGlobalLoggers(config *LoggerConfig) error {
	set, err := NewLoggerSetFromConfig(config)
	if err != nil {
		return fmt.Errorf("failed to initialize global loggers: %w", err)
	}
	SetGlobalLoggers(set)
	return nil
}

// SetGlobalLoggers instala un set ya construido (usado también por los tests)
func SetGlobalLoggers(set *LoggerSet) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLoggers = set
}

// GetGlobalLoggers retorna el set global, creando uno por defecto si hace falta
func GetGlobalLoggers() *LoggerSet {
	globalMu.RLock()
	set := globalLoggers
	globalMu.RUnlock()
	if set != nil {
		return set
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLoggers == nil {
		base, _ := NewStructuredLogger(DefaultConfig())
		globalLoggers = NewLoggerSet(base)
	}
	return globalLoggers
}

// ConfigFromSettings traduce los valores de configuración de la app
func ConfigFromSettings(level, format, version, environment string, addSource bool) *LoggerConfig {
	return NewConfig(ServiceName, version, environment).
		WithLevel(LogLevelFromString(level)).
		WithFormat(LogFormatFromString(format)).
		WithSource(addSource)
}
