package logging

import (
	"context"
	"time"
)

// Logger define la interfaz principal para logging estructurado
type Logger interface {
	Debug(ctx context.Context, message string, fields Fields)
	Info(ctx context.Context, message string, fields Fields)
	Warn(ctx context.Context, message string, fields Fields)
	Error(ctx context.Context, message string, fields Fields)

	InfoWithError(ctx context.Context, message string, err error, fields Fields)
	WarnWithError(ctx context.Context, message string, err error, fields Fields)
	ErrorWithError(ctx context.Context, message string, err error, fields Fields)

	SetLevel(level LogLevel)
	GetLevel() LogLevel
}

// DomainLogger etiqueta cada entrada con su dominio
type DomainLogger interface {
	Logger
	Domain() string
}

// HTTPLogger registra el ciclo de vida de los requests entrantes
type HTTPLogger interface {
	DomainLogger

	RequestReceived(ctx context.Context, method, path, userAgent, remoteIP string)
	RequestCompleted(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// ExternalAPILogger registra las llamadas al proveedor de cotizaciones
type ExternalAPILogger interface {
	DomainLogger

	RequestStarted(ctx context.Context, service, endpoint string, attempt uint)
	RequestCompleted(ctx context.Context, service, endpoint string, statusCode int, duration time.Duration)
	RequestFailed(ctx context.Context, service, endpoint string, statusCode int, err error, duration time.Duration)
}

// CacheLogger registra operaciones sobre el store en memoria y la cache durable
type CacheLogger interface {
	DomainLogger

	Hit(ctx context.Context, backend, key string)
	Miss(ctx context.Context, backend, key string)
	Loaded(ctx context.Context, backend, key string, age time.Duration)
	Rejected(ctx context.Context, backend, key, reason string)
	Persisted(ctx context.Context, backend, key string)
	CacheError(ctx context.Context, backend, operation, key string, err error)
}

// BusinessLogger registra eventos de cotización y catálogo
type BusinessLogger interface {
	DomainLogger

	QuoteServed(ctx context.Context, pricePerGram float64, source string, fresh bool)
	QuoteRefreshed(ctx context.Context, pricePerGram float64, source string)
	FallbackUsed(ctx context.Context, pricePerGram float64, reason string, err error)
	CatalogPriced(ctx context.Context, items int, pricePerGram float64)
	ValidationFailed(ctx context.Context, input string, reason string)
}

// SecurityLogger registra rechazos de requests
type SecurityLogger interface {
	DomainLogger

	RateLimitExceeded(ctx context.Context, clientIP string, endpoint string)
	InvalidRequest(ctx context.Context, clientIP string, reason string)
}
