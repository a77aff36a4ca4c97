package logging

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Fields representa campos estructurados para logs
type Fields map[string]interface{}

// LogLevel representa los diferentes niveles de log
type LogLevel string

const (
	LevelDebug LogLevel = "DEBUG"
	LevelInfo  LogLevel = "INFO"
	LevelWarn  LogLevel = "WARN"
	LevelError LogLevel = "ERROR"
)

// Campos estándar
const (
	FieldRequestID = "request_id"
	FieldDomain    = "domain"
	FieldError     = "error"
	FieldErrorType = "error_type"
	FieldDuration  = "duration_ms"
)

// HTTP
const (
	FieldHTTPMethod     = "http_method"
	FieldHTTPPath       = "http_path"
	FieldHTTPStatusCode = "http_status_code"
	FieldHTTPUserAgent  = "http_user_agent"
	FieldHTTPRemoteIP   = "http_remote_ip"
	FieldHTTPQuery      = "http_query"
)

// Proveedor externo
const (
	FieldExternalService  = "external_service"
	FieldExternalEndpoint = "external_endpoint"
	FieldExternalStatus   = "external_status_code"
	FieldExternalDuration = "external_duration_ms"
	FieldAttempt          = "attempt"
)

// Cache
const (
	FieldCacheBackend   = "cache_backend"
	FieldCacheOperation = "cache_operation"
	FieldCacheKey       = "cache_key"
	FieldCacheHit       = "cache_hit"
	FieldCacheAge       = "cache_age_seconds"
	FieldReason         = "reason"
)

// Cotización y catálogo
const (
	FieldPair         = "pair"
	FieldPricePerGram = "price_per_gram"
	FieldSource       = "source"
	FieldFresh        = "fresh"
	FieldItems        = "items"
	FieldValidation   = "validation"
)

// Seguridad
const (
	FieldClientIP  = "client_ip"
	FieldRateLimit = "rate_limit"
)

// Operaciones de cache
const (
	CacheOpGet     = "GET"
	CacheOpSet     = "SET"
	CacheOpLoad    = "LOAD"
	CacheOpPersist = "PERSIST"
)

// FieldBuilder arma Fields de forma encadenada
type FieldBuilder struct {
	fields Fields
}

func NewFieldBuilder() *FieldBuilder {
	return &FieldBuilder{fields: make(Fields)}
}

func (fb *FieldBuilder) WithError(err error) *FieldBuilder {
	if err != nil {
		fb.fields[FieldError] = err.Error()
		fb.fields[FieldErrorType] = errorType(err)
	}
	return fb
}

// WithDuration añade duración en milisegundos
func (fb *FieldBuilder) WithDuration(d time.Duration) *FieldBuilder {
	fb.fields[FieldDuration] = float64(d.Nanoseconds()) / 1e6
	return fb
}

func (fb *FieldBuilder) WithHTTPInfo(method, path string, statusCode int) *FieldBuilder {
	fb.fields[FieldHTTPMethod] = method
	fb.fields[FieldHTTPPath] = path
	if statusCode > 0 {
		fb.fields[FieldHTTPStatusCode] = statusCode
	}
	return fb
}

func (fb *FieldBuilder) WithUserAgent(userAgent string) *FieldBuilder {
	if userAgent != "" {
		fb.fields[FieldHTTPUserAgent] = userAgent
	}
	return fb
}

func (fb *FieldBuilder) WithRemoteIP(ip string) *FieldBuilder {
	if ip != "" {
		fb.fields[FieldHTTPRemoteIP] = ip
	}
	return fb
}

func (fb *FieldBuilder) WithExternalAPI(service, endpoint string, statusCode int, duration time.Duration) *FieldBuilder {
	fb.fields[FieldExternalService] = service
	fb.fields[FieldExternalEndpoint] = endpoint
	if statusCode > 0 {
		fb.fields[FieldExternalStatus] = statusCode
	}
	fb.fields[FieldExternalDuration] = float64(duration.Nanoseconds()) / 1e6
	return fb
}

func (fb *FieldBuilder) WithCache(backend, operation, key string) *FieldBuilder {
	if backend != "" {
		fb.fields[FieldCacheBackend] = backend
	}
	fb.fields[FieldCacheOperation] = operation
	if key != "" {
		fb.fields[FieldCacheKey] = key
	}
	return fb
}

// WithQuote añade el contexto de una cotización
func (fb *FieldBuilder) WithQuote(pricePerGram float64, source string) *FieldBuilder {
	fb.fields[FieldPair] = "XAU/USD"
	if pricePerGram > 0 {
		fb.fields[FieldPricePerGram] = pricePerGram
	}
	if source != "" {
		fb.fields[FieldSource] = source
	}
	return fb
}

func (fb *FieldBuilder) WithCustomField(key string, value interface{}) *FieldBuilder {
	if key != "" && value != nil {
		fb.fields[key] = value
	}
	return fb
}

// Build retorna nil si no se agregó ningún campo
func (fb *FieldBuilder) Build() Fields {
	if len(fb.fields) == 0 {
		return nil
	}
	return fb.fields
}

type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	RemoteIPKey  contextKey = "remote_ip"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func WithRemoteIP(ctx context.Context, remoteIP string) context.Context {
	return context.WithValue(ctx, RemoteIPKey, remoteIP)
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

func GetRemoteIP(ctx context.Context) string {
	if remoteIP, ok := ctx.Value(RemoteIPKey).(string); ok {
		return remoteIP
	}
	return ""
}

// errorType devuelve el tipo concreto del error más interno
func errorType(err error) string {
	if err == nil {
		return ""
	}
	for {
		next := errors.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	return fmt.Sprintf("%T", err)
}
