package logging

import (
	"context"
	"time"
)

// BaseDomainLogger agrega el campo de dominio a cada entrada
type BaseDomainLogger struct {
	Logger
	domain string
}

func newBase(logger Logger, domain string) *BaseDomainLogger {
	return &BaseDomainLogger{Logger: logger, domain: domain}
}

func (dl *BaseDomainLogger) Domain() string {
	return dl.domain
}

func (dl *BaseDomainLogger) tag(fields Fields) Fields {
	out := make(Fields, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out[FieldDomain] = dl.domain
	return out
}

func (dl *BaseDomainLogger) logAt(ctx context.Context, level LogLevel, message string, fields Fields) {
	switch level {
	case LevelDebug:
		dl.Logger.Debug(ctx, message, dl.tag(fields))
	case LevelWarn:
		dl.Logger.Warn(ctx, message, dl.tag(fields))
	case LevelError:
		dl.Logger.Error(ctx, message, dl.tag(fields))
	default:
		dl.Logger.Info(ctx, message, dl.tag(fields))
	}
}

func (dl *BaseDomainLogger) Debug(ctx context.Context, message string, fields Fields) {
	dl.logAt(ctx, LevelDebug, message, fields)
}

func (dl *BaseDomainLogger) Info(ctx context.Context, message string, fields Fields) {
	dl.logAt(ctx, LevelInfo, message, fields)
}

func (dl *BaseDomainLogger) Warn(ctx context.Context, message string, fields Fields) {
	dl.logAt(ctx, LevelWarn, message, fields)
}

func (dl *BaseDomainLogger) Error(ctx context.Context, message string, fields Fields) {
	dl.logAt(ctx, LevelError, message, fields)
}

func (dl *BaseDomainLogger) InfoWithError(ctx context.Context, message string, err error, fields Fields) {
	dl.Logger.InfoWithError(ctx, message, err, dl.tag(fields))
}

func (dl *BaseDomainLogger) WarnWithError(ctx context.Context, message string, err error, fields Fields) {
	dl.Logger.WarnWithError(ctx, message, err, dl.tag(fields))
}

func (dl *BaseDomainLogger) ErrorWithError(ctx context.Context, message string, err error, fields Fields) {
	dl.Logger.ErrorWithError(ctx, message, err, dl.tag(fields))
}

// levelForStatus: 4xx a WARN, 5xx a ERROR
func levelForStatus(statusCode int) LogLevel {
	switch {
	case statusCode >= 500:
		return LevelError
	case statusCode >= 400:
		return LevelWarn
	default:
		return LevelInfo
	}
}

// HTTPDomainLogger especializado para logs HTTP
type HTTPDomainLogger struct {
	*BaseDomainLogger
}

func NewHTTPLogger(baseLogger Logger) HTTPLogger {
	return &HTTPDomainLogger{BaseDomainLogger: newBase(baseLogger, "http")}
}

func (hl *HTTPDomainLogger) RequestReceived(ctx context.Context, method, path, userAgent, remoteIP string) {
	fields := NewFieldBuilder().
		WithHTTPInfo(method, path, 0).
		WithUserAgent(userAgent).
		WithRemoteIP(remoteIP).
		Build()

	hl.Debug(ctx, "HTTP request received", fields)
}

func (hl *HTTPDomainLogger) RequestCompleted(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	fields := NewFieldBuilder().
		WithHTTPInfo(method, path, statusCode).
		WithDuration(duration).
		Build()

	hl.logAt(ctx, levelForStatus(statusCode), "HTTP request completed", fields)
}

// ExternalAPIDomainLogger especializado para el proveedor de cotizaciones
type ExternalAPIDomainLogger struct {
	*BaseDomainLogger
}

func NewExternalAPILogger(baseLogger Logger) ExternalAPILogger {
	return &ExternalAPIDomainLogger{BaseDomainLogger: newBase(baseLogger, "external_api")}
}

func (el *ExternalAPIDomainLogger) RequestStarted(ctx context.Context, service, endpoint string, attempt uint) {
	fields := NewFieldBuilder().
		WithCustomField(FieldExternalService, service).
		WithCustomField(FieldExternalEndpoint, endpoint).
		WithCustomField(FieldAttempt, attempt).
		Build()

	el.Debug(ctx, "External API request started", fields)
}

func (el *ExternalAPIDomainLogger) RequestCompleted(ctx context.Context, service, endpoint string, statusCode int, duration time.Duration) {
	fields := NewFieldBuilder().
		WithExternalAPI(service, endpoint, statusCode, duration).
		Build()

	el.logAt(ctx, levelForStatus(statusCode), "External API request completed", fields)
}

func (el *ExternalAPIDomainLogger) RequestFailed(ctx context.Context, service, endpoint string, statusCode int, err error, duration time.Duration) {
	fields := NewFieldBuilder().
		WithExternalAPI(service, endpoint, statusCode, duration).
		Build()

	el.WarnWithError(ctx, "External API request failed", err, fields)
}

// CacheDomainLogger especializado para cache
type CacheDomainLogger struct {
	*BaseDomainLogger
}

func NewCacheLogger(baseLogger Logger) CacheLogger {
	return &CacheDomainLogger{BaseDomainLogger: newBase(baseLogger, "cache")}
}

func (cl *CacheDomainLogger) Hit(ctx context.Context, backend, key string) {
	fields := NewFieldBuilder().
		WithCache(backend, CacheOpGet, key).
		WithCustomField(FieldCacheHit, true).
		Build()

	cl.Debug(ctx, "Cache hit", fields)
}

func (cl *CacheDomainLogger) Miss(ctx context.Context, backend, key string) {
	fields := NewFieldBuilder().
		WithCache(backend, CacheOpGet, key).
		WithCustomField(FieldCacheHit, false).
		Build()

	cl.Debug(ctx, "Cache miss", fields)
}

func (cl *CacheDomainLogger) Loaded(ctx context.Context, backend, key string, age time.Duration) {
	fields := NewFieldBuilder().
		WithCache(backend, CacheOpLoad, key).
		WithCustomField(FieldCacheAge, age.Seconds()).
		Build()

	cl.Info(ctx, "Durable quote loaded", fields)
}

func (cl *CacheDomainLogger) Rejected(ctx context.Context, backend, key, reason string) {
	fields := NewFieldBuilder().
		WithCache(backend, CacheOpLoad, key).
		WithCustomField(FieldReason, reason).
		Build()

	cl.Warn(ctx, "Durable quote ignored", fields)
}

func (cl *CacheDomainLogger) Persisted(ctx context.Context, backend, key string) {
	fields := NewFieldBuilder().
		WithCache(backend, CacheOpPersist, key).
		Build()

	cl.Debug(ctx, "Quote persisted", fields)
}

func (cl *CacheDomainLogger) CacheError(ctx context.Context, backend, operation, key string, err error) {
	fields := NewFieldBuilder().
		WithCache(backend, operation, key).
		Build()

	cl.WarnWithError(ctx, "Cache operation failed", err, fields)
}

// BusinessDomainLogger especializado para cotización y catálogo
type BusinessDomainLogger struct {
	*BaseDomainLogger
}

func NewBusinessLogger(baseLogger Logger) BusinessLogger {
	return &BusinessDomainLogger{BaseDomainLogger: newBase(baseLogger, "business")}
}

func (bl *BusinessDomainLogger) QuoteServed(ctx context.Context, pricePerGram float64, source string, fresh bool) {
	fields := NewFieldBuilder().
		WithQuote(pricePerGram, source).
		WithCustomField(FieldFresh, fresh).
		Build()

	bl.Debug(ctx, "Quote served", fields)
}

func (bl *BusinessDomainLogger) QuoteRefreshed(ctx context.Context, pricePerGram float64, source string) {
	fields := NewFieldBuilder().
		WithQuote(pricePerGram, source).
		Build()

	bl.Info(ctx, "Quote refreshed", fields)
}

func (bl *BusinessDomainLogger) FallbackUsed(ctx context.Context, pricePerGram float64, reason string, err error) {
	fields := NewFieldBuilder().
		WithQuote(pricePerGram, "fallback").
		WithCustomField(FieldReason, reason).
		Build()

	bl.WarnWithError(ctx, "Using fallback quote", err, fields)
}

func (bl *BusinessDomainLogger) CatalogPriced(ctx context.Context, items int, pricePerGram float64) {
	fields := NewFieldBuilder().
		WithQuote(pricePerGram, "").
		WithCustomField(FieldItems, items).
		Build()

	bl.Debug(ctx, "Catalog priced", fields)
}

func (bl *BusinessDomainLogger) ValidationFailed(ctx context.Context, input string, reason string) {
	fields := NewFieldBuilder().
		WithCustomField("input", input).
		WithCustomField(FieldReason, reason).
		WithCustomField(FieldValidation, "failed").
		Build()

	bl.Warn(ctx, "Input validation failed", fields)
}

// SecurityDomainLogger especializado para seguridad
type SecurityDomainLogger struct {
	*BaseDomainLogger
}

func NewSecurityLogger(baseLogger Logger) SecurityLogger {
	return &SecurityDomainLogger{BaseDomainLogger: newBase(baseLogger, "security")}
}

func (sl *SecurityDomainLogger) RateLimitExceeded(ctx context.Context, clientIP string, endpoint string) {
	fields := NewFieldBuilder().
		WithCustomField(FieldClientIP, clientIP).
		WithCustomField("endpoint", endpoint).
		WithCustomField(FieldRateLimit, "exceeded").
		Build()

	sl.Warn(ctx, "Rate limit exceeded", fields)
}

func (sl *SecurityDomainLogger) InvalidRequest(ctx context.Context, clientIP string, reason string) {
	fields := NewFieldBuilder().
		WithCustomField(FieldClientIP, clientIP).
		WithCustomField(FieldReason, reason).
		Build()

	sl.Warn(ctx, "Invalid request received", fields)
}
