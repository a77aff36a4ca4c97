package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the gold pricing service
var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gold_pricing_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gold_pricing_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPResponseSizeBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gold_pricing_http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000},
		},
		[]string{"method", "path"},
	)

	// Quote Metrics
	QuoteRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gold_pricing_quote_requests_total",
			Help: "Total number of quote reads by freshness of the stored value",
		},
		[]string{"result"}, // result: fresh/stale/empty
	)

	QuoteRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gold_pricing_quote_refreshes_total",
			Help: "Total number of quote refreshes by source",
		},
		[]string{"source"}, // source: provider/fallback
	)

	QuoteRefreshesCollapsed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gold_pricing_quote_refreshes_collapsed_total",
			Help: "Callers that joined an in-flight refresh instead of starting one",
		},
	)

	CurrentQuote = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gold_pricing_current_quote_usd_per_gram",
			Help: "Gold price per gram currently held in memory",
		},
	)

	QuoteAge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gold_pricing_quote_age_seconds",
			Help: "Age of the quote at the last read",
		},
	)

	// Upstream Metrics
	ExternalAPIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gold_pricing_external_api_requests_total",
			Help: "Total number of quote provider requests",
		},
		[]string{"service", "status_code"},
	)

	ExternalAPIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gold_pricing_external_api_request_duration_seconds",
			Help:    "Quote provider request duration in seconds",
			Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0},
		},
		[]string{"service"},
	)

	ExternalAPIRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gold_pricing_external_api_retries_total",
			Help: "Total number of quote provider retry attempts",
		},
		[]string{"service", "attempt"},
	)

	FallbackActivationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gold_pricing_fallback_activations_total",
			Help: "Total number of times the configured fallback quote was used",
		},
		[]string{"reason"}, // reason: no_api_key/upstream_error/malformed_response/timeout
	)

	// Durable cache Metrics
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gold_pricing_cache_operations_total",
			Help: "Total number of durable cache operations",
		},
		[]string{"backend", "operation", "result"}, // operation: load/persist, result: hit/miss/invalid/success/error
	)

	// Rate Limiting Metrics
	RateLimitRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gold_pricing_rate_limit_requests_total",
			Help: "Total number of requests processed by rate limiter",
		},
		[]string{"result"}, // result: allowed/blocked
	)

	// Stream Metrics
	StreamSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gold_pricing_stream_subscribers",
			Help: "Number of open quote stream subscriptions",
		},
	)

	StreamDropsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gold_pricing_stream_drops_total",
			Help: "Quote updates discarded because a subscriber channel was full",
		},
	)

	// Application Metrics
	ApplicationInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gold_pricing_application_info",
			Help: "Application information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordHTTPRequest records HTTP request metrics
func RecordHTTPRequest(method, path string, statusCode int, duration float64, responseSize int64) {
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)

	if responseSize > 0 {
		HTTPResponseSizeBytes.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

// RecordQuoteRequest records whether a read found a fresh, stale or empty store
func RecordQuoteRequest(result string) {
	QuoteRequestsTotal.WithLabelValues(result).Inc()
}

func RecordQuoteRefresh(source string, pricePerGram float64) {
	QuoteRefreshesTotal.WithLabelValues(source).Inc()
	CurrentQuote.Set(pricePerGram)
}

func RecordCollapsedRefresh() {
	QuoteRefreshesCollapsed.Inc()
}

func UpdateQuoteAge(ageSeconds float64) {
	QuoteAge.Set(ageSeconds)
}

// RecordExternalAPICall records quote provider call metrics
func RecordExternalAPICall(service string, statusCode int, duration float64) {
	ExternalAPIRequestsTotal.WithLabelValues(service, strconv.Itoa(statusCode)).Inc()
	ExternalAPIRequestDuration.WithLabelValues(service).Observe(duration)
}

func RecordExternalAPIRetry(service string, attempt int) {
	ExternalAPIRetries.WithLabelValues(service, strconv.Itoa(attempt)).Inc()
}

func RecordFallbackActivation(reason string) {
	FallbackActivationsTotal.WithLabelValues(reason).Inc()
}

// RecordCacheOperation records durable cache metrics
func RecordCacheOperation(backend, operation, result string) {
	CacheOperationsTotal.WithLabelValues(backend, operation, result).Inc()
}

// RecordRateLimitResult records rate limiting results
func RecordRateLimitResult(allowed bool) {
	result := "blocked"
	if allowed {
		result = "allowed"
	}
	RateLimitRequestsTotal.WithLabelValues(result).Inc()
}

func AddStreamSubscribers(delta float64) {
	StreamSubscribers.Add(delta)
}

// RecordStreamDrop incrementa contador de descartes por canal lleno
func RecordStreamDrop() {
	StreamDropsTotal.Inc()
}

// SetApplicationInfo sets application information
func SetApplicationInfo(version, goVersion string) {
	ApplicationInfo.WithLabelValues(version, goVersion).Set(1)
}
