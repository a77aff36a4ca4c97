package goldapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"gold-pricing-service/internal/domain/entities"
	"gold-pricing-service/internal/infrastructure/config"
	"gold-pricing-service/internal/infrastructure/logging"
	"gold-pricing-service/internal/infrastructure/metrics"

	"github.com/avast/retry-go/v4"
)

const (
	ServiceName = "goldapi"

	BaseBackoff = 200 * time.Millisecond
	MaxBackoff  = 2 * time.Second

	maxBodyBytes = 1 << 20
)

// Fallback reasons, also used as metric labels
const (
	ReasonNoAPIKey          = "no_api_key"
	ReasonTimeout           = "timeout"
	ReasonUpstreamError     = "upstream_error"
	ReasonUpstreamRejected  = "upstream_rejected"
	ReasonMalformedResponse = "malformed_response"
)

// Client consulta XAU/USD en GoldAPI. Fetch nunca falla: ante cualquier error
// resuelve al precio de fallback configurado.
type Client struct {
	url              string
	apiKey           string
	fallbackPerOunce float64
	requestTimeout   time.Duration
	maxRetries       uint
	baseBackoff      time.Duration
	httpClient       *http.Client
	now              func() time.Time
}

// NewClient crea el cliente a partir de la configuración de cotización
func NewClient(cfg config.QuoteConfig) *Client {
	retries := cfg.MaxRetries
	if retries < 1 {
		retries = 1
	}
	return &Client{
		url:              cfg.ProviderURL,
		apiKey:           cfg.APIKey,
		fallbackPerOunce: cfg.FallbackPerOunce,
		requestTimeout:   cfg.RequestTimeout,
		maxRetries:       uint(retries),
		baseBackoff:      BaseBackoff,
		httpClient:       &http.Client{},
		now:              time.Now,
	}
}

// Fetch devuelve una cotización válida, del proveedor o del fallback
func (c *Client) Fetch(ctx context.Context) entities.Quote {
	perGram, err := c.FetchPricePerGram(ctx)
	if err != nil {
		return c.fallback(ctx, err)
	}

	quote := entities.NewQuote(perGram, c.now())
	metrics.RecordQuoteRefresh("provider", perGram)
	logging.Business().QuoteRefreshed(ctx, perGram, "provider")
	return quote
}

// FallbackQuote es la cotización derivada del precio por onza configurado
func (c *Client) FallbackQuote() entities.Quote {
	return entities.NewQuoteFromOunce(c.fallbackPerOunce, c.now())
}

func (c *Client) fallback(ctx context.Context, cause error) entities.Quote {
	quote := c.FallbackQuote()
	reason := classify(cause)

	metrics.RecordFallbackActivation(reason)
	metrics.RecordQuoteRefresh("fallback", quote.PricePerGram)
	logging.Business().FallbackUsed(ctx, quote.PricePerGram, reason, cause)

	return quote
}

// FetchPricePerGram consulta al proveedor con reintentos y devuelve el error real
func (c *Client) FetchPricePerGram(ctx context.Context) (float64, error) {
	if c.apiKey == "" {
		return 0, ErrMissingAPIKey
	}

	var perGram float64
	err := retry.Do(
		func() error {
			reqCtx, cancel := context.WithTimeout(ctx, c.requestTimeout)
			defer cancel()

			v, reqErr := c.doRequest(reqCtx)
			if reqErr != nil {
				return reqErr
			}
			perGram = v
			return nil
		},
		retry.Attempts(c.maxRetries),
		retry.Delay(c.baseBackoff),
		retry.MaxDelay(MaxBackoff),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(isRetryable),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			metrics.RecordExternalAPIRetry(ServiceName, int(n+1))
			logging.ExternalAPI().Warn(ctx, "GoldAPI retry attempt", logging.Fields{
				logging.FieldExternalService: ServiceName,
				logging.FieldAttempt:         n + 1,
				"max_attempts":               c.maxRetries,
				logging.FieldError:           err.Error(),
			})
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("goldapi fetch failed: %w", err)
	}
	return perGram, nil
}

func (c *Client) doRequest(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to create request: %v", ErrUpstreamRejected, err)
	}
	req.Header.Set("x-access-token", c.apiKey)
	req.Header.Set("Accept", "application/json")

	extLog := logging.ExternalAPI()
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordExternalAPICall(ServiceName, 0, elapsed.Seconds())
		extLog.RequestFailed(ctx, ServiceName, c.url, 0, err, elapsed)
		return 0, fmt.Errorf("%w: %w", ErrTransientUpstream, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	metrics.RecordExternalAPICall(ServiceName, resp.StatusCode, elapsed.Seconds())
	extLog.RequestCompleted(ctx, ServiceName, c.url, resp.StatusCode, elapsed)

	switch {
	case resp.StatusCode >= 500, resp.StatusCode == http.StatusTooManyRequests:
		return 0, fmt.Errorf("%w: HTTP %d", ErrTransientUpstream, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return 0, fmt.Errorf("%w: HTTP %d", ErrUpstreamRejected, resp.StatusCode)
	}

	var payload QuoteResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&payload); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return payload.PricePerGram()
}

func isRetryable(err error) bool {
	return errors.Is(err, ErrTransientUpstream)
}

func classify(err error) string {
	switch {
	case errors.Is(err, ErrMissingAPIKey):
		return ReasonNoAPIKey
	case errors.Is(err, ErrMalformedResponse):
		return ReasonMalformedResponse
	case errors.Is(err, ErrUpstreamRejected):
		return ReasonUpstreamRejected
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ReasonTimeout
	default:
		return ReasonUpstreamError
	}
}
