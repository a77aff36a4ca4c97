package goldapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"gold-pricing-service/internal/domain/entities"
	"gold-pricing-service/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestClient(url, apiKey string) *Client {
	c := NewClient(config.QuoteConfig{
		ProviderURL:      url,
		APIKey:           apiKey,
		FallbackPerOunce: 2400,
		RequestTimeout:   time.Second,
		MaxRetries:       3,
	})
	c.baseBackoff = time.Millisecond
	c.now = func() time.Time { return fixedNow }
	return c
}

// upstream responde con status/body fijos y cuenta las llamadas
func upstream(t *testing.T, status int, body string, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func fallbackPerGram() float64 {
	ounce := 2400.0
	return ounce / entities.GramsPerTroyOunce
}

// ===== CASOS DE ÉXITO =====

func TestClient_Fetch_PrefersGramPrice(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "secret", r.Header.Get("x-access-token"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"metal":"XAU","currency":"USD","price":2566.3,"price_gram_24k":82.5}`))
	}))
	defer srv.Close()

	q := newTestClient(srv.URL, "secret").Fetch(context.Background())

	assert.Equal(t, 82.5, q.PricePerGram)
	assert.Equal(t, fixedNow, q.FetchedAt)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestClient_Fetch_ConvertsOuncePrice(t *testing.T) {
	var hits int32
	srv := upstream(t, http.StatusOK, `{"price":3110.34768}`, &hits)

	q := newTestClient(srv.URL, "secret").Fetch(context.Background())

	ounce := 3110.34768
	assert.Equal(t, ounce/entities.GramsPerTroyOunce, q.PricePerGram)
	assert.InDelta(t, 100.0, q.PricePerGram, 1e-9)
}

func TestClient_Fetch_NonPositiveGramFallsThroughToOunce(t *testing.T) {
	var hits int32
	srv := upstream(t, http.StatusOK, `{"price":3110.34768,"price_gram_24k":0}`, &hits)

	q := newTestClient(srv.URL, "secret").Fetch(context.Background())
	assert.InDelta(t, 100.0, q.PricePerGram, 1e-9)
}

// ===== FALLBACK =====

func TestClient_Fetch_FallbackCases(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		expectedHits int32
	}{
		{name: "missing price fields", status: http.StatusOK, body: `{"metal":"XAU"}`, expectedHits: 1},
		{name: "price as string", status: http.StatusOK, body: `{"price":"2400"}`, expectedHits: 1},
		{name: "negative prices", status: http.StatusOK, body: `{"price":-1,"price_gram_24k":-1}`, expectedHits: 1},
		{name: "not json", status: http.StatusOK, body: `<html>oops</html>`, expectedHits: 1},
		{name: "unauthorized is not retried", status: http.StatusUnauthorized, body: `{"error":"bad key"}`, expectedHits: 1},
		{name: "not found is not retried", status: http.StatusNotFound, body: ``, expectedHits: 1},
		{name: "server error is retried", status: http.StatusBadGateway, body: ``, expectedHits: 3},
		{name: "rate limited is retried", status: http.StatusTooManyRequests, body: ``, expectedHits: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits int32
			srv := upstream(t, tt.status, tt.body, &hits)

			q := newTestClient(srv.URL, "secret").Fetch(context.Background())

			assert.Equal(t, fallbackPerGram(), q.PricePerGram)
			assert.Equal(t, fixedNow, q.FetchedAt)
			assert.True(t, q.Valid())
			assert.Equal(t, tt.expectedHits, atomic.LoadInt32(&hits))
		})
	}
}

func TestClient_Fetch_NoAPIKeySkipsUpstream(t *testing.T) {
	var hits int32
	srv := upstream(t, http.StatusOK, `{"price_gram_24k":82.5}`, &hits)

	q := newTestClient(srv.URL, "").Fetch(context.Background())

	assert.Equal(t, fallbackPerGram(), q.PricePerGram)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestClient_Fetch_UnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	q := newTestClient(url, "secret").Fetch(context.Background())
	assert.Equal(t, fallbackPerGram(), q.PricePerGram)
}

func TestClient_Fetch_RecoversAfterTransientFailure(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"price_gram_24k":80.25}`))
	}))
	defer srv.Close()

	q := newTestClient(srv.URL, "secret").Fetch(context.Background())

	assert.Equal(t, 80.25, q.PricePerGram)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestClient_Fetch_RequestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := newTestClient(srv.URL, "secret")
	c.requestTimeout = 20 * time.Millisecond
	c.maxRetries = 1

	start := time.Now()
	q := c.Fetch(context.Background())

	assert.Equal(t, fallbackPerGram(), q.PricePerGram)
	assert.Less(t, time.Since(start), time.Second)
}

// ===== ERRORES TIPADOS =====

func TestClient_FetchPricePerGram_Errors(t *testing.T) {
	var hits int32
	malformed := upstream(t, http.StatusOK, `{}`, &hits)
	broken := upstream(t, http.StatusInternalServerError, ``, &hits)

	_, err := newTestClient(malformed.URL, "secret").FetchPricePerGram(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.Equal(t, ReasonMalformedResponse, classify(err))

	_, err = newTestClient(broken.URL, "secret").FetchPricePerGram(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransientUpstream)
	assert.Equal(t, ReasonUpstreamError, classify(err))

	_, err = newTestClient(broken.URL, "").FetchPricePerGram(context.Background())
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Equal(t, ReasonNoAPIKey, classify(err))
}

func TestQuoteResponse_PricePerGram(t *testing.T) {
	gram := 81.0
	ounce := 2519.38
	zero := 0.0

	v, err := QuoteResponse{PriceGram24k: &gram, Price: &ounce}.PricePerGram()
	require.NoError(t, err)
	assert.Equal(t, gram, v)

	v, err = QuoteResponse{PriceGram24k: &zero, Price: &ounce}.PricePerGram()
	require.NoError(t, err)
	assert.Equal(t, ounce/entities.GramsPerTroyOunce, v)

	_, err = QuoteResponse{}.PricePerGram()
	assert.ErrorIs(t, err, ErrMalformedResponse)
}
