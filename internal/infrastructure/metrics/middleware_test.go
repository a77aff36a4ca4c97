package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		"/":                        "/",
		"/products":                "/products",
		"/products/":               "/products",
		"/gold":                    "/gold",
		"/gold/refresh":            "/gold/refresh",
		"/gold/stream":             "/gold/stream",
		"/swagger/index.html":      "/swagger/*",
		"/health":                  "/health",
		"/products/123/unexpected": "/unknown",
		"/wp-admin":                "/unknown",
	}

	for in, want := range tests {
		assert.Equal(t, want, normalizePath(in), in)
	}
}

func TestHTTPMetricsMiddleware_RecordsStatus(t *testing.T) {
	handler := HTTPMetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"bad"}`))
	}))

	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/products", "400")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products?minPrice=abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
