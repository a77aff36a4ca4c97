package ratelimit

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"

	"gold-pricing-service/internal/application/dto"
	"gold-pricing-service/internal/infrastructure/config"
	"gold-pricing-service/internal/infrastructure/logging"
	"gold-pricing-service/internal/infrastructure/metrics"
)

// Middleware aplica rate limiting por IP de cliente
type Middleware struct {
	limiter   *ClientLimiter
	skipPaths map[string]bool
	enabled   bool
}

// NewMiddleware crea el middleware a partir de la configuración
func NewMiddleware(cfg config.RateLimitConfig) *Middleware {
	m := &Middleware{
		skipPaths: map[string]bool{
			"/":        true,
			"/health":  true,
			"/ready":   true,
			"/metrics": true,
		},
		enabled: cfg.Enabled,
	}
	if cfg.Enabled {
		m.limiter = NewClientLimiter(cfg.Capacity, cfg.RefillRate)
	}
	return m
}

// Handler devuelve el middleware HTTP
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.enabled || m.skipPaths[r.URL.Path] || strings.HasPrefix(r.URL.Path, "/swagger/") {
			next.ServeHTTP(w, r)
			return
		}

		clientIP := ClientIP(r)
		allowed, remaining := m.limiter.Allow(clientIP)
		metrics.RecordRateLimitResult(allowed)

		if !allowed {
			logging.Security().RateLimitExceeded(r.Context(), clientIP, r.URL.Path)
			writeRateLimitError(w)
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		next.ServeHTTP(w, r)
	})
}

// ClientIP obtiene la IP del cliente, respetando proxies
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xRealIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); xRealIP != "" {
		return xRealIP
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func writeRateLimitError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-RateLimit-Remaining", "0")
	w.Header().Set("Retry-After", "1")
	w.WriteHeader(http.StatusTooManyRequests)

	_ = json.NewEncoder(w).Encode(dto.NewErrorResponseWithCode(
		"RATE_LIMIT_EXCEEDED",
		"Rate limit exceeded. Please slow down your requests.",
		strconv.Itoa(http.StatusTooManyRequests),
	))
}
