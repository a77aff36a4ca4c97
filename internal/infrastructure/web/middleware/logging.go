package middleware

import (
	"net/http"
	"strings"

	"gold-pricing-service/internal/infrastructure/logging"
)

var suspiciousPatterns = []string{
	"../",
	"<script",
	"union select",
	"drop table",
	"exec(",
	"eval(",
}

// LoggingMiddleware registra la llegada del request y marca patrones sospechosos.
// Debe ir después de RequestTracingMiddleware para heredar el request ID.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		remoteIP := logging.GetRemoteIP(ctx)

		logging.HTTP().RequestReceived(ctx, r.Method, r.URL.Path, r.UserAgent(), remoteIP)

		logging.Debug(ctx, "Processing HTTP request", logging.Fields{
			"headers": importantHeaders(r),
			"query":   r.URL.RawQuery,
		})

		if reason, ok := suspicious(r); ok {
			logging.Security().InvalidRequest(ctx, remoteIP, reason)
		}

		next.ServeHTTP(w, r)
	})
}

func importantHeaders(r *http.Request) map[string]string {
	headers := make(map[string]string)
	for _, name := range []string{"Accept", "Accept-Encoding", "Origin", "X-Forwarded-For", "X-Real-IP"} {
		if v := r.Header.Get(name); v != "" {
			headers[name] = v
		}
	}
	return headers
}

// suspicious detecta patrones de ataque comunes en path y query
func suspicious(r *http.Request) (string, bool) {
	target := strings.ToLower(r.URL.Path + "?" + r.URL.RawQuery)
	for _, p := range suspiciousPatterns {
		if strings.Contains(target, p) {
			return "suspicious pattern: " + p, true
		}
	}
	if r.ContentLength > 1<<20 {
		return "oversized body", true
	}
	return "", false
}
