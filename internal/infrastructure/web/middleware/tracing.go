package middleware

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"time"

	"gold-pricing-service/internal/infrastructure/logging"
	"gold-pricing-service/internal/infrastructure/ratelimit"
)

// responseWriter captura status y bytes escritos
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.statusCode == 0 {
		rw.statusCode = code
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.statusCode == 0 {
		rw.statusCode = http.StatusOK
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// Hijack permite el upgrade a websocket a través del wrapper
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	rw.statusCode = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// RequestTracingMiddleware asigna un request ID y registra el cierre de cada request
func RequestTracingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := logging.NormalizeRequestID(r.Header.Get(logging.RequestIDHeader))
		remoteIP := ratelimit.ClientIP(r)

		ctx := logging.WithRequestID(r.Context(), requestID)
		ctx = logging.WithRemoteIP(ctx, remoteIP)

		w.Header().Set(logging.RequestIDHeader, requestID)

		wrapped := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(wrapped, r.WithContext(ctx))

		status := wrapped.statusCode
		if status == 0 {
			status = http.StatusOK
		}
		logging.HTTP().RequestCompleted(ctx, r.Method, r.URL.Path, status, time.Since(start))
	})
}
