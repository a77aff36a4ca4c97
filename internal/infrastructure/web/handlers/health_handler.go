package handlers

import (
	"context"
	"net/http"
	"sort"

	"gold-pricing-service/internal/application/dto"
	"gold-pricing-service/internal/domain/entities"
)

// QuotePeeker lee la cotización almacenada sin disparar una consulta
type QuotePeeker interface {
	Peek() (entities.QuoteStatus, bool)
}

// ReadinessCheck verifica una dependencia; nil significa lista
type ReadinessCheck func(ctx context.Context) error

// HealthHandler maneja los endpoints de health check
type HealthHandler struct {
	quotes QuotePeeker
	checks map[string]ReadinessCheck
}

// NewHealthHandler crea una nueva instancia del health handler
func NewHealthHandler(quotes QuotePeeker, checks map[string]ReadinessCheck) *HealthHandler {
	return &HealthHandler{
		quotes: quotes,
		checks: checks,
	}
}

// Root responde "OK" en texto plano
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// Health godoc
// @Summary Basic health check
// @Description Verifies that the service is running. Does not check dependencies.
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse "Service is running"
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, dto.NewHealthResponse("healthy", map[string]string{
		"service": "running",
	}))
}

// Ready godoc
// @Summary Readiness check
// @Description Reports whether a quote is available and whether it is fresh.
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse "Ready"
// @Failure 503 {object} dto.HealthResponse "A dependency is failing"
// @Router /ready [get]
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	services := map[string]string{"service": "ready"}
	status := "ready"

	switch quote, ok := h.quotes.Peek(); {
	case !ok:
		services["quote"] = "empty"
	case quote.Fresh:
		services["quote"] = "fresh"
	default:
		services["quote"] = "stale"
		status = "degraded"
	}

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			services[name] = "error: " + err.Error()
			writeJSON(ctx, w, http.StatusServiceUnavailable, dto.NewHealthResponse("unhealthy", services))
			return
		}
		services[name] = "ready"
	}

	writeJSON(ctx, w, http.StatusOK, dto.NewHealthResponse(status, services))
}
