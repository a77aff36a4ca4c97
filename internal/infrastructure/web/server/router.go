package server

import (
	"net/http"

	_ "gold-pricing-service/internal/docs"
	"gold-pricing-service/internal/infrastructure/metrics"
	"gold-pricing-service/internal/infrastructure/ratelimit"
	"gold-pricing-service/internal/infrastructure/web/handlers"
	"gold-pricing-service/internal/infrastructure/web/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Handlers agrupa los handlers HTTP del servicio
type Handlers struct {
	Products *handlers.ProductHandler
	Gold     *handlers.GoldHandler
	Stream   *handlers.StreamHandler
	Health   *handlers.HealthHandler
}

// NewRouter arma el router con todas las rutas y la cadena de middlewares
func NewRouter(h Handlers, limiter *ratelimit.Middleware) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.RequestTracingMiddleware)
	r.Use(middleware.LoggingMiddleware)
	r.Use(metrics.HTTPMetricsMiddleware)
	r.Use(middleware.CORSMiddleware)
	if limiter != nil {
		r.Use(limiter.Handler)
	}

	r.HandleFunc("/", h.Health.Root).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)
	r.HandleFunc("/ready", h.Health.Ready).Methods(http.MethodGet)

	r.HandleFunc("/products", h.Products.GetProducts).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/gold", h.Gold.GetGold).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/gold/refresh", h.Gold.RefreshGold).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/gold/stream", h.Stream.Stream).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.HandleFunc("/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})

	return r
}
