package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"gold-pricing-service/internal/infrastructure/logging"
)

// Server encapsula la configuración del servidor HTTP
type Server struct {
	httpServer *http.Server
	port       int
}

// NewServer crea el servidor. WriteTimeout queda en 0 para no cortar el stream websocket.
func NewServer(handler http.Handler, port int) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		port: port,
	}
}

// Start bloquea hasta que el servidor se detiene
func (s *Server) Start() error {
	ctx := context.Background()

	logging.Info(ctx, "HTTP server starting", logging.Fields{
		"port": s.port,
		"endpoints": []string{
			fmt.Sprintf("GET  http://localhost:%d/", s.port),
			fmt.Sprintf("GET  http://localhost:%d/products?minPrice=&maxPrice=&minPop=&maxPop=", s.port),
			fmt.Sprintf("GET  http://localhost:%d/gold", s.port),
			fmt.Sprintf("POST http://localhost:%d/gold/refresh", s.port),
			fmt.Sprintf("GET  ws://localhost:%d/gold/stream", s.port),
			fmt.Sprintf("GET  http://localhost:%d/health", s.port),
			fmt.Sprintf("GET  http://localhost:%d/ready", s.port),
			fmt.Sprintf("GET  http://localhost:%d/metrics", s.port),
			fmt.Sprintf("GET  http://localhost:%d/swagger/index.html", s.port),
		},
	})

	return s.httpServer.ListenAndServe()
}

// Stop detiene el servidor de forma ordenada
func (s *Server) Stop(ctx context.Context) error {
	logging.Info(ctx, "Stopping HTTP server gracefully", logging.Fields{
		"port": s.port,
	})

	return s.httpServer.Shutdown(ctx)
}

// Port devuelve el puerto configurado
func (s *Server) Port() int {
	return s.port
}
