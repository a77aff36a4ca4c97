package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"gold-pricing-service/internal/application/services"
	"gold-pricing-service/internal/infrastructure/catalog"
	"gold-pricing-service/internal/infrastructure/config"
	"gold-pricing-service/internal/infrastructure/logging"
	"gold-pricing-service/internal/infrastructure/metrics"
	"gold-pricing-service/internal/infrastructure/quote/goldapi"
	"gold-pricing-service/internal/infrastructure/ratelimit"
	"gold-pricing-service/internal/infrastructure/repositories/cache"
	"gold-pricing-service/internal/infrastructure/web/handlers"
	"gold-pricing-service/internal/infrastructure/web/server"
)

const version = "1.0.0"

// @title Gold Pricing Service API
// @version 1.0
// @description Prices a static jewelry catalog against the current gold quote (USD per gram).
// @BasePath /
func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("Failed to load .env: %v", err)
	}

	cfg, err := config.NewLoader().Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := config.NewValidator().Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	loggerConfig := logging.ConfigFromSettings(cfg.Logging.Level, cfg.Logging.Format, version,
		cfg.Logging.Environment, cfg.Logging.AddSource)
	if err := logging.InitializeGlobalLoggers(loggerConfig); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}

	ctx := logging.WithRequestID(context.Background(), "startup")
	metrics.SetApplicationInfo(version, runtime.Version())

	logging.Info(ctx, "Starting gold pricing service", logging.Fields{
		"version":     version,
		"environment": cfg.Logging.Environment,
		"quote_ttl":   cfg.Quote.TTL.String(),
		"provider":    cfg.Quote.ProviderURL,
		"api_key_set": cfg.Quote.APIKey != "",
	})

	items, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		logging.ErrorWithError(ctx, "Failed to load catalog", err, logging.Fields{"path": cfg.Catalog.Path})
		os.Exit(1)
	}
	logging.Info(ctx, "Catalog loaded", logging.Fields{
		logging.FieldItems: len(items),
		"path":             cfg.Catalog.Path,
	})

	durable, err := cache.NewDurableCache(ctx, cfg.Cache)
	if err != nil {
		logging.ErrorWithError(ctx, "Failed to create durable cache", err, logging.Fields{
			logging.FieldCacheBackend: cfg.Cache.Backend,
		})
		os.Exit(1)
	}
	defer func() {
		if err := durable.Close(); err != nil {
			logging.ErrorWithError(ctx, "Failed to close durable cache", err, nil)
		}
	}()

	fetcher := goldapi.NewClient(cfg.Quote)
	manager := services.NewQuoteManager(fetcher, cache.NewMemoryQuoteStore(), durable, cfg.Quote.TTL,
		services.WithFetchTimeout(cfg.Quote.FetchTimeout))
	defer manager.Close()

	warmCtx, cancelWarm := context.WithTimeout(ctx, cfg.Cache.IOTimeout)
	if manager.Warm(warmCtx) {
		logging.Info(ctx, "Quote restored from durable cache", nil)
	} else {
		logging.Info(ctx, "No durable quote available, first request will fetch", nil)
	}
	cancelWarm()

	checks := map[string]handlers.ReadinessCheck{}
	if pinger, ok := durable.(interface{ Ping(context.Context) error }); ok {
		checks["cache"] = pinger.Ping
	}

	router := server.NewRouter(server.Handlers{
		Products: handlers.NewProductHandler(services.NewProductService(items, manager)),
		Gold:     handlers.NewGoldHandler(manager),
		Stream:   handlers.NewStreamHandler(manager),
		Health:   handlers.NewHealthHandler(manager, checks),
	}, ratelimit.NewMiddleware(cfg.RateLimit))

	srv := server.NewServer(router, cfg.Server.Port)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logging.Info(ctx, "Shutdown signal received", logging.Fields{"signal": sig.String()})
	case err := <-serverErr:
		if err != nil {
			logging.ErrorWithError(ctx, "HTTP server failed", err, nil)
		}
	}

	// cerrar los streams antes del Shutdown: las conexiones hijacked no se esperan
	manager.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logging.ErrorWithError(ctx, "Server forced to shutdown", err, nil)
	}

	logging.Info(ctx, "Server exited", nil)
}
