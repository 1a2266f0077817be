package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/time/rate"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	httphandler "github.com/ericfisherdev/academia/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/academia/internal/adapter/driving/web"
	"github.com/ericfisherdev/academia/internal/bootstrap"
	"github.com/ericfisherdev/academia/internal/config"
	"github.com/ericfisherdev/academia/internal/metrics"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load .env (optional) and configuration.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	logger.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"storage", cfg.Storage,
		"session_ttl", cfg.SessionTTL,
		"rate_limit", cfg.RateLimit,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open the configured blob storage.
	backend, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := backend.close(); closeErr != nil {
			logger.Error("error closing storage", "error", closeErr)
		}
	}()

	// 4. Metrics registry.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	// 5. Wire services.
	svc, err := bootstrap.NewServices(backend.store, backend.pinger, bootstrap.Options{
		StorageName:      cfg.Storage,
		SessionKey:       []byte(cfg.SessionKey),
		SessionTTL:       cfg.SessionTTL,
		ProviderMinDelay: cfg.ProviderMinDelay,
		ProviderMaxDelay: cfg.ProviderMaxDelay,
		TranslationDelay: cfg.TranslationDelay,
	}, collector, logger)
	if err != nil {
		return err
	}
	if cfg.SessionKey == "" {
		logger.Warn("ACADEMIA_SESSION_KEY not set, sessions will not survive a restart")
	}

	// 6. Register API, metrics and GUI routes.
	limiter := httphandler.NewRateLimiter(httphandler.RateLimiterConfig{
		Rate:  rate.Limit(cfg.RateLimit),
		Burst: cfg.RateBurst,
	}, logger)
	defer limiter.Stop()

	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, httphandler.NewHandler(svc, logger), limiter)
	mux.Handle("GET /metrics", metrics.Handler(reg))
	webhandler.RegisterRoutes(mux, webhandler.NewHandler(svc, logger))

	handler := httphandler.ApplyMiddleware(mux, svc.Sessions, collector, logger)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	logger.Info("academia started", "listen_addr", cfg.ListenAddr, "storage", cfg.Storage)

	// 7. Wait for shutdown signal.
	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}
