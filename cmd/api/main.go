// Package main is the entry point for the Time Travel API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pkordes/timetravel/internal/cache"
	"github.com/pkordes/timetravel/internal/config"
	"github.com/pkordes/timetravel/internal/handler"
	"github.com/pkordes/timetravel/internal/metrics"
	"github.com/pkordes/timetravel/internal/middleware"
	"github.com/pkordes/timetravel/internal/repo"
	"github.com/pkordes/timetravel/internal/service"
)

func main() {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("could not load .env", "error", err)
	}

	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use the default logger before the configured one exists.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func run(cfg config.Config, logger *slog.Logger) error {
	// --- Database ---------------------------------------------------------
	// The client owns a connection pool; Connect does not dial, so Ping
	// verifies the store is reachable before accepting traffic.
	connectCtx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return fmt.Errorf("connect to mongo: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			slog.Error("mongo disconnect", "error", err)
		}
	}()

	if err := client.Ping(connectCtx, nil); err != nil {
		return fmt.Errorf("ping mongo: %w", err)
	}
	slog.Info("database connection established", "database", cfg.MongoDatabase)

	coll := client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection)

	// Without the index the paradox rule still holds for sequential creates,
	// so a failure here is logged rather than fatal.
	if err := repo.EnsureIndexes(connectCtx, coll); err != nil {
		slog.Warn("could not ensure indexes", "error", err)
	}

	// --- Cache ------------------------------------------------------------
	var travelCache cache.TravelCache
	switch cfg.CacheBackend {
	case config.CacheRedis:
		rdb, err := cache.NewRedisClient(connectCtx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("redis close", "error", err)
			}
		}()
		travelCache = cache.NewRedis(rdb, cfg.CacheKeyPrefix)
	default:
		travelCache = cache.NewMemory()
	}
	slog.Info("travel cache ready", "backend", cfg.CacheBackend)

	// --- Services ---------------------------------------------------------
	m := metrics.New(prometheus.DefaultRegisterer)
	travelSvc := service.NewTravelService(repo.NewTravelRepo(coll), travelCache, m, logger)
	server := handler.NewServer(travelSvc, logger)

	// --- Router -----------------------------------------------------------
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP, which the
	// rate limiter keys on.
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns a JSON 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(middleware.NewRecoverer(logger))
	r.Use(middleware.NewMetricsHandler(m.RequestDuration))
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewRateLimitHandler(cfg.RateLimitRPS, cfg.RateLimitBurst))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/", server.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
