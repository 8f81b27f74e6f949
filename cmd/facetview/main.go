package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kailas-cloud/facetview"
	"github.com/kailas-cloud/facetview/internal/config"
	"github.com/kailas-cloud/facetview/internal/db"
	dbRedis "github.com/kailas-cloud/facetview/internal/db/redis"
	dbValkey "github.com/kailas-cloud/facetview/internal/db/valkey"
	logpkg "github.com/kailas-cloud/facetview/internal/logger"
	"github.com/kailas-cloud/facetview/internal/metrics"
	"github.com/kailas-cloud/facetview/internal/repository/prefs"
	chiTransport "github.com/kailas-cloud/facetview/internal/transport/chi"
	settingsuc "github.com/kailas-cloud/facetview/internal/usecase/settings"
	"github.com/kailas-cloud/facetview/internal/version"
)

const prefsTTL = 30 * 24 * time.Hour

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting facetview server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("backend_url", cfg.Server.URL),
		zap.String("backend_index", cfg.Server.Index),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// Preferences store by driver
	var store db.Store
	switch cfg.Database.Driver {
	case "valkey":
		store, err = dbValkey.NewStore(dbValkey.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
	case "redis":
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
	default:
		logger.Fatal("Unknown database driver", zap.String("driver", cfg.Database.Driver))
	}
	if err != nil {
		logger.Fatal("Failed to create preferences store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Preferences database not ready", zap.Error(err))
	}
	logger.Info("Connected to preferences database")

	// Register UI metrics explicitly (no init())
	metrics.RegisterUIMetrics()

	ui, err := facetview.New(
		facetview.WithConfig(cfg),
		facetview.WithLogger(logger),
	)
	if err != nil {
		logger.Fatal("Failed to wire UI", zap.Error(err))
	}

	prefsStore := prefs.New(store, cfg.Database.KeyPrefix, prefsTTL)
	settings := settingsuc.New(prefsStore, &cfg, logger)

	server := chiTransport.NewServer(ui, settings, logger).
		WithHealthCheck(func(r *http.Request) error {
			return store.Ping(r.Context())
		})

	r := chi.NewRouter()
	r.Use(chiTransport.Recoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEvent(logger))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
