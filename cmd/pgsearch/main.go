package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/pgsearch/internal/config"
	"github.com/kailas-cloud/pgsearch/internal/db/postgres"
	logpkg "github.com/kailas-cloud/pgsearch/internal/logger"
	"github.com/kailas-cloud/pgsearch/internal/metrics"
	searchrepo "github.com/kailas-cloud/pgsearch/internal/repository/search"
	chiTransport "github.com/kailas-cloud/pgsearch/internal/transport/chi"
	healthuc "github.com/kailas-cloud/pgsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/pgsearch/internal/usecase/search"
	"github.com/kailas-cloud/pgsearch/internal/version"
)

func main() {
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

	logger.Info("Starting pgsearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Int("scopes", len(cfg.Scopes)),
	)

	ctx := context.Background()
	pool, err := postgres.Connect(ctx, cfg.Database.DSN,
		time.Duration(cfg.Database.ReadinessTimeout)*time.Second)
	if err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	defer pool.Close()
	logger.Info("Connected to database")

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	registry, err := chiTransport.RegistryFromConfig(cfg.Scopes)
	if err != nil {
		logger.Fatal("Invalid scope configuration", zap.Error(err))
	}

	dialect := postgres.Dialect{}
	searchSvc := searchuc.New(dialect)
	repo := searchrepo.New(pool, logger)
	healthSvc := healthuc.New(repo)

	server := chiTransport.NewServer(
		registry, searchSvc, dialect, repo, healthSvc, logger,
		chiTransport.Limits{
			DefaultPageSize: cfg.Search.DefaultPageSize,
			MaxPageSize:     cfg.Search.MaxPageSize,
		},
	)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Router(cfg.Auth.APIKeys),
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
