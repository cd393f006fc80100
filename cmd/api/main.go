package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"skincare-storefront/internal/apiclient"
	"skincare-storefront/internal/config"
	"skincare-storefront/internal/db"
	"skincare-storefront/internal/httpserver"
	"skincare-storefront/internal/importer"
	"skincare-storefront/internal/logging"
	"skincare-storefront/internal/migrate"
	"skincare-storefront/internal/repository/kv"
	"skincare-storefront/internal/service/catalog"
	"skincare-storefront/internal/session"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.RequireAPI(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := httpserver.Deps{
		CORSOrigins: cfg.CORSOrigins,
		Environment: cfg.Environment,
		SessionTTL:  cfg.SessionTTL,
	}

	store := kv.NewMemory()
	if cfg.DBConnString != "" {
		pool, err := db.Connect(ctx, cfg.DBConnString, logger)
		if err != nil {
			logger.Fatal("connect to db", zap.Error(err))
		}
		defer pool.Close()
		if err := migrate.Apply(ctx, pool, logger); err != nil {
			logger.Fatal("apply migrations", zap.Error(err))
		}
		store = kv.NewPostgres(pool, logger)
		deps.DB = pool
	} else {
		logger.Warn("DB_DSN not set, carts are kept in memory")
	}

	client := apiclient.NewClient(cfg.APIBaseURL, cfg.APITimeout, logger)
	deps.API = client
	var source catalog.Source = client
	if cfg.CatalogCSV != "" {
		source = importer.FileSource{Path: cfg.CatalogCSV, Logger: logger}
	}

	deps.Sessions = session.NewManager(store, source, client, session.Options{
		TTL:           cfg.SessionTTL,
		RedirectAfter: cfg.RedirectAfter,
		Logger:        logger,
	})
	// A failed warm-up is not fatal; sessions can refresh the catalog later.
	_ = deps.Sessions.Warm(ctx)
	go deps.Sessions.RunSweeper(ctx, time.Minute)

	srv := httpserver.New(cfg.HTTPAddr, logger, deps)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}
