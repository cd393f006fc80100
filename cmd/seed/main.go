package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"skincare-storefront/internal/config"
	"skincare-storefront/internal/db"
	"skincare-storefront/internal/logging"
	"skincare-storefront/internal/repository/kv"
	"skincare-storefront/internal/seed"

	"go.uber.org/zap"
)

func main() {
	var sessionID string
	flag.StringVar(&sessionID, "session", "", "Session id (uuid) to seed; generated when empty")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.DBConnString == "" {
		logger.Fatal("DB_DSN is required to seed a persistent cart")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, logger)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	id, state, err := seed.Apply(ctx, kv.NewPostgres(pool, logger), sessionID, logger)
	if err != nil {
		logger.Fatal("seed apply", zap.Error(err))
	}

	fmt.Printf("Seeded cart with %d items (total %s) for session %s\n", state.ItemCount, state.Total, id)
}
