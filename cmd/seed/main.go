package main

import (
	"context"
	"log"

	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/nikolayk812/storefront/internal/seed"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("zap.NewProduction: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger = logger.Named("seed")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config_load_failed", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("db_connect_failed", zap.Error(err))
	}
	defer pool.Close()

	inserted, err := seed.Apply(ctx, repository.NewStore(pool), logger)
	if err != nil {
		logger.Fatal("seed_failed", zap.Error(err))
	}

	logger.Info("seed_applied", zap.Int("inserted", inserted))
}
