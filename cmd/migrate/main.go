package main

import (
	"context"
	"log"

	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/migrate"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("zap.NewProduction: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger = logger.Named("migrate")

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

	if err := migrate.Apply(ctx, pool); err != nil {
		logger.Fatal("migrations_failed", zap.Error(err))
	}

	logger.Info("migrations_applied")
}
