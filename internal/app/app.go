// Package app selects the storage backend from configuration and wires the
// services on top of it.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/memstore"
	"github.com/nikolayk812/storefront/internal/migrate"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/pricing"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/nikolayk812/storefront/internal/seed"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/nikolayk812/storefront/internal/session"
	"go.uber.org/zap"
)

type App struct {
	Store    port.Store
	Resolver *pricing.Resolver
	Sessions session.Store

	Carts    *service.CartService
	Orders   *service.OrderService
	Catalog  *service.CatalogService
	Wishlist *service.WishlistService
	Designs  *service.DesignService

	logger    *zap.Logger
	close     func()
	closeOnce sync.Once
}

// Open connects the configured backend. The caller must Close the App.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	resolver, err := pricing.NewResolver(cfg.Currency, cfg.FallbackUnitPrice)
	if err != nil {
		return nil, fmt.Errorf("pricing.NewResolver: %w", err)
	}

	a := &App{
		Resolver: resolver,
		logger:   logger,
	}

	switch cfg.Backend {
	case config.BackendPostgres:
		if err := a.openPostgres(ctx, cfg); err != nil {
			return nil, err
		}
	case config.BackendMemory:
		if err := a.openMemory(ctx); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	locks := service.NewUserLocks()

	a.Carts = service.NewCartService(a.Store, resolver, locks, logger)
	a.Orders = service.NewOrderService(a.Store, resolver, locks, logger)
	a.Catalog = service.NewCatalogService(a.Store, logger)
	a.Wishlist = service.NewWishlistService(a.Store, logger)
	a.Designs = service.NewDesignService(a.Store, locks, logger)

	logger.Info("app_opened", zap.String("backend", string(cfg.Backend)))

	return a, nil
}

func (a *App) openPostgres(ctx context.Context, cfg config.Config) error {
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		return fmt.Errorf("db.Connect: %w", err)
	}

	if cfg.MigrateOnStart {
		if err := migrate.Apply(ctx, pool); err != nil {
			pool.Close()
			return fmt.Errorf("migrate.Apply: %w", err)
		}
	}

	a.Store = repository.NewStore(pool)
	a.Sessions = session.NewPostgresStore(pool)
	a.close = pool.Close

	return nil
}

// openMemory starts with the sample catalog, like an empty dev database after seeding.
func (a *App) openMemory(ctx context.Context) error {
	store := memstore.New()

	if _, err := seed.Apply(ctx, store, a.logger); err != nil {
		store.Close()
		return fmt.Errorf("seed.Apply: %w", err)
	}

	a.Store = store
	a.Sessions = session.NewMemoryStore()
	a.close = store.Close

	return nil
}

// Close releases the backend. It is safe to call more than once.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		if a.close != nil {
			a.close()
		}
		a.logger.Info("app_closed")
	})
}
