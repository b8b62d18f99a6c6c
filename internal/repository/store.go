package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/port"
)

type store struct {
	dbtx db.DBTX

	carts    *cartRepository
	orders   *orderRepository
	products *productRepository
	wishlist *wishlistRepository
	designs  *designRepository
}

// NewStore returns the PostgreSQL backend. The pool is owned by the caller.
func NewStore(pool *pgxpool.Pool) port.Store {
	return newStore(pool)
}

func newStore(dbtx db.DBTX) *store {
	return &store{
		dbtx:     dbtx,
		carts:    newCartRepository(dbtx),
		orders:   newOrderRepository(dbtx),
		products: newProductRepository(dbtx),
		wishlist: newWishlistRepository(dbtx),
		designs:  newDesignRepository(dbtx),
	}
}

func (s *store) Carts() port.CartRepository {
	return s.carts
}

func (s *store) Orders() port.OrderRepository {
	return s.orders
}

func (s *store) Products() port.ProductRepository {
	return s.products
}

func (s *store) Wishlist() port.WishlistRepository {
	return s.wishlist
}

func (s *store) Designs() port.DesignRepository {
	return s.designs
}

// WithinTx joins the current transaction when the store is already bound to one.
func (s *store) WithinTx(ctx context.Context, fn func(tx port.Store) error) error {
	return withTxNoResult(ctx, s.dbtx, func(tx pgx.Tx) error {
		return fn(newStore(tx))
	})
}
