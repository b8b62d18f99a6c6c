package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/samber/lo"
)

type wishlistRepository struct {
	q *db.Queries
}

func NewWishlist(pool *pgxpool.Pool) port.WishlistRepository {
	return newWishlistRepository(pool)
}

func NewWishlistWithTx(tx pgx.Tx) port.WishlistRepository {
	return newWishlistRepository(tx)
}

func newWishlistRepository(dbtx db.DBTX) *wishlistRepository {
	return &wishlistRepository{
		q: db.New(dbtx),
	}
}

func (r *wishlistRepository) ListItems(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	rows, err := r.q.ListWishlistItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("q.ListWishlistItems: %w", err)
	}

	return lo.Map(rows, func(row db.WishlistItem, _ int) domain.WishlistItem {
		return mapDBWishlistItemToDomain(row)
	}), nil
}

func (r *wishlistRepository) AddItem(ctx context.Context, userID string, productID uuid.UUID) (domain.WishlistItem, error) {
	row, err := r.q.AddWishlistItem(ctx, db.AddWishlistItemParams{
		UserID:    userID,
		ProductID: productID,
	})
	if err != nil {
		return domain.WishlistItem{}, fmt.Errorf("q.AddWishlistItem: %w", err)
	}

	return mapDBWishlistItemToDomain(row), nil
}

func (r *wishlistRepository) RemoveItem(ctx context.Context, userID string, productID uuid.UUID) (bool, error) {
	rowsAffected, err := r.q.DeleteWishlistItem(ctx, db.DeleteWishlistItemParams{
		UserID:    userID,
		ProductID: productID,
	})
	if err != nil {
		return false, fmt.Errorf("q.DeleteWishlistItem: %w", err)
	}

	return rowsAffected > 0, nil
}

func mapDBWishlistItemToDomain(row db.WishlistItem) domain.WishlistItem {
	return domain.WishlistItem{
		ID:        row.ID,
		UserID:    row.UserID,
		ProductID: row.ProductID,
		CreatedAt: row.CreatedAt,
	}
}
