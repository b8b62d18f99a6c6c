package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type WishlistRepository interface {
	ListItems(ctx context.Context, userID string) ([]domain.WishlistItem, error)
	// AddItem returns the existing item when the pair is already present.
	AddItem(ctx context.Context, userID string, productID uuid.UUID) (domain.WishlistItem, error)
	RemoveItem(ctx context.Context, userID string, productID uuid.UUID) (bool, error)
}
