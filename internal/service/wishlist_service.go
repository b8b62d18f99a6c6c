package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"go.uber.org/zap"
)

type WishlistService struct {
	store  port.Store
	logger *zap.Logger
}

func NewWishlistService(store port.Store, logger *zap.Logger) *WishlistService {
	return &WishlistService{
		store:  store,
		logger: logger.Named("wishlist"),
	}
}

// Add is idempotent per user and product.
func (s *WishlistService) Add(ctx context.Context, userID string, productID uuid.UUID) (domain.WishlistItem, error) {
	if userID == "" {
		return domain.WishlistItem{}, domain.NewValidationError("userId", "is required")
	}

	if _, err := s.store.Products().GetProduct(ctx, productID); err != nil {
		return domain.WishlistItem{}, fmt.Errorf("products.GetProduct: %w", err)
	}

	item, err := s.store.Wishlist().AddItem(ctx, userID, productID)
	if err != nil {
		return domain.WishlistItem{}, fmt.Errorf("wishlist.AddItem: %w", err)
	}

	s.logger.Debug("wishlist_item_added",
		zap.String("user_id", userID),
		zap.Stringer("product_id", productID),
	)

	return item, nil
}

func (s *WishlistService) Remove(ctx context.Context, userID string, productID uuid.UUID) (bool, error) {
	removed, err := s.store.Wishlist().RemoveItem(ctx, userID, productID)
	if err != nil {
		return false, fmt.Errorf("wishlist.RemoveItem: %w", err)
	}

	return removed, nil
}

func (s *WishlistService) List(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	items, err := s.store.Wishlist().ListItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("wishlist.ListItems: %w", err)
	}

	return items, nil
}
