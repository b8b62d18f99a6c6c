package memstore

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type wishlistRepository struct {
	v *view
}

func (r *wishlistRepository) ListItems(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	var items []domain.WishlistItem

	err := r.v.read(func(st *state) error {
		for _, item := range st.wishlist {
			if item.UserID == userID {
				items = append(items, item)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(items, func(a, b domain.WishlistItem) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return items, nil
}

func (r *wishlistRepository) AddItem(ctx context.Context, userID string, productID uuid.UUID) (domain.WishlistItem, error) {
	var added domain.WishlistItem

	err := r.v.write(func(st *state) error {
		if existing, ok := findWishlistItem(st, userID, productID); ok {
			added = existing
			return nil
		}

		added = domain.WishlistItem{
			ID:        uuid.New(),
			UserID:    userID,
			ProductID: productID,
			CreatedAt: r.v.now(st),
		}
		st.wishlist[added.ID] = added
		return nil
	})

	return added, err
}

func (r *wishlistRepository) RemoveItem(ctx context.Context, userID string, productID uuid.UUID) (bool, error) {
	var found bool

	err := r.v.write(func(st *state) error {
		item, ok := findWishlistItem(st, userID, productID)
		if !ok {
			return nil
		}

		delete(st.wishlist, item.ID)
		found = true
		return nil
	})

	return found, err
}

func findWishlistItem(st *state, userID string, productID uuid.UUID) (domain.WishlistItem, bool) {
	for _, item := range st.wishlist {
		if item.UserID == userID && item.ProductID == productID {
			return item, true
		}
	}
	return domain.WishlistItem{}, false
}
