package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/pricing"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AddLineInput is a request to put a product configuration or a custom design
// into a cart. ProductID is nil for a pure custom design.
type AddLineInput struct {
	ProductID   *uuid.UUID
	DesignID    *uuid.UUID
	Quantity    int
	Size        string
	Color       string
	CustomPrice *decimal.Decimal
}

func (in AddLineInput) toLine(userID string) domain.CartLine {
	return domain.CartLine{
		UserID:      userID,
		ProductID:   in.ProductID,
		DesignID:    in.DesignID,
		Quantity:    in.Quantity,
		Size:        strings.TrimSpace(in.Size),
		Color:       strings.TrimSpace(in.Color),
		CustomPrice: in.CustomPrice,
	}
}

type CartService struct {
	store    port.Store
	resolver *pricing.Resolver
	locks    *UserLocks
	logger   *zap.Logger
}

func NewCartService(store port.Store, resolver *pricing.Resolver, locks *UserLocks, logger *zap.Logger) *CartService {
	return &CartService{
		store:    store,
		resolver: resolver,
		locks:    locks,
		logger:   logger.Named("cart"),
	}
}

// AddLine merges into the user's existing line for the same product, size and
// color, keeping that line's custom price. Lines without a product never merge.
// A design must belong to the user.
func (s *CartService) AddLine(ctx context.Context, userID string, in AddLineInput) (domain.CartLine, error) {
	line := in.toLine(userID)

	if err := line.Validate(); err != nil {
		return domain.CartLine{}, err
	}

	if line.ProductID != nil {
		product, err := s.store.Products().GetProduct(ctx, *line.ProductID)
		if err != nil {
			return domain.CartLine{}, fmt.Errorf("products.GetProduct: %w", err)
		}
		if !product.IsActive {
			return domain.CartLine{}, domain.NewValidationError("productId", "is not available")
		}
		if err := line.ValidateAgainst(product); err != nil {
			return domain.CartLine{}, err
		}
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	var (
		result domain.CartLine
		merged bool
	)

	err := retryOnDuplicate(func() error {
		return s.store.WithinTx(ctx, func(tx port.Store) error {
			if line.DesignID != nil {
				if _, err := ownedDesign(ctx, tx.Designs(), userID, *line.DesignID); err != nil {
					return err
				}
			}

			var err error
			result, merged, err = addOrMerge(ctx, tx.Carts(), line)
			return err
		})
	})
	if err != nil {
		return domain.CartLine{}, err
	}

	s.logger.Info("cart_line_added",
		zap.String("user_id", userID),
		zap.Stringer("line_id", result.ID),
		zap.Int("quantity", result.Quantity),
		zap.Bool("merged", merged),
	)

	return result, nil
}

func addOrMerge(ctx context.Context, carts port.CartRepository, line domain.CartLine) (domain.CartLine, bool, error) {
	key, ok := line.MergeKey()
	if ok {
		existing, found, err := carts.FindLineByKey(ctx, key)
		if err != nil {
			return domain.CartLine{}, false, fmt.Errorf("carts.FindLineByKey: %w", err)
		}

		if found {
			existing, err = existing.AddQuantity(line.Quantity)
			if err != nil {
				return domain.CartLine{}, false, err
			}

			updated, err := carts.UpdateLine(ctx, existing)
			if err != nil {
				return domain.CartLine{}, false, fmt.Errorf("carts.UpdateLine: %w", err)
			}
			return updated, true, nil
		}
	}

	inserted, err := carts.InsertLine(ctx, line)
	if err != nil {
		return domain.CartLine{}, false, fmt.Errorf("carts.InsertLine: %w", err)
	}

	return inserted, false, nil
}

// UpdateLine applies the supplied fields to a line owned by userID. When the
// new size or color match another line of the same product the two lines are
// folded into that other line.
func (s *CartService) UpdateLine(ctx context.Context, userID string, lineID uuid.UUID, upd domain.CartLineUpdate) (domain.CartLine, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	var (
		result    domain.CartLine
		foldedIDs []uuid.UUID
	)

	err := retryOnDuplicate(func() error {
		return s.store.WithinTx(ctx, func(tx port.Store) error {
			existing, err := ownedLine(ctx, tx.Carts(), userID, lineID)
			if err != nil {
				return err
			}

			if upd.IsEmpty() {
				result = existing
				return nil
			}

			updated := upd.Apply(existing)
			updated.Size = strings.TrimSpace(updated.Size)
			updated.Color = strings.TrimSpace(updated.Color)

			if err := updated.Validate(); err != nil {
				return err
			}

			if updated.ProductID != nil && (updated.Size != existing.Size || updated.Color != existing.Color) {
				product, err := tx.Products().GetProduct(ctx, *updated.ProductID)
				if err != nil {
					return fmt.Errorf("products.GetProduct: %w", err)
				}
				if err := updated.ValidateAgainst(product); err != nil {
					return err
				}

				result, foldedIDs, err = foldInto(ctx, tx.Carts(), existing, updated, upd.CustomPrice != nil)
				return err
			}

			result, err = tx.Carts().UpdateLine(ctx, updated)
			if err != nil {
				return fmt.Errorf("carts.UpdateLine: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return domain.CartLine{}, err
	}

	s.logger.Info("cart_line_updated",
		zap.String("user_id", userID),
		zap.Stringer("line_id", result.ID),
		zap.Int("quantity", result.Quantity),
		zap.Stringers("folded_line_ids", foldedIDs),
	)

	return result, nil
}

// foldInto moves updated onto the line already holding its merge key, if any.
// The target keeps its own custom price, so an update that also sets a price
// is refused rather than losing it.
func foldInto(ctx context.Context, carts port.CartRepository, existing, updated domain.CartLine, priceChanged bool) (domain.CartLine, []uuid.UUID, error) {
	key, _ := updated.MergeKey()

	target, found, err := carts.FindLineByKey(ctx, key)
	if err != nil {
		return domain.CartLine{}, nil, fmt.Errorf("carts.FindLineByKey: %w", err)
	}

	if !found || target.ID == existing.ID {
		result, err := carts.UpdateLine(ctx, updated)
		if err != nil {
			return domain.CartLine{}, nil, fmt.Errorf("carts.UpdateLine: %w", err)
		}
		return result, nil, nil
	}

	if priceChanged {
		return domain.CartLine{}, nil, domain.NewValidationError("customPrice", "cannot change while merging into line "+target.ID.String())
	}

	target, err = target.AddQuantity(updated.Quantity)
	if err != nil {
		return domain.CartLine{}, nil, err
	}

	if _, err := carts.DeleteLine(ctx, existing.UserID, existing.ID); err != nil {
		return domain.CartLine{}, nil, fmt.Errorf("carts.DeleteLine: %w", err)
	}

	result, err := carts.UpdateLine(ctx, target)
	if err != nil {
		return domain.CartLine{}, nil, fmt.Errorf("carts.UpdateLine: %w", err)
	}

	return result, []uuid.UUID{existing.ID}, nil
}

// RemoveLine reports false when the user has no such line.
func (s *CartService) RemoveLine(ctx context.Context, userID string, lineID uuid.UUID) (bool, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	removed, err := s.store.Carts().DeleteLine(ctx, userID, lineID)
	if err != nil {
		return false, fmt.Errorf("carts.DeleteLine: %w", err)
	}

	if removed {
		s.logger.Info("cart_line_removed",
			zap.String("user_id", userID),
			zap.Stringer("line_id", lineID),
		)
	}

	return removed, nil
}

func (s *CartService) ListLines(ctx context.Context, userID string) ([]domain.CartLine, error) {
	lines, err := s.store.Carts().ListLines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("carts.ListLines: %w", err)
	}

	return lines, nil
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	removed, err := s.store.Carts().ClearCart(ctx, userID)
	if err != nil {
		return fmt.Errorf("carts.ClearCart: %w", err)
	}

	s.logger.Info("cart_cleared",
		zap.String("user_id", userID),
		zap.Int64("removed", removed),
	)

	return nil
}

// Summary prices the user's cart against the current catalog.
func (s *CartService) Summary(ctx context.Context, userID string) (pricing.Summary, error) {
	lines, err := s.ListLines(ctx, userID)
	if err != nil {
		return pricing.Summary{}, err
	}

	lookup, err := productLookup(ctx, s.store.Products(), lines)
	if err != nil {
		return pricing.Summary{}, err
	}

	return s.resolver.Price(lines, lookup), nil
}

func ownedLine(ctx context.Context, carts port.CartRepository, userID string, lineID uuid.UUID) (domain.CartLine, error) {
	line, err := carts.GetLine(ctx, lineID)
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("carts.GetLine: %w", err)
	}

	// other users' lines are reported as absent
	if line.UserID != userID {
		return domain.CartLine{}, fmt.Errorf("cart line[%s]: %w", lineID, domain.ErrNotFound)
	}

	return line, nil
}

func productLookup(ctx context.Context, products port.ProductRepository, lines []domain.CartLine) (pricing.ProductLookup, error) {
	ids := lo.FilterMap(lines, func(l domain.CartLine, _ int) (uuid.UUID, bool) {
		if l.ProductID == nil {
			return uuid.Nil, false
		}
		return *l.ProductID, true
	})

	found, err := products.GetProducts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("products.GetProducts: %w", err)
	}

	return pricing.LookupFromProducts(found), nil
}

// retryOnDuplicate runs fn a second time when another writer inserted the
// same merge key between our lookup and insert.
func retryOnDuplicate(fn func() error) error {
	err := fn()
	if errors.Is(err, domain.ErrDuplicateLine) {
		err = fn()
	}
	return err
}
