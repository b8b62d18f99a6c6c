package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/pricing"
	"go.uber.org/zap"
)

// CatalogService is the product lookup used by carts and orders plus the
// admin operations on products.
type CatalogService struct {
	store  port.Store
	logger *zap.Logger
}

func NewCatalogService(store port.Store, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		store:  store,
		logger: logger.Named("catalog"),
	}
}

func (s *CatalogService) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	product, err := s.store.Products().GetProduct(ctx, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.GetProduct: %w", err)
	}

	return product, nil
}

func (s *CatalogService) IsActive(product domain.Product) bool {
	return product.IsActive
}

// GetProductsByIDs skips unknown ids.
func (s *CatalogService) GetProductsByIDs(ctx context.Context, productIDs []uuid.UUID) ([]domain.Product, error) {
	products, err := s.store.Products().GetProducts(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("products.GetProducts: %w", err)
	}

	return products, nil
}

// Lookup loads the given products once and serves them to the pricing resolver.
func (s *CatalogService) Lookup(ctx context.Context, productIDs []uuid.UUID) (pricing.ProductLookup, error) {
	products, err := s.GetProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	return pricing.LookupFromProducts(products), nil
}

// ListActiveProducts returns the newest products first.
func (s *CatalogService) ListActiveProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.store.Products().ListActiveProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("products.ListActiveProducts: %w", err)
	}

	return products, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if err := product.Validate(); err != nil {
		return domain.Product{}, err
	}

	created, err := s.store.Products().InsertProduct(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.InsertProduct: %w", err)
	}

	s.logger.Info("product_created",
		zap.Stringer("product_id", created.ID),
		zap.String("name", created.Name),
	)

	return created, nil
}

// UpdateProduct applies the supplied fields. Cart lines and orders keep
// whatever they already hold.
func (s *CatalogService) UpdateProduct(ctx context.Context, productID uuid.UUID, upd domain.ProductUpdate) (domain.Product, error) {
	var updated domain.Product

	err := s.store.WithinTx(ctx, func(tx port.Store) error {
		existing, err := tx.Products().GetProduct(ctx, productID)
		if err != nil {
			return fmt.Errorf("products.GetProduct: %w", err)
		}

		candidate := upd.Apply(existing)
		if err := candidate.Validate(); err != nil {
			return err
		}

		updated, err = tx.Products().UpdateProduct(ctx, candidate)
		if err != nil {
			return fmt.Errorf("products.UpdateProduct: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Product{}, err
	}

	s.logger.Info("product_updated", zap.Stringer("product_id", productID))

	return updated, nil
}

// DeactivateProduct hides the product from the catalog; it is never deleted.
func (s *CatalogService) DeactivateProduct(ctx context.Context, productID uuid.UUID) (bool, error) {
	found, err := s.store.Products().DeactivateProduct(ctx, productID)
	if err != nil {
		return false, fmt.Errorf("products.DeactivateProduct: %w", err)
	}

	if found {
		s.logger.Info("product_deactivated", zap.Stringer("product_id", productID))
	}

	return found, nil
}
