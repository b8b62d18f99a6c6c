package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type ProductRepository interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error)
	// GetProducts silently skips unknown ids.
	GetProducts(ctx context.Context, productIDs []uuid.UUID) ([]domain.Product, error)
	ListActiveProducts(ctx context.Context) ([]domain.Product, error)

	InsertProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	DeactivateProduct(ctx context.Context, productID uuid.UUID) (bool, error)
}
