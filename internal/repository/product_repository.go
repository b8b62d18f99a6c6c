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

type productRepository struct {
	q *db.Queries
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return newProductRepository(pool)
}

func NewProductWithTx(tx pgx.Tx) port.ProductRepository {
	return newProductRepository(tx)
}

func newProductRepository(dbtx db.DBTX) *productRepository {
	return &productRepository{
		q: db.New(dbtx),
	}
}

func (r *productRepository) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	row, err := r.q.GetProduct(ctx, productID)
	if err != nil {
		return domain.Product{}, mapNoRows("q.GetProduct", err)
	}

	return mapDBProductToDomain(row), nil
}

func (r *productRepository) GetProducts(ctx context.Context, productIDs []uuid.UUID) ([]domain.Product, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	rows, err := r.q.GetProducts(ctx, lo.Uniq(productIDs))
	if err != nil {
		return nil, fmt.Errorf("q.GetProducts: %w", err)
	}

	return lo.Map(rows, func(row db.Product, _ int) domain.Product {
		return mapDBProductToDomain(row)
	}), nil
}

func (r *productRepository) ListActiveProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.q.ListActiveProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListActiveProducts: %w", err)
	}

	return lo.Map(rows, func(row db.Product, _ int) domain.Product {
		return mapDBProductToDomain(row)
	}), nil
}

func (r *productRepository) InsertProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if err := product.Validate(); err != nil {
		return domain.Product{}, fmt.Errorf("product.Validate: %w", err)
	}

	row, err := r.q.InsertProduct(ctx, db.InsertProductParams{
		Name:        product.Name,
		Description: product.Description,
		BasePrice:   product.BasePrice,
		Category:    product.Category,
		Colors:      product.Colors,
		Sizes:       product.Sizes,
		ImageUrl:    product.ImageURL,
		IsActive:    product.IsActive,
		Stock:       int32(product.Stock),
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("q.InsertProduct: %w", err)
	}

	return mapDBProductToDomain(row), nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.ID == uuid.Nil {
		return domain.Product{}, fmt.Errorf("productID is empty")
	}
	if err := product.Validate(); err != nil {
		return domain.Product{}, fmt.Errorf("product.Validate: %w", err)
	}

	row, err := r.q.UpdateProduct(ctx, db.UpdateProductParams{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		BasePrice:   product.BasePrice,
		Category:    product.Category,
		Colors:      product.Colors,
		Sizes:       product.Sizes,
		ImageUrl:    product.ImageURL,
		IsActive:    product.IsActive,
		Stock:       int32(product.Stock),
	})
	if err != nil {
		return domain.Product{}, mapNoRows("q.UpdateProduct", err)
	}

	return mapDBProductToDomain(row), nil
}

func (r *productRepository) DeactivateProduct(ctx context.Context, productID uuid.UUID) (bool, error) {
	rowsAffected, err := r.q.DeactivateProduct(ctx, productID)
	if err != nil {
		return false, fmt.Errorf("q.DeactivateProduct: %w", err)
	}

	return rowsAffected > 0, nil
}

func mapDBProductToDomain(row db.Product) domain.Product {
	return domain.Product{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		BasePrice:   row.BasePrice,
		Category:    row.Category,
		Colors:      row.Colors,
		Sizes:       row.Sizes,
		ImageURL:    row.ImageUrl,
		IsActive:    row.IsActive,
		Stock:       int(row.Stock),
		CreatedAt:   row.CreatedAt,
	}
}
