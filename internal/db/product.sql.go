package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const productColumns = `id, name, description, base_price, category, colors, sizes, image_url, is_active, stock, created_at`

func scanProduct(row interface{ Scan(...interface{}) error }) (Product, error) {
	var i Product
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Description,
		&i.BasePrice,
		&i.Category,
		&i.Colors,
		&i.Sizes,
		&i.ImageUrl,
		&i.IsActive,
		&i.Stock,
		&i.CreatedAt,
	)
	return i, err
}

func collectProducts(ctx context.Context, q *Queries, query string, args ...interface{}) ([]Product, error) {
	rows, err := q.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Product
	for rows.Next() {
		i, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getProduct = `-- name: GetProduct :one
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`

func (q *Queries) GetProduct(ctx context.Context, id uuid.UUID) (Product, error) {
	row := q.db.QueryRow(ctx, getProduct, id)
	return scanProduct(row)
}

const getProducts = `-- name: GetProducts :many
SELECT ` + productColumns + `
FROM products
WHERE id = ANY($1::uuid[])
`

func (q *Queries) GetProducts(ctx context.Context, ids []uuid.UUID) ([]Product, error) {
	return collectProducts(ctx, q, getProducts, ids)
}

const listActiveProducts = `-- name: ListActiveProducts :many
SELECT ` + productColumns + `
FROM products
WHERE is_active
ORDER BY created_at DESC, id
`

func (q *Queries) ListActiveProducts(ctx context.Context) ([]Product, error) {
	return collectProducts(ctx, q, listActiveProducts)
}

const insertProduct = `-- name: InsertProduct :one
INSERT INTO products (name, description, base_price, category, colors, sizes, image_url, is_active, stock)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + productColumns + `
`

type InsertProductParams struct {
	Name        string
	Description string
	BasePrice   decimal.Decimal
	Category    string
	Colors      []string
	Sizes       []string
	ImageUrl    string
	IsActive    bool
	Stock       int32
}

func (q *Queries) InsertProduct(ctx context.Context, arg InsertProductParams) (Product, error) {
	row := q.db.QueryRow(ctx, insertProduct,
		arg.Name,
		arg.Description,
		arg.BasePrice,
		arg.Category,
		arg.Colors,
		arg.Sizes,
		arg.ImageUrl,
		arg.IsActive,
		arg.Stock,
	)
	return scanProduct(row)
}

const updateProduct = `-- name: UpdateProduct :one
UPDATE products
SET name = $2, description = $3, base_price = $4, category = $5, colors = $6,
    sizes = $7, image_url = $8, is_active = $9, stock = $10
WHERE id = $1
RETURNING ` + productColumns + `
`

type UpdateProductParams struct {
	ID          uuid.UUID
	Name        string
	Description string
	BasePrice   decimal.Decimal
	Category    string
	Colors      []string
	Sizes       []string
	ImageUrl    string
	IsActive    bool
	Stock       int32
}

func (q *Queries) UpdateProduct(ctx context.Context, arg UpdateProductParams) (Product, error) {
	row := q.db.QueryRow(ctx, updateProduct,
		arg.ID,
		arg.Name,
		arg.Description,
		arg.BasePrice,
		arg.Category,
		arg.Colors,
		arg.Sizes,
		arg.ImageUrl,
		arg.IsActive,
		arg.Stock,
	)
	return scanProduct(row)
}

const deactivateProduct = `-- name: DeactivateProduct :execrows
UPDATE products
SET is_active = FALSE
WHERE id = $1
`

func (q *Queries) DeactivateProduct(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := q.db.Exec(ctx, deactivateProduct, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
