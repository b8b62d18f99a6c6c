package repository_test

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/migrate"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/text/currency"
)

const postgresImage = "postgres:17-alpine"

func startPostgres(ctx context.Context) (testcontainers.Container, string, error) {
	container, err := postgres.Run(ctx,
		postgresImage,
		postgres.WithDatabase("storefront"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, "", fmt.Errorf("container.ConnectionString: %w", err)
	}

	return container, connStr, nil
}

// startMigratedPostgres starts a container, connects a pool and applies the schema.
func startMigratedPostgres(ctx context.Context) (testcontainers.Container, *pgxpool.Pool, error) {
	container, connStr, err := startPostgres(ctx)
	if err != nil {
		return container, nil, err
	}

	pool, err := db.Connect(ctx, connStr)
	if err != nil {
		return container, nil, fmt.Errorf("db.Connect: %w", err)
	}

	if err := migrate.Apply(ctx, pool); err != nil {
		return container, pool, fmt.Errorf("migrate.Apply: %w", err)
	}

	return container, pool, nil
}

func truncateAll(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, "TRUNCATE TABLE order_lines, orders, cart_lines, wishlist_items, designs, products, sessions CASCADE")
	return err
}

func randomProduct() domain.Product {
	return domain.Product{
		Name:        gofakeit.ProductName(),
		Description: gofakeit.ProductDescription(),
		BasePrice:   decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(domain.PriceScale),
		Category:    gofakeit.ProductCategory(),
		Colors:      []string{"white", "black", "navy"},
		Sizes:       []string{"S", "M", "L"},
		ImageURL:    gofakeit.URL(),
		IsActive:    true,
		Stock:       gofakeit.Number(0, 100),
	}
}

func insertProduct(ctx context.Context, pool *pgxpool.Pool) (domain.Product, error) {
	return repository.NewProduct(pool).InsertProduct(ctx, randomProduct())
}

func randomPrice() decimal.Decimal {
	return decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(domain.PriceScale)
}



var (
	decimalComparer = cmp.Comparer(func(x, y decimal.Decimal) bool {
		return x.Equal(y)
	})

	currencyComparer = cmp.Comparer(func(x, y currency.Unit) bool {
		return x.String() == y.String()
	})
)
