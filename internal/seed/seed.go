package seed

import (
	"context"
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Products is the sample catalog.
func Products() []domain.Product {
	return []domain.Product{
		{
			Name:        "Custom T-Shirt",
			Description: "High-quality cotton t-shirt perfect for custom designs",
			BasePrice:   decimal.RequireFromString("19.99"),
			Category:    "apparel",
			Colors:      []string{"white", "black", "navy", "red"},
			Sizes:       []string{"XS", "S", "M", "L", "XL", "XXL"},
			IsActive:    true,
			Stock:       100,
		},
		{
			Name:        "Canvas Bag",
			Description: "Eco-friendly canvas tote bag for everyday use",
			BasePrice:   decimal.RequireFromString("12.99"),
			Category:    "accessories",
			Colors:      []string{"natural", "black", "navy"},
			Sizes:       []string{"Standard"},
			IsActive:    true,
			Stock:       50,
		},
	}
}

// Apply inserts the sample catalog products whose names are not yet active
// in the store. It is safe to run repeatedly.
func Apply(ctx context.Context, store port.Store, logger *zap.Logger) (int, error) {
	var inserted int

	err := store.WithinTx(ctx, func(tx port.Store) error {
		existing, err := tx.Products().ListActiveProducts(ctx)
		if err != nil {
			return fmt.Errorf("products.ListActiveProducts: %w", err)
		}

		names := lo.SliceToMap(existing, func(p domain.Product) (string, struct{}) {
			return p.Name, struct{}{}
		})

		for _, p := range Products() {
			if _, ok := names[p.Name]; ok {
				continue
			}

			created, err := tx.Products().InsertProduct(ctx, p)
			if err != nil {
				return fmt.Errorf("products.InsertProduct %s: %w", p.Name, err)
			}

			logger.Info("product_seeded",
				zap.String("product_id", created.ID.String()),
				zap.String("name", created.Name))
			inserted++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}
