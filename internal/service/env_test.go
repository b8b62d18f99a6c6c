package service_test

import (
	"encoding/json"
	"testing"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/memstore"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/pricing"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/text/currency"
)

type testEnv struct {
	store    port.Store
	carts    *service.CartService
	orders   *service.OrderService
	catalog  *service.CatalogService
	wishlist *service.WishlistService
	designs  *service.DesignService

	tshirt domain.Product
	bag    domain.Product
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mem := memstore.New()
	t.Cleanup(mem.Close)

	return newTestEnvWithStore(t, mem)
}

// newTestEnvWithStore seeds the catalog through the given store.
func newTestEnvWithStore(t *testing.T, store port.Store) *testEnv {
	t.Helper()

	logger := zaptest.NewLogger(t)

	resolver, err := pricing.NewResolver(currency.USD, pricing.DefaultFallbackPrice)
	require.NoError(t, err)

	locks := service.NewUserLocks()

	env := &testEnv{
		store:    store,
		carts:    service.NewCartService(store, resolver, locks, logger),
		orders:   service.NewOrderService(store, resolver, locks, logger),
		catalog:  service.NewCatalogService(store, logger),
		wishlist: service.NewWishlistService(store, logger),
		designs:  service.NewDesignService(store, locks, logger),
	}

	ctx := t.Context()

	env.tshirt, err = env.catalog.CreateProduct(ctx, domain.Product{
		Name:      "Custom T-Shirt",
		BasePrice: dec("19.99"),
		Category:  "apparel",
		Colors:    []string{"white", "black", "navy", "red"},
		Sizes:     []string{"XS", "S", "M", "L", "XL", "XXL"},
		IsActive:  true,
		Stock:     100,
	})
	require.NoError(t, err)

	env.bag, err = env.catalog.CreateProduct(ctx, domain.Product{
		Name:      "Canvas Bag",
		BasePrice: dec("12.99"),
		Category:  "accessories",
		Colors:    []string{"natural", "black", "navy"},
		Sizes:     []string{"Standard"},
		IsActive:  true,
		Stock:     50,
	})
	require.NoError(t, err)

	return env
}

func (e *testEnv) shirt(size, color string, qty int) service.AddLineInput {
	return service.AddLineInput{
		ProductID: lo.ToPtr(e.tshirt.ID),
		Quantity:  qty,
		Size:      size,
		Color:     color,
	}
}

// customDesign saves a design for userID and returns a cart input for it.
func (e *testEnv) customDesign(t *testing.T, userID, price string, qty int) service.AddLineInput {
	t.Helper()

	design, err := e.designs.Create(t.Context(), userID, service.DesignInput{
		Name: "Custom " + price,
		Data: json.RawMessage(`{"objects":[{"type":"text","text":"hello"}]}`),
	})
	require.NoError(t, err)

	return service.AddLineInput{
		DesignID:    lo.ToPtr(design.ID),
		Quantity:    qty,
		Size:        "M",
		Color:       "white",
		CustomPrice: lo.ToPtr(dec(price)),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func address() domain.ShippingAddress {
	return domain.ShippingAddress{
		FullName:   "Ada Lovelace",
		Street:     "12 St James's Square",
		City:       "London",
		PostalCode: "SW1Y 4JH",
		Country:    "GB",
	}
}
