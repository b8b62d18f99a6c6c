package memstore_test

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/memstore"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/text/currency"
)

type storeSuite struct {
	suite.Suite

	store   *memstore.Store
	product domain.Product
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(storeSuite))
}

// before each test
func (suite *storeSuite) SetupTest() {
	suite.store = memstore.New()

	var err error
	suite.product, err = suite.store.Products().InsertProduct(suite.T().Context(), randomProduct())
	suite.Require().NoError(err)
}

func (suite *storeSuite) TearDownTest() {
	suite.store.Close()
}

func (suite *storeSuite) TestInsertLine() {
	userID := gofakeit.UUID()

	tests := []struct {
		name      string
		line      domain.CartLine
		wantError error
	}{
		{
			name: "catalog line: ok",
			line: suite.line(userID, "M", "black"),
		},
		{
			name: "same merge key: duplicate",
			line:      suite.line(userID, "M", "black"),
			wantError: domain.ErrDuplicateLine,
		},
		{
			name: "same key for another user: ok",
			line: suite.line(gofakeit.UUID(), "M", "black"),
		},
		{
			name: "custom line: ok",
			line: customLine(userID),
		},
		{
			name: "same custom configuration again: ok",
			line: customLine(userID),
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			inserted, err := suite.store.Carts().InsertLine(ctx, tt.line)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			actual, err := suite.store.Carts().GetLine(ctx, inserted.ID)
			require.NoError(t, err)

			diff := cmp.Diff(tt.line, actual,
				cmpopts.IgnoreFields(domain.CartLine{}, "ID", "CreatedAt"),
				cmp.Comparer(func(x, y decimal.Decimal) bool { return x.Equal(y) }),
			)
			assert.Empty(t, diff)
		})
	}

	lines, err := suite.store.Carts().ListLines(suite.T().Context(), userID)
	suite.Require().NoError(err)
	suite.Len(lines, 3)
}

func (suite *storeSuite) TestReturnedLinesAreCopies() {
	t := suite.T()
	ctx := t.Context()

	line := suite.line(gofakeit.UUID(), "S", "white")
	line.CustomPrice = lo.ToPtr(decimal.RequireFromString("10.00"))

	inserted, err := suite.store.Carts().InsertLine(ctx, line)
	require.NoError(t, err)

	*inserted.CustomPrice = decimal.RequireFromString("99.99")
	*line.CustomPrice = decimal.RequireFromString("88.88")

	actual, err := suite.store.Carts().GetLine(ctx, inserted.ID)
	require.NoError(t, err)
	assert.Equal(t, "10", actual.CustomPrice.String())
}

func (suite *storeSuite) TestUpdateLine() {
	t := suite.T()
	ctx := t.Context()

	userID := gofakeit.UUID()

	_, err := suite.store.Carts().InsertLine(ctx, suite.line(userID, "S", "white"))
	require.NoError(t, err)
	inserted, err := suite.store.Carts().InsertLine(ctx, suite.line(userID, "M", "white"))
	require.NoError(t, err)

	inserted.Quantity = 9
	updated, err := suite.store.Carts().UpdateLine(ctx, inserted)
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Quantity)
	assert.Equal(t, inserted.CreatedAt, updated.CreatedAt)

	inserted.Size = "S"
	_, err = suite.store.Carts().UpdateLine(ctx, inserted)
	require.ErrorIs(t, err, domain.ErrDuplicateLine)

	inserted.ID = uuid.New()
	_, err = suite.store.Carts().UpdateLine(ctx, inserted)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func (suite *storeSuite) TestDeleteAndClear() {
	t := suite.T()
	ctx := t.Context()

	userID := gofakeit.UUID()

	first, err := suite.store.Carts().InsertLine(ctx, suite.line(userID, "S", "white"))
	require.NoError(t, err)
	_, err = suite.store.Carts().InsertLine(ctx, suite.line(userID, "M", "white"))
	require.NoError(t, err)

	found, err := suite.store.Carts().DeleteLine(ctx, gofakeit.UUID(), first.ID)
	require.NoError(t, err)
	assert.False(t, found)

	found, err = suite.store.Carts().DeleteLine(ctx, userID, first.ID)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = suite.store.Carts().DeleteLine(ctx, userID, first.ID)
	require.NoError(t, err)
	assert.False(t, found)

	removed, err := suite.store.Carts().ClearCart(ctx, userID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	removed, err = suite.store.Carts().ClearCart(ctx, userID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, removed)
}

func (suite *storeSuite) TestWithinTx() {
	errBoom := errors.New("boom")

	tests := []struct {
		name      string
		failWith  error
		wantLines int
	}{
		{
			name:      "commit: ok",
			wantLines: 1,
		},
		{
			name:      "rollback on error: nothing kept",
			failWith:  errBoom,
			wantLines: 0,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			userID := gofakeit.UUID()

			err := suite.store.WithinTx(ctx, func(tx port.Store) error {
				if _, err := tx.Carts().InsertLine(ctx, suite.line(userID, "L", "navy")); err != nil {
					return err
				}

				return tx.WithinTx(ctx, func(inner port.Store) error {
					lines, err := inner.Carts().ListLines(ctx, userID)
					if err != nil {
						return err
					}
					assert.Len(t, lines, 1)
					return tt.failWith
				})
			})
			if tt.failWith != nil {
				require.ErrorIs(t, err, tt.failWith)
			} else {
				require.NoError(t, err)
			}

			lines, err := suite.store.Carts().ListLines(ctx, userID)
			require.NoError(t, err)
			assert.Len(t, lines, tt.wantLines)
		})
	}
}

func (suite *storeSuite) TestConcurrentInsertSameKey() {
	t := suite.T()
	ctx := t.Context()

	line := suite.line(gofakeit.UUID(), "M", "navy")

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		duplicates int
	)

	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := suite.store.Carts().InsertLine(ctx, line)
			if errors.Is(err, domain.ErrDuplicateLine) {
				mu.Lock()
				duplicates++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 19, duplicates)

	lines, err := suite.store.Carts().ListLines(ctx, line.UserID)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func (suite *storeSuite) TestOrders() {
	t := suite.T()
	ctx := t.Context()

	userID := gofakeit.UUID()

	var ids []uuid.UUID
	for range 3 {
		inserted, err := suite.store.Orders().InsertOrder(ctx, suite.order(userID))
		require.NoError(t, err)
		require.Len(t, inserted.Lines, 1)
		assert.Equal(t, inserted.ID, inserted.Lines[0].OrderID)
		ids = append(ids, inserted.ID)
	}

	_, err := suite.store.Orders().InsertOrder(ctx, domain.Order{UserID: userID})
	require.EqualError(t, err, "no lines in order")

	orders, err := suite.store.Orders().ListOrders(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, lo.Reverse(ids), lo.Map(orders, func(o domain.Order, _ int) uuid.UUID { return o.ID }))

	updated, err := suite.store.Orders().UpdateOrderStatus(ctx, ids[0], domain.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProcessing, updated.Status)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	full, err := suite.store.Orders().GetOrder(ctx, ids[0])
	require.NoError(t, err)
	assert.Len(t, full.Lines, 1)
	assert.Equal(t, domain.OrderStatusProcessing, full.Status)

	_, err = suite.store.Orders().GetOrder(ctx, uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = suite.store.Orders().UpdateOrderStatus(ctx, uuid.New(), domain.OrderStatusShipped)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func (suite *storeSuite) TestSearchOrders() {
	ctx := suite.T().Context()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return base }
	store := memstore.New(memstore.WithClock(clock))

	order1, err := store.Orders().InsertOrder(ctx, suite.order(gofakeit.UUID()))
	suite.Require().NoError(err)
	order2, err := store.Orders().InsertOrder(ctx, suite.order(gofakeit.UUID()))
	suite.Require().NoError(err)
	_, err = store.Orders().UpdateOrderStatus(ctx, order2.ID, domain.OrderStatusCancelled)
	suite.Require().NoError(err)

	tests := []struct {
		name      string
		filter    domain.OrderFilter
		wantIDs   []uuid.UUID
		wantError string
	}{
		{
			name:      "empty filter: error",
			wantError: "filter.Validate: all fields are empty",
		},
		{
			name:    "search by ids: 1 found",
			filter:  domain.OrderFilter{IDs: []uuid.UUID{order1.ID}},
			wantIDs: []uuid.UUID{order1.ID},
		},
		{
			name:    "search by user ids: 2 found",
			filter:  domain.OrderFilter{UserIDs: []string{order1.UserID, order2.UserID}},
			wantIDs: []uuid.UUID{order2.ID, order1.ID},
		},
		{
			name:    "search by status cancelled: 1 found",
			filter:  domain.OrderFilter{Statuses: []domain.OrderStatus{domain.OrderStatusCancelled}},
			wantIDs: []uuid.UUID{order2.ID},
		},
		{
			name: "search by ids and status: not found",
			filter: domain.OrderFilter{
				IDs:      []uuid.UUID{order1.ID},
				Statuses: []domain.OrderStatus{domain.OrderStatusCancelled},
			},
		},
		{
			name: "search by createdAt after the first order: 1 found",
			filter: domain.OrderFilter{
				CreatedAt: &domain.TimeRange{After: lo.ToPtr(order1.CreatedAt)},
			},
			wantIDs: []uuid.UUID{order2.ID},
		},
		{
			name: "search by createdAt before the first order: not found",
			filter: domain.OrderFilter{
				CreatedAt: &domain.TimeRange{Before: lo.ToPtr(order1.CreatedAt)},
			},
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()

			orders, err := store.Orders().SearchOrders(t.Context(), tt.filter)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			ids := lo.Map(orders, func(o domain.Order, _ int) uuid.UUID { return o.ID })
			assert.Equal(t, tt.wantIDs, nilIfEmpty(ids))
		})
	}
}

func (suite *storeSuite) TestProducts() {
	t := suite.T()
	ctx := t.Context()

	other, err := suite.store.Products().InsertProduct(ctx, randomProduct())
	require.NoError(t, err)

	products, err := suite.store.Products().GetProducts(ctx, []uuid.UUID{suite.product.ID, other.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, products, 2)

	found, err := suite.store.Products().DeactivateProduct(ctx, suite.product.ID)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = suite.store.Products().DeactivateProduct(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, found)

	active, err := suite.store.Products().ListActiveProducts(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, other.ID, active[0].ID)

	other.Name = "Renamed"
	updated, err := suite.store.Products().UpdateProduct(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	invalid := randomProduct()
	invalid.Colors = nil
	_, err = suite.store.Products().InsertProduct(ctx, invalid)
	assert.True(t, domain.IsValidation(err))
}

func (suite *storeSuite) TestWishlist() {
	t := suite.T()
	ctx := t.Context()

	userID := gofakeit.UUID()

	first, err := suite.store.Wishlist().AddItem(ctx, userID, suite.product.ID)
	require.NoError(t, err)
	second, err := suite.store.Wishlist().AddItem(ctx, userID, suite.product.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	items, err := suite.store.Wishlist().ListItems(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	removed, err := suite.store.Wishlist().RemoveItem(ctx, userID, suite.product.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = suite.store.Wishlist().RemoveItem(ctx, userID, suite.product.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func (suite *storeSuite) TestDesigns() {
	t := suite.T()
	ctx := t.Context()

	userID := gofakeit.UUID()
	designs := suite.store.Designs()

	first, err := designs.InsertDesign(ctx, randomDesign(userID))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second, err := designs.InsertDesign(ctx, randomDesign(userID))
	require.NoError(t, err)
	_, err = designs.InsertDesign(ctx, randomDesign(gofakeit.UUID()))
	require.NoError(t, err)

	_, err = designs.InsertDesign(ctx, domain.Design{UserID: userID, Name: "broken", Data: json.RawMessage(`{`)})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "designData", ve.Field)

	// returned data is a copy
	first.Data[0] = '['
	got, err := designs.GetDesign(ctx, first.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"objects":[]}`, string(got.Data))

	listed, err := designs.ListDesigns(ctx, userID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, []uuid.UUID{second.ID, first.ID}, []uuid.UUID{listed[0].ID, listed[1].ID})

	got.Name = "renamed"
	got.UserID = gofakeit.UUID()
	updated, err := designs.UpdateDesign(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, userID, updated.UserID)
	assert.Equal(t, first.CreatedAt, updated.CreatedAt)

	missing := randomDesign(userID)
	missing.ID = uuid.New()
	_, err = designs.UpdateDesign(ctx, missing)
	require.ErrorIs(t, err, domain.ErrNotFound)

	deleted, err := designs.DeleteDesign(ctx, gofakeit.UUID(), first.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = designs.DeleteDesign(ctx, userID, first.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = designs.GetDesign(ctx, first.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func (suite *storeSuite) line(userID, size, color string) domain.CartLine {
	return domain.CartLine{
		UserID:    userID,
		ProductID: lo.ToPtr(suite.product.ID),
		Quantity:  gofakeit.Number(1, 5),
		Size:      size,
		Color:     color,
	}
}

func (suite *storeSuite) order(userID string) domain.Order {
	price := domain.NewMoney(decimal.RequireFromString("19.99"), currency.USD)

	return domain.Order{
		UserID: userID,
		Total:  domain.NewMoney(decimal.RequireFromString("39.98"), currency.USD),
		Status: domain.OrderStatusPending,
		ShippingAddress: domain.ShippingAddress{
			FullName: gofakeit.Name(),
			Street:   gofakeit.Street(),
			City:     gofakeit.City(),
			Country:  gofakeit.Country(),
		},
		Lines: []domain.OrderLine{{
			ProductID: lo.ToPtr(suite.product.ID),
			Quantity:  2,
			Size:      "M",
			Color:     "white",
			Price:     price,
		}},
	}
}

func customLine(userID string) domain.CartLine {
	return domain.CartLine{
		UserID:      userID,
		DesignID:    lo.ToPtr(uuid.New()),
		Quantity:    1,
		Size:        "M",
		Color:       "red",
		CustomPrice: lo.ToPtr(decimal.RequireFromString("34.50")),
	}
}

func randomDesign(userID string) domain.Design {
	return domain.Design{
		UserID:    userID,
		Name:      gofakeit.BuzzWord(),
		Data:      json.RawMessage(`{"objects":[]}`),
		Thumbnail: gofakeit.URL(),
	}
}

func randomProduct() domain.Product {
	return domain.Product{
		Name:      gofakeit.ProductName(),
		BasePrice: decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(domain.PriceScale),
		Category:  gofakeit.ProductCategory(),
		Colors:    []string{"white", "black", "navy"},
		Sizes:     []string{"S", "M", "L"},
		IsActive:  true,
		Stock:     gofakeit.Number(0, 100),
	}
}

func nilIfEmpty[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return s
}
