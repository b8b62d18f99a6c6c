package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"go.uber.org/goleak"
)

type cartRepositorySuite struct {
	suite.Suite

	pool      *pgxpool.Pool
	repo      port.CartRepository
	container testcontainers.Container

	product domain.Product
}

// entry point to run the tests in the suite
func TestCartRepositorySuite(t *testing.T) {
	// Verifies no leaks after all tests in the suite run.
	defer goleak.VerifyNone(t)

	suite.Run(t, new(cartRepositorySuite))
}

// before all tests in the suite
func (suite *cartRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var err error

	suite.container, suite.pool, err = startMigratedPostgres(ctx)
	suite.Require().NoError(err)

	suite.repo = repository.NewCart(suite.pool)
}

// after all tests in the suite
func (suite *cartRepositorySuite) TearDownSuite() {
	ctx := suite.T().Context()

	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(ctx))
	}
}

// before each test
func (suite *cartRepositorySuite) SetupTest() {
	ctx := suite.T().Context()

	suite.Require().NoError(truncateAll(ctx, suite.pool))

	var err error
	suite.product, err = insertProduct(ctx, suite.pool)
	suite.Require().NoError(err)
}

func (suite *cartRepositorySuite) TestInsertLine() {
	userID := gofakeit.UUID()

	tests := []struct {
		name      string
		line      domain.CartLine
		wantError error
	}{
		{
			name: "catalog line: ok",
			line: suite.randomLine(userID, "M", "black"),
		},
		{
			name: "catalog line with custom price: ok",
			line: func() domain.CartLine {
				l := suite.randomLine(userID, "L", "white")
				l.CustomPrice = lo.ToPtr(randomPrice())
				return l
			}(),
		},
		{
			name: "custom design line without product: ok",
			line: domain.CartLine{
				UserID:      userID,
				DesignID:    lo.ToPtr(uuid.New()),
				Quantity:    1,
				Size:        "M",
				Color:       "red",
				CustomPrice: lo.ToPtr(randomPrice()),
			},
		},
		{
			name:      "same merge key twice: duplicate",
			line:      suite.randomLine(userID, "M", "black"),
			wantError: domain.ErrDuplicateLine,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			inserted, err := suite.repo.InsertLine(ctx, tt.line)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, inserted.ID)
			assert.False(t, inserted.CreatedAt.IsZero())

			actual, err := suite.repo.GetLine(ctx, inserted.ID)
			require.NoError(t, err)

			assertCartLine(t, tt.line, actual)
		})
	}
}

func (suite *cartRepositorySuite) TestFindLineByKey() {
	t := suite.T()
	ctx := t.Context()

	line := suite.randomLine(gofakeit.UUID(), "S", "navy")
	inserted, err := suite.repo.InsertLine(ctx, line)
	require.NoError(t, err)

	key, ok := line.MergeKey()
	require.True(t, ok)

	found, ok, err := suite.repo.FindLineByKey(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, inserted.ID, found.ID)

	key.Color = "white"
	_, ok, err = suite.repo.FindLineByKey(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func (suite *cartRepositorySuite) TestQuantityOutOfColumnRange() {
	t := suite.T()
	ctx := t.Context()

	line := suite.randomLine(gofakeit.UUID(), "S", "navy")
	line.Quantity = domain.MaxQuantity + 1

	_, err := suite.repo.InsertLine(ctx, line)
	require.EqualError(t, err, "validation: quantity must be at most 2147483647")

	line.Quantity = domain.MaxQuantity
	inserted, err := suite.repo.InsertLine(ctx, line)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxQuantity, inserted.Quantity)

	inserted.Quantity = domain.MaxQuantity + 1
	_, err = suite.repo.UpdateLine(ctx, inserted)
	assert.True(t, domain.IsValidation(err))

	actual, err := suite.repo.GetLine(ctx, inserted.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxQuantity, actual.Quantity)
}

func (suite *cartRepositorySuite) TestUpdateLine() {
	userID := gofakeit.UUID()

	tests := []struct {
		name      string
		prepare   func(domain.CartLine) domain.CartLine
		wantError error
	}{
		{
			name: "change quantity: ok",
			prepare: func(l domain.CartLine) domain.CartLine {
				l.Quantity = 7
				return l
			},
		},
		{
			name: "clear custom price: ok",
			prepare: func(l domain.CartLine) domain.CartLine {
				l.CustomPrice = nil
				return l
			},
		},
		{
			name: "non-existing line: not found",
			prepare: func(l domain.CartLine) domain.CartLine {
				l.ID = uuid.New()
				return l
			},
			wantError: domain.ErrNotFound,
		},
		{
			name: "move onto taken merge key: duplicate",
			prepare: func(l domain.CartLine) domain.CartLine {
				l.Size = "S"
				l.Color = "white"
				return l
			},
			wantError: domain.ErrDuplicateLine,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			_, err := suite.repo.ClearCart(ctx, userID)
			require.NoError(t, err)

			_, err = suite.repo.InsertLine(ctx, suite.randomLine(userID, "S", "white"))
			require.NoError(t, err)

			line := suite.randomLine(userID, "L", "black")
			line.CustomPrice = lo.ToPtr(randomPrice())
			inserted, err := suite.repo.InsertLine(ctx, line)
			require.NoError(t, err)

			updated, err := suite.repo.UpdateLine(ctx, tt.prepare(inserted))
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			actual, err := suite.repo.GetLine(ctx, inserted.ID)
			require.NoError(t, err)
			assertCartLine(t, updated, actual)
		})
	}
}

func (suite *cartRepositorySuite) TestDeleteLine() {
	userID := gofakeit.UUID()
	inserted, err := suite.repo.InsertLine(suite.T().Context(), suite.randomLine(userID, "M", "white"))
	suite.Require().NoError(err)

	tests := []struct {
		name      string
		userID    string
		lineID    uuid.UUID
		wantFound bool
	}{
		{
			name:   "line of another user: not found",
			userID: gofakeit.UUID(),
			lineID: inserted.ID,
		},
		{
			name:      "delete existing line: ok",
			userID:    userID,
			lineID:    inserted.ID,
			wantFound: true,
		},
		{
			name:   "delete already deleted line: not found",
			userID: userID,
			lineID: inserted.ID,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			found, err := suite.repo.DeleteLine(ctx, tt.userID, tt.lineID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)
		})
	}
}

func (suite *cartRepositorySuite) TestListLinesAndClear() {
	t := suite.T()
	ctx := t.Context()

	userID := gofakeit.UUID()
	otherUserID := gofakeit.UUID()

	first, err := suite.repo.InsertLine(ctx, suite.randomLine(userID, "S", "white"))
	require.NoError(t, err)
	second, err := suite.repo.InsertLine(ctx, suite.randomLine(userID, "M", "white"))
	require.NoError(t, err)
	_, err = suite.repo.InsertLine(ctx, suite.randomLine(otherUserID, "S", "white"))
	require.NoError(t, err)

	lines, err := suite.repo.ListLines(ctx, userID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, first.ID, lines[0].ID)
	assert.Equal(t, second.ID, lines[1].ID)

	cleared, err := suite.repo.ClearCart(ctx, userID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, cleared)

	cleared, err = suite.repo.ClearCart(ctx, userID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, cleared)

	lines, err = suite.repo.ListLines(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	lines, err = suite.repo.ListLines(ctx, otherUserID)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func (suite *cartRepositorySuite) randomLine(userID, size, color string) domain.CartLine {
	return domain.CartLine{
		UserID:    userID,
		ProductID: lo.ToPtr(suite.product.ID),
		Quantity:  gofakeit.Number(1, 5),
		Size:      size,
		Color:     color,
	}
}

func assertCartLine(t *testing.T, expected domain.CartLine, actual domain.CartLine) {
	t.Helper()

	// Ignore generated fields and
	// Treat empty slices as equal to nil
	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.CartLine{}, "ID", "CreatedAt"),
		cmpopts.EquateEmpty(),
		decimalComparer,
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)
}
