package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const cartLineMergeKeyIndex = "cart_lines_merge_key_idx"

type cartRepository struct {
	q *db.Queries
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return newCartRepository(pool)
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return newCartRepository(tx)
}

func newCartRepository(dbtx db.DBTX) *cartRepository {
	return &cartRepository{
		q: db.New(dbtx),
	}
}

func (r *cartRepository) ListLines(ctx context.Context, userID string) ([]domain.CartLine, error) {
	rows, err := r.q.ListCartLines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("q.ListCartLines: %w", err)
	}

	return lo.Map(rows, func(row db.CartLine, _ int) domain.CartLine {
		return mapDBCartLineToDomain(row)
	}), nil
}

func (r *cartRepository) GetLine(ctx context.Context, lineID uuid.UUID) (domain.CartLine, error) {
	row, err := r.q.GetCartLine(ctx, lineID)
	if err != nil {
		return domain.CartLine{}, mapNoRows("q.GetCartLine", err)
	}

	return mapDBCartLineToDomain(row), nil
}

func (r *cartRepository) FindLineByKey(ctx context.Context, key domain.LineKey) (domain.CartLine, bool, error) {
	row, err := r.q.FindCartLineByKey(ctx, db.FindCartLineByKeyParams{
		UserID:    key.UserID,
		ProductID: key.ProductID,
		Size:      key.Size,
		Color:     key.Color,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CartLine{}, false, nil
		}
		return domain.CartLine{}, false, fmt.Errorf("q.FindCartLineByKey: %w", err)
	}

	return mapDBCartLineToDomain(row), true, nil
}

func (r *cartRepository) InsertLine(ctx context.Context, line domain.CartLine) (domain.CartLine, error) {
	quantity, err := toDBQuantity(line.Quantity)
	if err != nil {
		return domain.CartLine{}, err
	}

	row, err := r.q.InsertCartLine(ctx, db.InsertCartLineParams{
		UserID:      line.UserID,
		ProductID:   toNullUUID(line.ProductID),
		DesignID:    toNullUUID(line.DesignID),
		Quantity:    quantity,
		Size:        line.Size,
		Color:       line.Color,
		CustomPrice: toNullDecimal(line.CustomPrice),
	})
	if err != nil {
		if isUniqueViolation(err, cartLineMergeKeyIndex) {
			return domain.CartLine{}, fmt.Errorf("q.InsertCartLine: %w", domain.ErrDuplicateLine)
		}
		return domain.CartLine{}, fmt.Errorf("q.InsertCartLine: %w", err)
	}

	return mapDBCartLineToDomain(row), nil
}

func (r *cartRepository) UpdateLine(ctx context.Context, line domain.CartLine) (domain.CartLine, error) {
	quantity, err := toDBQuantity(line.Quantity)
	if err != nil {
		return domain.CartLine{}, err
	}

	row, err := r.q.UpdateCartLine(ctx, db.UpdateCartLineParams{
		ID:          line.ID,
		Quantity:    quantity,
		Size:        line.Size,
		Color:       line.Color,
		CustomPrice: toNullDecimal(line.CustomPrice),
	})
	if err != nil {
		if isUniqueViolation(err, cartLineMergeKeyIndex) {
			return domain.CartLine{}, fmt.Errorf("q.UpdateCartLine: %w", domain.ErrDuplicateLine)
		}
		return domain.CartLine{}, mapNoRows("q.UpdateCartLine", err)
	}

	return mapDBCartLineToDomain(row), nil
}

func (r *cartRepository) DeleteLine(ctx context.Context, userID string, lineID uuid.UUID) (bool, error) {
	rowsAffected, err := r.q.DeleteCartLine(ctx, db.DeleteCartLineParams{
		ID:     lineID,
		UserID: userID,
	})
	if err != nil {
		return false, fmt.Errorf("q.DeleteCartLine: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *cartRepository) ClearCart(ctx context.Context, userID string) (int64, error) {
	rowsAffected, err := r.q.ClearCart(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("q.ClearCart: %w", err)
	}

	return rowsAffected, nil
}

func mapDBCartLineToDomain(row db.CartLine) domain.CartLine {
	return domain.CartLine{
		ID:          row.ID,
		UserID:      row.UserID,
		ProductID:   fromNullUUID(row.ProductID),
		DesignID:    fromNullUUID(row.DesignID),
		Quantity:    int(row.Quantity),
		Size:        row.Size,
		Color:       row.Color,
		CustomPrice: fromNullDecimal(row.CustomPrice),
		CreatedAt:   row.CreatedAt,
	}
}

func toNullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func fromNullUUID(id uuid.NullUUID) *uuid.UUID {
	if !id.Valid {
		return nil
	}
	return lo.ToPtr(id.UUID)
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func fromNullDecimal(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	return lo.ToPtr(d.Decimal)
}

// toDBQuantity refuses quantities the INTEGER column cannot hold instead of truncating them.
func toDBQuantity(quantity int) (int32, error) {
	if quantity > domain.MaxQuantity {
		return 0, domain.NewValidationError("quantity", fmt.Sprintf("must be at most %d", domain.MaxQuantity))
	}
	return int32(quantity), nil
}
