package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const cartLineColumns = `id, user_id, product_id, design_id, quantity, size, color, custom_price, created_at`

func scanCartLine(row interface{ Scan(...interface{}) error }) (CartLine, error) {
	var i CartLine
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.ProductID,
		&i.DesignID,
		&i.Quantity,
		&i.Size,
		&i.Color,
		&i.CustomPrice,
		&i.CreatedAt,
	)
	return i, err
}

const listCartLines = `-- name: ListCartLines :many
SELECT ` + cartLineColumns + `
FROM cart_lines
WHERE user_id = $1
ORDER BY created_at, id
`

func (q *Queries) ListCartLines(ctx context.Context, userID string) ([]CartLine, error) {
	rows, err := q.db.Query(ctx, listCartLines, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CartLine
	for rows.Next() {
		i, err := scanCartLine(rows)
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

const getCartLine = `-- name: GetCartLine :one
SELECT ` + cartLineColumns + `
FROM cart_lines
WHERE id = $1
`

func (q *Queries) GetCartLine(ctx context.Context, id uuid.UUID) (CartLine, error) {
	row := q.db.QueryRow(ctx, getCartLine, id)
	return scanCartLine(row)
}

const findCartLineByKey = `-- name: FindCartLineByKey :one
SELECT ` + cartLineColumns + `
FROM cart_lines
WHERE user_id = $1 AND product_id = $2 AND size = $3 AND color = $4
`

type FindCartLineByKeyParams struct {
	UserID    string
	ProductID uuid.UUID
	Size      string
	Color     string
}

func (q *Queries) FindCartLineByKey(ctx context.Context, arg FindCartLineByKeyParams) (CartLine, error) {
	row := q.db.QueryRow(ctx, findCartLineByKey,
		arg.UserID,
		arg.ProductID,
		arg.Size,
		arg.Color,
	)
	return scanCartLine(row)
}

const insertCartLine = `-- name: InsertCartLine :one
INSERT INTO cart_lines (user_id, product_id, design_id, quantity, size, color, custom_price)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + cartLineColumns + `
`

type InsertCartLineParams struct {
	UserID      string
	ProductID   uuid.NullUUID
	DesignID    uuid.NullUUID
	Quantity    int32
	Size        string
	Color       string
	CustomPrice decimal.NullDecimal
}

func (q *Queries) InsertCartLine(ctx context.Context, arg InsertCartLineParams) (CartLine, error) {
	row := q.db.QueryRow(ctx, insertCartLine,
		arg.UserID,
		arg.ProductID,
		arg.DesignID,
		arg.Quantity,
		arg.Size,
		arg.Color,
		arg.CustomPrice,
	)
	return scanCartLine(row)
}

const updateCartLine = `-- name: UpdateCartLine :one
UPDATE cart_lines
SET quantity = $2, size = $3, color = $4, custom_price = $5
WHERE id = $1
RETURNING ` + cartLineColumns + `
`

type UpdateCartLineParams struct {
	ID          uuid.UUID
	Quantity    int32
	Size        string
	Color       string
	CustomPrice decimal.NullDecimal
}

func (q *Queries) UpdateCartLine(ctx context.Context, arg UpdateCartLineParams) (CartLine, error) {
	row := q.db.QueryRow(ctx, updateCartLine,
		arg.ID,
		arg.Quantity,
		arg.Size,
		arg.Color,
		arg.CustomPrice,
	)
	return scanCartLine(row)
}

const deleteCartLine = `-- name: DeleteCartLine :execrows
DELETE FROM cart_lines
WHERE id = $1 AND user_id = $2
`

type DeleteCartLineParams struct {
	ID     uuid.UUID
	UserID string
}

func (q *Queries) DeleteCartLine(ctx context.Context, arg DeleteCartLineParams) (int64, error) {
	result, err := q.db.Exec(ctx, deleteCartLine, arg.ID, arg.UserID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const clearCart = `-- name: ClearCart :execrows
DELETE FROM cart_lines
WHERE user_id = $1
`

func (q *Queries) ClearCart(ctx context.Context, userID string) (int64, error) {
	result, err := q.db.Exec(ctx, clearCart, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
