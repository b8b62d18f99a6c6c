package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const orderColumns = `id, user_id, total_amount, total_currency, status, shipping_address, created_at, updated_at`

func scanOrder(row interface{ Scan(...interface{}) error }) (Order, error) {
	var i Order
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.TotalAmount,
		&i.TotalCurrency,
		&i.Status,
		&i.ShippingAddress,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func collectOrders(ctx context.Context, q *Queries, query string, args ...interface{}) ([]Order, error) {
	rows, err := q.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Order
	for rows.Next() {
		i, err := scanOrder(rows)
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

const getOrder = `-- name: GetOrder :one
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1
`

func (q *Queries) GetOrder(ctx context.Context, id uuid.UUID) (Order, error) {
	row := q.db.QueryRow(ctx, getOrder, id)
	return scanOrder(row)
}

const getOrderForUpdate = `-- name: GetOrderForUpdate :one
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1
FOR UPDATE
`

func (q *Queries) GetOrderForUpdate(ctx context.Context, id uuid.UUID) (Order, error) {
	row := q.db.QueryRow(ctx, getOrderForUpdate, id)
	return scanOrder(row)
}

const getOrderLines = `-- name: GetOrderLines :many
SELECT id, order_id, product_id, design_id, quantity, size, color, price_amount, price_currency
FROM order_lines
WHERE order_id = $1
ORDER BY position
`

func (q *Queries) GetOrderLines(ctx context.Context, orderID uuid.UUID) ([]OrderLine, error) {
	rows, err := q.db.Query(ctx, getOrderLines, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []OrderLine
	for rows.Next() {
		var i OrderLine
		if err := rows.Scan(
			&i.ID,
			&i.OrderID,
			&i.ProductID,
			&i.DesignID,
			&i.Quantity,
			&i.Size,
			&i.Color,
			&i.PriceAmount,
			&i.PriceCurrency,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listOrdersByUser = `-- name: ListOrdersByUser :many
SELECT ` + orderColumns + `
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
`

func (q *Queries) ListOrdersByUser(ctx context.Context, userID string) ([]Order, error) {
	return collectOrders(ctx, q, listOrdersByUser, userID)
}

const searchOrders = `-- name: SearchOrders :many
SELECT ` + orderColumns + `
FROM orders
WHERE ($1::uuid[] IS NULL OR id = ANY($1::uuid[]))
  AND ($2::text[] IS NULL OR user_id = ANY($2::text[]))
  AND ($3::text[] IS NULL OR status = ANY($3::text[]))
  AND ($4::timestamptz IS NULL OR created_at > $4::timestamptz)
  AND ($5::timestamptz IS NULL OR created_at < $5::timestamptz)
ORDER BY created_at DESC, id DESC
`

type SearchOrdersParams struct {
	Ids           []uuid.UUID
	UserIds       []string
	Statuses      []string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

func (q *Queries) SearchOrders(ctx context.Context, arg SearchOrdersParams) ([]Order, error) {
	return collectOrders(ctx, q, searchOrders,
		arg.Ids,
		arg.UserIds,
		arg.Statuses,
		arg.CreatedAfter,
		arg.CreatedBefore,
	)
}

const insertOrder = `-- name: InsertOrder :one
INSERT INTO orders (user_id, total_amount, total_currency, status, shipping_address)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + orderColumns + `
`

type InsertOrderParams struct {
	UserID          string
	TotalAmount     decimal.Decimal
	TotalCurrency   string
	Status          string
	ShippingAddress []byte
}

func (q *Queries) InsertOrder(ctx context.Context, arg InsertOrderParams) (Order, error) {
	row := q.db.QueryRow(ctx, insertOrder,
		arg.UserID,
		arg.TotalAmount,
		arg.TotalCurrency,
		arg.Status,
		arg.ShippingAddress,
	)
	return scanOrder(row)
}

const insertOrderLine = `-- name: InsertOrderLine :one
INSERT INTO order_lines (order_id, position, product_id, design_id, quantity, size, color, price_amount, price_currency)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id
`

type InsertOrderLineParams struct {
	OrderID       uuid.UUID
	Position      int32
	ProductID     uuid.NullUUID
	DesignID      uuid.NullUUID
	Quantity      int32
	Size          string
	Color         string
	PriceAmount   decimal.Decimal
	PriceCurrency string
}

func (q *Queries) InsertOrderLine(ctx context.Context, arg InsertOrderLineParams) (uuid.UUID, error) {
	row := q.db.QueryRow(ctx, insertOrderLine,
		arg.OrderID,
		arg.Position,
		arg.ProductID,
		arg.DesignID,
		arg.Quantity,
		arg.Size,
		arg.Color,
		arg.PriceAmount,
		arg.PriceCurrency,
	)
	var id uuid.UUID
	err := row.Scan(&id)
	return id, err
}

const updateOrderStatus = `-- name: UpdateOrderStatus :one
UPDATE orders
SET status = $2, updated_at = now()
WHERE id = $1
RETURNING ` + orderColumns + `
`

type UpdateOrderStatusParams struct {
	ID     uuid.UUID
	Status string
}

func (q *Queries) UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) (Order, error) {
	row := q.db.QueryRow(ctx, updateOrderStatus, arg.ID, arg.Status)
	return scanOrder(row)
}
