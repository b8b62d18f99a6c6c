package db

import (
	"context"

	"github.com/google/uuid"
)

const listWishlistItems = `-- name: ListWishlistItems :many
SELECT id, user_id, product_id, created_at
FROM wishlist_items
WHERE user_id = $1
ORDER BY created_at, id
`

func (q *Queries) ListWishlistItems(ctx context.Context, userID string) ([]WishlistItem, error) {
	rows, err := q.db.Query(ctx, listWishlistItems, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []WishlistItem
	for rows.Next() {
		var i WishlistItem
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.ProductID,
			&i.CreatedAt,
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

const addWishlistItem = `-- name: AddWishlistItem :one
INSERT INTO wishlist_items (user_id, product_id)
VALUES ($1, $2)
ON CONFLICT (user_id, product_id) DO UPDATE SET user_id = EXCLUDED.user_id
RETURNING id, user_id, product_id, created_at
`

type AddWishlistItemParams struct {
	UserID    string
	ProductID uuid.UUID
}

func (q *Queries) AddWishlistItem(ctx context.Context, arg AddWishlistItemParams) (WishlistItem, error) {
	row := q.db.QueryRow(ctx, addWishlistItem, arg.UserID, arg.ProductID)
	var i WishlistItem
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.ProductID,
		&i.CreatedAt,
	)
	return i, err
}

const deleteWishlistItem = `-- name: DeleteWishlistItem :execrows
DELETE FROM wishlist_items
WHERE user_id = $1 AND product_id = $2
`

type DeleteWishlistItemParams struct {
	UserID    string
	ProductID uuid.UUID
}

func (q *Queries) DeleteWishlistItem(ctx context.Context, arg DeleteWishlistItemParams) (int64, error) {
	result, err := q.db.Exec(ctx, deleteWishlistItem, arg.UserID, arg.ProductID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
