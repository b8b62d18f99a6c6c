package db

import (
	"context"

	"github.com/google/uuid"
)

const designColumns = `id, user_id, name, design_data, thumbnail, is_public, created_at`

func scanDesign(row interface{ Scan(...interface{}) error }) (Design, error) {
	var i Design
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Name,
		&i.DesignData,
		&i.Thumbnail,
		&i.IsPublic,
		&i.CreatedAt,
	)
	return i, err
}

const getDesign = `-- name: GetDesign :one
SELECT ` + designColumns + `
FROM designs
WHERE id = $1
`

func (q *Queries) GetDesign(ctx context.Context, id uuid.UUID) (Design, error) {
	row := q.db.QueryRow(ctx, getDesign, id)
	return scanDesign(row)
}

const listDesignsByUser = `-- name: ListDesignsByUser :many
SELECT ` + designColumns + `
FROM designs
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
`

func (q *Queries) ListDesignsByUser(ctx context.Context, userID string) ([]Design, error) {
	rows, err := q.db.Query(ctx, listDesignsByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Design
	for rows.Next() {
		i, err := scanDesign(rows)
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

const insertDesign = `-- name: InsertDesign :one
INSERT INTO designs (user_id, name, design_data, thumbnail, is_public)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + designColumns + `
`

type InsertDesignParams struct {
	UserID     string
	Name       string
	DesignData []byte
	Thumbnail  string
	IsPublic   bool
}

func (q *Queries) InsertDesign(ctx context.Context, arg InsertDesignParams) (Design, error) {
	row := q.db.QueryRow(ctx, insertDesign,
		arg.UserID,
		arg.Name,
		arg.DesignData,
		arg.Thumbnail,
		arg.IsPublic,
	)
	return scanDesign(row)
}

const updateDesign = `-- name: UpdateDesign :one
UPDATE designs
SET name = $2, design_data = $3, thumbnail = $4, is_public = $5
WHERE id = $1
RETURNING ` + designColumns + `
`

type UpdateDesignParams struct {
	ID         uuid.UUID
	Name       string
	DesignData []byte
	Thumbnail  string
	IsPublic   bool
}

func (q *Queries) UpdateDesign(ctx context.Context, arg UpdateDesignParams) (Design, error) {
	row := q.db.QueryRow(ctx, updateDesign,
		arg.ID,
		arg.Name,
		arg.DesignData,
		arg.Thumbnail,
		arg.IsPublic,
	)
	return scanDesign(row)
}

const deleteDesign = `-- name: DeleteDesign :execrows
DELETE FROM designs
WHERE id = $1 AND user_id = $2
`

type DeleteDesignParams struct {
	ID     uuid.UUID
	UserID string
}

func (q *Queries) DeleteDesign(ctx context.Context, arg DeleteDesignParams) (int64, error) {
	result, err := q.db.Exec(ctx, deleteDesign, arg.ID, arg.UserID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
