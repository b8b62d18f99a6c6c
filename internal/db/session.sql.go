package db

import (
	"context"
	"time"
)

const getSession = `-- name: GetSession :one
SELECT key, data, expires_at
FROM sessions
WHERE key = $1 AND expires_at > now()
`

func (q *Queries) GetSession(ctx context.Context, key string) (Session, error) {
	row := q.db.QueryRow(ctx, getSession, key)
	var i Session
	err := row.Scan(&i.Key, &i.Data, &i.ExpiresAt)
	return i, err
}

const upsertSession = `-- name: UpsertSession :exec
INSERT INTO sessions (key, data, expires_at)
VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, expires_at = EXCLUDED.expires_at
`

type UpsertSessionParams struct {
	Key       string
	Data      []byte
	ExpiresAt time.Time
}

func (q *Queries) UpsertSession(ctx context.Context, arg UpsertSessionParams) error {
	_, err := q.db.Exec(ctx, upsertSession, arg.Key, arg.Data, arg.ExpiresAt)
	return err
}

const deleteSession = `-- name: DeleteSession :exec
DELETE FROM sessions
WHERE key = $1
`

func (q *Queries) DeleteSession(ctx context.Context, key string) error {
	_, err := q.db.Exec(ctx, deleteSession, key)
	return err
}

const deleteExpiredSessions = `-- name: DeleteExpiredSessions :execrows
DELETE FROM sessions
WHERE expires_at <= now()
`

func (q *Queries) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	result, err := q.db.Exec(ctx, deleteExpiredSessions)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
