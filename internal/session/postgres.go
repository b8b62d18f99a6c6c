package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
)

// PostgresStore keeps sessions in the sessions table; expiry is checked by the
// database clock on read.
type PostgresStore struct {
	q     *db.Queries
	clock func() time.Time
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		q:     db.New(pool),
		clock: time.Now,
	}
}

func (s *PostgresStore) Get(ctx context.Context, key string) (Data, bool, error) {
	row, err := s.q.GetSession(ctx, key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Data{}, false, nil
		}
		return Data{}, false, fmt.Errorf("q.GetSession: %w", err)
	}

	var data Data
	if err := json.Unmarshal(row.Data, &data); err != nil {
		return Data{}, false, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return data, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, data Data, ttl time.Duration) error {
	if err := validate(key, ttl); err != nil {
		return err
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	err = s.q.UpsertSession(ctx, db.UpsertSessionParams{
		Key:       key,
		Data:      payload,
		ExpiresAt: s.clock().Add(ttl).UTC(),
	})
	if err != nil {
		return fmt.Errorf("q.UpsertSession: %w", err)
	}

	return nil
}

func (s *PostgresStore) Destroy(ctx context.Context, key string) error {
	if err := s.q.DeleteSession(ctx, key); err != nil {
		return fmt.Errorf("q.DeleteSession: %w", err)
	}

	return nil
}

func (s *PostgresStore) PurgeExpired(ctx context.Context) (int64, error) {
	purged, err := s.q.DeleteExpiredSessions(ctx)
	if err != nil {
		return 0, fmt.Errorf("q.DeleteExpiredSessions: %w", err)
	}

	return purged, nil
}
