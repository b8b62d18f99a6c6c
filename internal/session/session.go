// Package session stores per-visitor session state by key. It is consumed by
// whatever boundary authenticates users and is independent of carts and pricing.
package session

import (
	"context"
	"errors"
	"strings"
	"time"
)

const RoleAdmin = "admin"

// Data is the state kept for one session.
type Data struct {
	UserID string            `json:"userId,omitempty"`
	Role   string            `json:"role,omitempty"`
	Values map[string]string `json:"values,omitempty"`
}

func (d Data) IsAuthenticated() bool {
	return d.UserID != ""
}

func (d Data) IsAdmin() bool {
	return d.IsAuthenticated() && d.Role == RoleAdmin
}

type Store interface {
	// Get reports false for unknown and expired keys.
	Get(ctx context.Context, key string) (Data, bool, error)
	Set(ctx context.Context, key string, data Data, ttl time.Duration) error
	// Destroy succeeds for unknown keys.
	Destroy(ctx context.Context, key string) error
}

func validate(key string, ttl time.Duration) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("key is empty")
	}
	if ttl <= 0 {
		return errors.New("ttl must be positive")
	}
	return nil
}
