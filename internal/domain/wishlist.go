package domain

import (
	"time"

	"github.com/google/uuid"
)

type WishlistItem struct {
	ID        uuid.UUID
	UserID    string
	ProductID uuid.UUID

	CreatedAt time.Time
}
