package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type CartRepository interface {
	ListLines(ctx context.Context, userID string) ([]domain.CartLine, error)
	GetLine(ctx context.Context, lineID uuid.UUID) (domain.CartLine, error)
	// FindLineByKey reports false when the user has no line for the key.
	FindLineByKey(ctx context.Context, key domain.LineKey) (domain.CartLine, bool, error)

	// InsertLine fails with domain.ErrDuplicateLine if the line's merge key is taken.
	InsertLine(ctx context.Context, line domain.CartLine) (domain.CartLine, error)
	UpdateLine(ctx context.Context, line domain.CartLine) (domain.CartLine, error)

	DeleteLine(ctx context.Context, userID string, lineID uuid.UUID) (bool, error)
	ClearCart(ctx context.Context, userID string) (int64, error)
}
