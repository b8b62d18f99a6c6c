package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type DesignRepository interface {
	GetDesign(ctx context.Context, designID uuid.UUID) (domain.Design, error)
	// ListDesigns returns the user's designs, newest first.
	ListDesigns(ctx context.Context, userID string) ([]domain.Design, error)

	InsertDesign(ctx context.Context, design domain.Design) (domain.Design, error)
	UpdateDesign(ctx context.Context, design domain.Design) (domain.Design, error)
	// DeleteDesign only deletes designs owned by userID.
	DeleteDesign(ctx context.Context, userID string, designID uuid.UUID) (bool, error)
}
