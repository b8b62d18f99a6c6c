package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/samber/lo"
)

type designRepository struct {
	q *db.Queries
}

func NewDesign(pool *pgxpool.Pool) port.DesignRepository {
	return newDesignRepository(pool)
}

func NewDesignWithTx(tx pgx.Tx) port.DesignRepository {
	return newDesignRepository(tx)
}

func newDesignRepository(dbtx db.DBTX) *designRepository {
	return &designRepository{
		q: db.New(dbtx),
	}
}

func (r *designRepository) GetDesign(ctx context.Context, designID uuid.UUID) (domain.Design, error) {
	row, err := r.q.GetDesign(ctx, designID)
	if err != nil {
		return domain.Design{}, mapNoRows("q.GetDesign", err)
	}

	return mapDBDesignToDomain(row), nil
}

func (r *designRepository) ListDesigns(ctx context.Context, userID string) ([]domain.Design, error) {
	rows, err := r.q.ListDesignsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("q.ListDesignsByUser: %w", err)
	}

	return lo.Map(rows, func(row db.Design, _ int) domain.Design {
		return mapDBDesignToDomain(row)
	}), nil
}

func (r *designRepository) InsertDesign(ctx context.Context, design domain.Design) (domain.Design, error) {
	if err := design.Validate(); err != nil {
		return domain.Design{}, fmt.Errorf("design.Validate: %w", err)
	}

	row, err := r.q.InsertDesign(ctx, db.InsertDesignParams{
		UserID:     design.UserID,
		Name:       design.Name,
		DesignData: design.Data,
		Thumbnail:  design.Thumbnail,
		IsPublic:   design.IsPublic,
	})
	if err != nil {
		return domain.Design{}, fmt.Errorf("q.InsertDesign: %w", err)
	}

	return mapDBDesignToDomain(row), nil
}

func (r *designRepository) UpdateDesign(ctx context.Context, design domain.Design) (domain.Design, error) {
	if design.ID == uuid.Nil {
		return domain.Design{}, fmt.Errorf("designID is empty")
	}
	if err := design.Validate(); err != nil {
		return domain.Design{}, fmt.Errorf("design.Validate: %w", err)
	}

	row, err := r.q.UpdateDesign(ctx, db.UpdateDesignParams{
		ID:         design.ID,
		Name:       design.Name,
		DesignData: design.Data,
		Thumbnail:  design.Thumbnail,
		IsPublic:   design.IsPublic,
	})
	if err != nil {
		return domain.Design{}, mapNoRows("q.UpdateDesign", err)
	}

	return mapDBDesignToDomain(row), nil
}

func (r *designRepository) DeleteDesign(ctx context.Context, userID string, designID uuid.UUID) (bool, error) {
	rowsAffected, err := r.q.DeleteDesign(ctx, db.DeleteDesignParams{
		ID:     designID,
		UserID: userID,
	})
	if err != nil {
		return false, fmt.Errorf("q.DeleteDesign: %w", err)
	}

	return rowsAffected > 0, nil
}

func mapDBDesignToDomain(row db.Design) domain.Design {
	return domain.Design{
		ID:        row.ID,
		UserID:    row.UserID,
		Name:      row.Name,
		Data:      json.RawMessage(row.DesignData),
		Thumbnail: row.Thumbnail,
		IsPublic:  row.IsPublic,
		CreatedAt: row.CreatedAt,
	}
}
