package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type DesignInput struct {
	Name      string
	Data      json.RawMessage
	Thumbnail string
	IsPublic  bool
}

// DesignService manages saved designs. Only the owner may change or delete a
// design; public designs are readable by everyone.
type DesignService struct {
	store  port.Store
	locks  *UserLocks
	logger *zap.Logger
}

func NewDesignService(store port.Store, locks *UserLocks, logger *zap.Logger) *DesignService {
	return &DesignService{
		store:  store,
		locks:  locks,
		logger: logger.Named("design"),
	}
}

func (s *DesignService) Create(ctx context.Context, userID string, in DesignInput) (domain.Design, error) {
	design := domain.Design{
		UserID:    userID,
		Name:      in.Name,
		Data:      in.Data,
		Thumbnail: in.Thumbnail,
		IsPublic:  in.IsPublic,
	}
	if err := design.Validate(); err != nil {
		return domain.Design{}, err
	}

	created, err := s.store.Designs().InsertDesign(ctx, design)
	if err != nil {
		return domain.Design{}, fmt.Errorf("designs.InsertDesign: %w", err)
	}

	s.logger.Info("design_created",
		zap.String("user_id", userID),
		zap.Stringer("design_id", created.ID),
	)

	return created, nil
}

// Get hides private designs of other users as not found.
func (s *DesignService) Get(ctx context.Context, userID string, designID uuid.UUID) (domain.Design, error) {
	design, err := s.store.Designs().GetDesign(ctx, designID)
	if err != nil {
		return domain.Design{}, fmt.Errorf("designs.GetDesign: %w", err)
	}

	if !design.VisibleTo(userID) {
		return domain.Design{}, fmt.Errorf("design[%s]: %w", designID, domain.ErrNotFound)
	}

	return design, nil
}

func (s *DesignService) List(ctx context.Context, userID string) ([]domain.Design, error) {
	designs, err := s.store.Designs().ListDesigns(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("designs.ListDesigns: %w", err)
	}

	return designs, nil
}

func (s *DesignService) Update(ctx context.Context, userID string, designID uuid.UUID, upd domain.DesignUpdate) (domain.Design, error) {
	var result domain.Design

	err := s.store.WithinTx(ctx, func(tx port.Store) error {
		existing, err := ownedDesign(ctx, tx.Designs(), userID, designID)
		if err != nil {
			return err
		}

		updated := upd.Apply(existing)
		if err := updated.Validate(); err != nil {
			return err
		}

		result, err = tx.Designs().UpdateDesign(ctx, updated)
		if err != nil {
			return fmt.Errorf("designs.UpdateDesign: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Design{}, err
	}

	s.logger.Info("design_updated",
		zap.String("user_id", userID),
		zap.Stringer("design_id", designID),
	)

	return result, nil
}

// Delete also drops the owner's cart lines for the design. It reports false
// when the user owns no such design.
func (s *DesignService) Delete(ctx context.Context, userID string, designID uuid.UUID) (bool, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	var (
		deleted      bool
		removedLines int
	)

	err := s.store.WithinTx(ctx, func(tx port.Store) error {
		lines, err := tx.Carts().ListLines(ctx, userID)
		if err != nil {
			return fmt.Errorf("carts.ListLines: %w", err)
		}

		deleted, err = tx.Designs().DeleteDesign(ctx, userID, designID)
		if err != nil {
			return fmt.Errorf("designs.DeleteDesign: %w", err)
		}
		if !deleted {
			return nil
		}

		for _, line := range lines {
			if lo.FromPtr(line.DesignID) != designID {
				continue
			}
			if _, err := tx.Carts().DeleteLine(ctx, userID, line.ID); err != nil {
				return fmt.Errorf("carts.DeleteLine: %w", err)
			}
			removedLines++
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	if deleted {
		s.logger.Info("design_deleted",
			zap.String("user_id", userID),
			zap.Stringer("design_id", designID),
			zap.Int("removed_cart_lines", removedLines),
		)
	}

	return deleted, nil
}

// ownedDesign reports designs of other users as absent.
func ownedDesign(ctx context.Context, designs port.DesignRepository, userID string, designID uuid.UUID) (domain.Design, error) {
	design, err := designs.GetDesign(ctx, designID)
	if err != nil {
		return domain.Design{}, fmt.Errorf("designs.GetDesign: %w", err)
	}

	if design.UserID != userID {
		return domain.Design{}, fmt.Errorf("design[%s]: %w", designID, domain.ErrNotFound)
	}

	return design, nil
}
