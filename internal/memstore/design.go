package memstore

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type designRepository struct {
	v *view
}

func (r *designRepository) GetDesign(ctx context.Context, designID uuid.UUID) (domain.Design, error) {
	var design domain.Design

	err := r.v.read(func(st *state) error {
		d, ok := st.designs[designID]
		if !ok {
			return fmt.Errorf("design[%s]: %w", designID, domain.ErrNotFound)
		}
		design = copyDesign(d)
		return nil
	})

	return design, err
}

func (r *designRepository) ListDesigns(ctx context.Context, userID string) ([]domain.Design, error) {
	var designs []domain.Design

	err := r.v.read(func(st *state) error {
		for _, d := range st.designs {
			if d.UserID == userID {
				designs = append(designs, copyDesign(d))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(designs, func(a, b domain.Design) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return designs, nil
}

func (r *designRepository) InsertDesign(ctx context.Context, design domain.Design) (domain.Design, error) {
	if err := design.Validate(); err != nil {
		return domain.Design{}, fmt.Errorf("design.Validate: %w", err)
	}

	var inserted domain.Design

	err := r.v.write(func(st *state) error {
		inserted = copyDesign(design)
		inserted.ID = uuid.New()
		inserted.CreatedAt = r.v.now(st)

		st.designs[inserted.ID] = inserted
		return nil
	})
	if err != nil {
		return domain.Design{}, err
	}

	return copyDesign(inserted), nil
}

func (r *designRepository) UpdateDesign(ctx context.Context, design domain.Design) (domain.Design, error) {
	if design.ID == uuid.Nil {
		return domain.Design{}, fmt.Errorf("designID is empty")
	}
	if err := design.Validate(); err != nil {
		return domain.Design{}, fmt.Errorf("design.Validate: %w", err)
	}

	var updated domain.Design

	err := r.v.write(func(st *state) error {
		existing, ok := st.designs[design.ID]
		if !ok {
			return fmt.Errorf("design[%s]: %w", design.ID, domain.ErrNotFound)
		}

		// owner and creation time are fixed at insert
		updated = copyDesign(design)
		updated.UserID = existing.UserID
		updated.CreatedAt = existing.CreatedAt

		st.designs[updated.ID] = updated
		return nil
	})
	if err != nil {
		return domain.Design{}, err
	}

	return copyDesign(updated), nil
}

func (r *designRepository) DeleteDesign(ctx context.Context, userID string, designID uuid.UUID) (bool, error) {
	var found bool

	err := r.v.write(func(st *state) error {
		d, ok := st.designs[designID]
		if !ok || d.UserID != userID {
			return nil
		}

		delete(st.designs, designID)
		found = true
		return nil
	})

	return found, err
}

func copyDesign(d domain.Design) domain.Design {
	d.Data = slices.Clone(d.Data)
	return d
}
