package memstore

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/samber/lo"
)

type cartRepository struct {
	v *view
}

func (r *cartRepository) ListLines(ctx context.Context, userID string) ([]domain.CartLine, error) {
	var lines []domain.CartLine

	err := r.v.read(func(st *state) error {
		for _, l := range st.cartLines {
			if l.UserID == userID {
				lines = append(lines, copyCartLine(l))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(lines, func(a, b domain.CartLine) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return slices.Compare(a.ID[:], b.ID[:])
	})

	return lines, nil
}

func (r *cartRepository) GetLine(ctx context.Context, lineID uuid.UUID) (domain.CartLine, error) {
	var line domain.CartLine

	err := r.v.read(func(st *state) error {
		l, ok := st.cartLines[lineID]
		if !ok {
			return fmt.Errorf("cart line[%s]: %w", lineID, domain.ErrNotFound)
		}
		line = copyCartLine(l)
		return nil
	})

	return line, err
}

func (r *cartRepository) FindLineByKey(ctx context.Context, key domain.LineKey) (domain.CartLine, bool, error) {
	var (
		line  domain.CartLine
		found bool
	)

	err := r.v.read(func(st *state) error {
		line, found = findByKey(st, key, uuid.Nil)
		return nil
	})

	return line, found, err
}

func (r *cartRepository) InsertLine(ctx context.Context, line domain.CartLine) (domain.CartLine, error) {
	var inserted domain.CartLine

	err := r.v.write(func(st *state) error {
		if key, ok := line.MergeKey(); ok {
			if _, taken := findByKey(st, key, uuid.Nil); taken {
				return fmt.Errorf("cart line[%s]: %w", key, domain.ErrDuplicateLine)
			}
		}

		inserted = copyCartLine(line)
		inserted.ID = uuid.New()
		inserted.CreatedAt = r.v.now(st)

		st.cartLines[inserted.ID] = inserted
		return nil
	})
	if err != nil {
		return domain.CartLine{}, err
	}

	return copyCartLine(inserted), nil
}

func (r *cartRepository) UpdateLine(ctx context.Context, line domain.CartLine) (domain.CartLine, error) {
	var updated domain.CartLine

	err := r.v.write(func(st *state) error {
		existing, ok := st.cartLines[line.ID]
		if !ok {
			return fmt.Errorf("cart line[%s]: %w", line.ID, domain.ErrNotFound)
		}

		// identity, owner, product and design are fixed at insert time
		updated = copyCartLine(existing)
		updated.Quantity = line.Quantity
		updated.Size = line.Size
		updated.Color = line.Color
		updated.CustomPrice = copyPtr(line.CustomPrice)

		if key, ok := updated.MergeKey(); ok {
			if _, taken := findByKey(st, key, updated.ID); taken {
				return fmt.Errorf("cart line[%s]: %w", key, domain.ErrDuplicateLine)
			}
		}

		st.cartLines[updated.ID] = updated
		return nil
	})
	if err != nil {
		return domain.CartLine{}, err
	}

	return copyCartLine(updated), nil
}

func (r *cartRepository) DeleteLine(ctx context.Context, userID string, lineID uuid.UUID) (bool, error) {
	var found bool

	err := r.v.write(func(st *state) error {
		l, ok := st.cartLines[lineID]
		if !ok || l.UserID != userID {
			return nil
		}

		delete(st.cartLines, lineID)
		found = true
		return nil
	})

	return found, err
}

func (r *cartRepository) ClearCart(ctx context.Context, userID string) (int64, error) {
	var removed int64

	err := r.v.write(func(st *state) error {
		for id, l := range st.cartLines {
			if l.UserID == userID {
				delete(st.cartLines, id)
				removed++
			}
		}
		return nil
	})

	return removed, err
}

// findByKey looks up the line holding key, ignoring the line with id except.
func findByKey(st *state, key domain.LineKey, except uuid.UUID) (domain.CartLine, bool) {
	for _, l := range st.cartLines {
		if l.ID == except {
			continue
		}
		if lk, ok := l.MergeKey(); ok && lk == key {
			return copyCartLine(l), true
		}
	}
	return domain.CartLine{}, false
}

func copyCartLine(l domain.CartLine) domain.CartLine {
	l.ProductID = copyPtr(l.ProductID)
	l.DesignID = copyPtr(l.DesignID)
	l.CustomPrice = copyPtr(l.CustomPrice)
	return l
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	return lo.ToPtr(*p)
}
