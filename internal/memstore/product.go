package memstore

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/samber/lo"
)

type productRepository struct {
	v *view
}

func (r *productRepository) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	var product domain.Product

	err := r.v.read(func(st *state) error {
		p, ok := st.products[productID]
		if !ok {
			return fmt.Errorf("product[%s]: %w", productID, domain.ErrNotFound)
		}
		product = copyProduct(p)
		return nil
	})

	return product, err
}

func (r *productRepository) GetProducts(ctx context.Context, productIDs []uuid.UUID) ([]domain.Product, error) {
	var products []domain.Product

	err := r.v.read(func(st *state) error {
		for _, id := range lo.Uniq(productIDs) {
			if p, ok := st.products[id]; ok {
				products = append(products, copyProduct(p))
			}
		}
		return nil
	})

	return products, err
}

func (r *productRepository) ListActiveProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product

	err := r.v.read(func(st *state) error {
		for _, p := range st.products {
			if p.IsActive {
				products = append(products, copyProduct(p))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(products, func(a, b domain.Product) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return slices.Compare(a.ID[:], b.ID[:])
	})

	return products, nil
}

func (r *productRepository) InsertProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if err := product.Validate(); err != nil {
		return domain.Product{}, fmt.Errorf("product.Validate: %w", err)
	}

	var inserted domain.Product

	err := r.v.write(func(st *state) error {
		inserted = copyProduct(product)
		inserted.ID = uuid.New()
		inserted.CreatedAt = r.v.now(st)

		st.products[inserted.ID] = inserted
		return nil
	})
	if err != nil {
		return domain.Product{}, err
	}

	return copyProduct(inserted), nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.ID == uuid.Nil {
		return domain.Product{}, fmt.Errorf("productID is empty")
	}
	if err := product.Validate(); err != nil {
		return domain.Product{}, fmt.Errorf("product.Validate: %w", err)
	}

	var updated domain.Product

	err := r.v.write(func(st *state) error {
		existing, ok := st.products[product.ID]
		if !ok {
			return fmt.Errorf("product[%s]: %w", product.ID, domain.ErrNotFound)
		}

		updated = copyProduct(product)
		updated.CreatedAt = existing.CreatedAt

		st.products[updated.ID] = updated
		return nil
	})
	if err != nil {
		return domain.Product{}, err
	}

	return copyProduct(updated), nil
}

func (r *productRepository) DeactivateProduct(ctx context.Context, productID uuid.UUID) (bool, error) {
	var found bool

	err := r.v.write(func(st *state) error {
		p, ok := st.products[productID]
		if !ok {
			return nil
		}

		p.IsActive = false
		st.products[productID] = p
		found = true
		return nil
	})

	return found, err
}

func copyProduct(p domain.Product) domain.Product {
	p.Colors = slices.Clone(p.Colors)
	p.Sizes = slices.Clone(p.Sizes)
	return p
}
