package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	BasePrice   decimal.Decimal
	Category    string
	Colors      []string
	Sizes       []string
	ImageURL    string
	IsActive    bool
	Stock       int

	CreatedAt time.Time
}

func (p Product) HasSize(size string) bool {
	return lo.Contains(p.Sizes, size)
}

func (p Product) HasColor(color string) bool {
	return lo.Contains(p.Colors, color)
}

func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return NewValidationError("name", "is required")
	}
	if strings.TrimSpace(p.Category) == "" {
		return NewValidationError("category", "is required")
	}
	if err := ValidatePrice("basePrice", p.BasePrice); err != nil {
		return err
	}
	if len(p.Sizes) == 0 || lo.Contains(p.Sizes, "") {
		return NewValidationError("sizes", "must be a non-empty list of non-empty values")
	}
	if len(p.Colors) == 0 || lo.Contains(p.Colors, "") {
		return NewValidationError("colors", "must be a non-empty list of non-empty values")
	}
	if p.Stock < 0 {
		return NewValidationError("stock", "must not be negative")
	}
	return nil
}

// ProductUpdate holds the fields of a partial product update; nil fields are left untouched.
type ProductUpdate struct {
	Name        *string
	Description *string
	BasePrice   *decimal.Decimal
	Category    *string
	Colors      []string
	Sizes       []string
	ImageURL    *string
	IsActive    *bool
	Stock       *int
}

func (u ProductUpdate) Apply(p Product) Product {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.BasePrice != nil {
		p.BasePrice = *u.BasePrice
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Colors != nil {
		p.Colors = u.Colors
	}
	if u.Sizes != nil {
		p.Sizes = u.Sizes
	}
	if u.ImageURL != nil {
		p.ImageURL = *u.ImageURL
	}
	if u.IsActive != nil {
		p.IsActive = *u.IsActive
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
	}
	return p
}
