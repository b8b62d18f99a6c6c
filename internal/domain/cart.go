package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxQuantity is the largest quantity a single line may hold; it matches the
// INTEGER column the Postgres backend stores quantities in.
const MaxQuantity = math.MaxInt32

// CartLine is one row of a user's pending cart. ProductID is nil for a pure
// custom design line.
type CartLine struct {
	ID          uuid.UUID
	UserID      string
	ProductID   *uuid.UUID
	DesignID    *uuid.UUID
	Quantity    int
	Size        string
	Color       string
	CustomPrice *decimal.Decimal

	CreatedAt time.Time
}

// LineKey identifies the cart line that additions of the same product
// configuration accumulate into.
type LineKey struct {
	UserID    string
	ProductID uuid.UUID
	Size      string
	Color     string
}

func (k LineKey) String() string {
	return k.UserID + "/" + k.ProductID.String() + "/" + k.Size + "/" + k.Color
}

// MergeKey returns false for lines without a product, those never merge.
func (l CartLine) MergeKey() (LineKey, bool) {
	if l.ProductID == nil {
		return LineKey{}, false
	}

	return LineKey{
		UserID:    l.UserID,
		ProductID: *l.ProductID,
		Size:      l.Size,
		Color:     l.Color,
	}, true
}

// Validate checks the line on its own. Custom prices follow the same rule as
// catalog prices: non-negative with at most PriceScale fractional digits.
func (l CartLine) Validate() error {
	if strings.TrimSpace(l.UserID) == "" {
		return NewValidationError("userId", "is required")
	}
	if l.Quantity < 1 {
		return NewValidationError("quantity", "must be at least 1")
	}
	if l.Quantity > MaxQuantity {
		return errQuantityTooLarge()
	}
	if strings.TrimSpace(l.Size) == "" {
		return NewValidationError("size", "is required")
	}
	if strings.TrimSpace(l.Color) == "" {
		return NewValidationError("color", "is required")
	}
	if l.CustomPrice != nil {
		if err := ValidatePrice("customPrice", *l.CustomPrice); err != nil {
			return err
		}
	}
	return nil
}

// AddQuantity returns the line with n more items. It fails instead of letting
// the merged quantity exceed MaxQuantity.
func (l CartLine) AddQuantity(n int) (CartLine, error) {
	if n < 1 {
		return l, NewValidationError("quantity", "must be at least 1")
	}
	if n > MaxQuantity-l.Quantity {
		return l, errQuantityTooLarge()
	}

	l.Quantity += n
	return l, nil
}

func errQuantityTooLarge() *ValidationError {
	return NewValidationError("quantity", fmt.Sprintf("must be at most %d", MaxQuantity))
}

// ValidateAgainst checks size and color against the product's declared sets.
func (l CartLine) ValidateAgainst(p Product) error {
	if !p.HasSize(l.Size) {
		return NewValidationError("size", "is not offered for product "+p.ID.String())
	}
	if !p.HasColor(l.Color) {
		return NewValidationError("color", "is not offered for product "+p.ID.String())
	}
	return nil
}

// CartLineUpdate holds the fields of a partial line update; nil fields are left untouched.
type CartLineUpdate struct {
	Quantity    *int
	Size        *string
	Color       *string
	CustomPrice *decimal.Decimal
}

func (u CartLineUpdate) IsEmpty() bool {
	return u.Quantity == nil && u.Size == nil && u.Color == nil && u.CustomPrice == nil
}

func (u CartLineUpdate) Apply(l CartLine) CartLine {
	if u.Quantity != nil {
		l.Quantity = *u.Quantity
	}
	if u.Size != nil {
		l.Size = *u.Size
	}
	if u.Color != nil {
		l.Color = *u.Color
	}
	if u.CustomPrice != nil {
		price := *u.CustomPrice
		l.CustomPrice = &price
	}
	return l
}
