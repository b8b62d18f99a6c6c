package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrEmptyCart is returned when an order is placed for a cart without lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrDuplicateLine is returned by a store when a cart line insert collides
	// with an existing line for the same merge key.
	ErrDuplicateLine = errors.New("duplicate cart line")
)

// ValidationError describes malformed input. Match it with errors.As.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation: %s", e.Reason)
	}
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
