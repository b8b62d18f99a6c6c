package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// PriceScale is the number of fractional digits stored for any price.
const PriceScale = 2

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal, unit currency.Unit) Money {
	return Money{Amount: amount, Currency: unit}
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(PriceScale), m.Currency.String())
}

// ValidatePrice reports a ValidationError for negative prices or prices with
// more fractional digits than PriceScale.
func ValidatePrice(field string, price decimal.Decimal) error {
	if price.IsNegative() {
		return NewValidationError(field, "must not be negative")
	}
	if !price.Equal(price.Round(PriceScale)) {
		return NewValidationError(field, fmt.Sprintf("must have at most %d decimal places", PriceScale))
	}
	return nil
}
