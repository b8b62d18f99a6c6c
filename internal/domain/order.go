package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is immutable after creation except for its Status.
type Order struct {
	ID              uuid.UUID
	UserID          string
	Total           Money
	Status          OrderStatus
	ShippingAddress ShippingAddress
	Lines           []OrderLine

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderLine is a frozen copy of a cart line; Price never references the live catalog.
type OrderLine struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID *uuid.UUID
	DesignID  *uuid.UUID
	Quantity  int
	Size      string
	Color     string
	Price     Money
}

func (l OrderLine) Total() decimal.Decimal {
	return l.Price.Amount.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// LinesTotal sums price × quantity over the order lines.
func (o Order) LinesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.Total())
	}
	return total
}
