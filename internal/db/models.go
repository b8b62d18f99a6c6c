package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartLine struct {
	ID          uuid.UUID
	UserID      string
	ProductID   uuid.NullUUID
	DesignID    uuid.NullUUID
	Quantity    int32
	Size        string
	Color       string
	CustomPrice decimal.NullDecimal
	CreatedAt   time.Time
}

type Order struct {
	ID              uuid.UUID
	UserID          string
	TotalAmount     decimal.Decimal
	TotalCurrency   string
	Status          string
	ShippingAddress []byte
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type OrderLine struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	ProductID     uuid.NullUUID
	DesignID      uuid.NullUUID
	Quantity      int32
	Size          string
	Color         string
	PriceAmount   decimal.Decimal
	PriceCurrency string
}

type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	BasePrice   decimal.Decimal
	Category    string
	Colors      []string
	Sizes       []string
	ImageUrl    string
	IsActive    bool
	Stock       int32
	CreatedAt   time.Time
}

type Session struct {
	Key       string
	Data      []byte
	ExpiresAt time.Time
}

type WishlistItem struct {
	ID        uuid.UUID
	UserID    string
	ProductID uuid.UUID
	CreatedAt time.Time
}

type Design struct {
	ID         uuid.UUID
	UserID     string
	Name       string
	DesignData []byte
	Thumbnail  string
	IsPublic   bool
	CreatedAt  time.Time
}
