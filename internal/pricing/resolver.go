// Package pricing resolves cart line prices. All arithmetic is decimal and
// amounts are never rounded while summing.
package pricing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// DefaultFallbackPrice is the list price of a line whose product is unknown.
var DefaultFallbackPrice = decimal.RequireFromString("25.99")

// ProductLookup must not have side effects.
type ProductLookup func(productID uuid.UUID) (domain.Product, bool)

// LookupFromProducts indexes products by id.
func LookupFromProducts(products []domain.Product) ProductLookup {
	byID := make(map[uuid.UUID]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	return func(productID uuid.UUID) (domain.Product, bool) {
		p, ok := byID[productID]
		return p, ok
	}
}

type Resolver struct {
	currency currency.Unit
	fallback decimal.Decimal
}

func NewResolver(unit currency.Unit, fallback decimal.Decimal) (*Resolver, error) {
	if err := domain.ValidatePrice("fallbackPrice", fallback); err != nil {
		return nil, fmt.Errorf("domain.ValidatePrice: %w", err)
	}

	return &Resolver{
		currency: unit,
		fallback: fallback,
	}, nil
}

func (r *Resolver) Currency() currency.Unit {
	return r.currency
}

// UnitPrice returns the custom price when set, else the product's base price,
// else the fallback list price. product is nil when the line has no product
// or the catalog does not know it.
func (r *Resolver) UnitPrice(line domain.CartLine, product *domain.Product) decimal.Decimal {
	switch {
	case line.CustomPrice != nil:
		return *line.CustomPrice
	case product != nil:
		return product.BasePrice
	default:
		return r.fallback
	}
}

func (r *Resolver) LineTotal(line domain.CartLine, product *domain.Product) decimal.Decimal {
	return r.UnitPrice(line, product).Mul(decimal.NewFromInt(int64(line.Quantity)))
}

// CartTotal is zero for an empty cart.
func (r *Resolver) CartTotal(lines []domain.CartLine, lookup ProductLookup) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(r.LineTotal(line, r.product(line, lookup)))
	}
	return total
}

// Price resolves every line and the cart total in one pass.
func (r *Resolver) Price(lines []domain.CartLine, lookup ProductLookup) Summary {
	summary := Summary{
		Total: domain.NewMoney(decimal.Zero, r.currency),
	}

	for _, line := range lines {
		product := r.product(line, lookup)

		priced := PricedLine{
			Line:      line,
			UnitPrice: domain.NewMoney(r.UnitPrice(line, product), r.currency),
			Total:     domain.NewMoney(r.LineTotal(line, product), r.currency),
		}
		if product != nil {
			priced.ProductName = product.Name
		}

		summary.Lines = append(summary.Lines, priced)
		summary.Total.Amount = summary.Total.Amount.Add(priced.Total.Amount)
		summary.ItemCount += line.Quantity
	}

	return summary
}

func (r *Resolver) product(line domain.CartLine, lookup ProductLookup) *domain.Product {
	if line.ProductID == nil || lookup == nil {
		return nil
	}

	p, ok := lookup(*line.ProductID)
	if !ok {
		return nil
	}
	return &p
}

type PricedLine struct {
	Line        domain.CartLine
	ProductName string
	UnitPrice   domain.Money
	Total       domain.Money
}

// Summary is a priced cart.
type Summary struct {
	Lines     []PricedLine
	ItemCount int
	Total     domain.Money
}
