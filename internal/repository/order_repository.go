package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/samber/lo"
	"golang.org/x/text/currency"
)

type orderRepository struct {
	q    *db.Queries
	dbtx db.DBTX
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return newOrderRepository(pool)
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return newOrderRepository(tx)
}

func newOrderRepository(dbtx db.DBTX) *orderRepository {
	return &orderRepository{
		q:    db.New(dbtx),
		dbtx: dbtx,
	}
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	var o domain.Order

	order, err := withTx(ctx, r.dbtx, func(tx pgx.Tx) (domain.Order, error) {
		q := db.New(tx)

		dbOrder, err := q.GetOrder(ctx, orderID)
		if err != nil {
			return o, mapNoRows("q.GetOrder", err)
		}

		dbOrderLines, err := q.GetOrderLines(ctx, orderID)
		if err != nil {
			return o, fmt.Errorf("q.GetOrderLines: %w", err)
		}

		domainOrder, err := mapDBOrderToDomain(dbOrder, dbOrderLines)
		if err != nil {
			return o, fmt.Errorf("mapDBOrderToDomain: %w", err)
		}

		return domainOrder, nil
	})
	if err != nil {
		return o, fmt.Errorf("withTx: %w", err)
	}

	return order, nil
}

func (r *orderRepository) GetOrderForUpdate(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	dbOrder, err := r.q.GetOrderForUpdate(ctx, orderID)
	if err != nil {
		return domain.Order{}, mapNoRows("q.GetOrderForUpdate", err)
	}

	order, err := mapDBOrderToDomain(dbOrder, nil)
	if err != nil {
		return domain.Order{}, fmt.Errorf("mapDBOrderToDomain: %w", err)
	}

	return order, nil
}

func (r *orderRepository) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	dbOrders, err := r.q.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("q.ListOrdersByUser: %w", err)
	}

	orders, err := mapDBOrdersToDomain(dbOrders)
	if err != nil {
		return nil, fmt.Errorf("mapDBOrdersToDomain: %w", err)
	}

	return orders, nil
}

func mapDomainOrderFilterToDBFilter(filter domain.OrderFilter) db.SearchOrdersParams {
	statuses := lo.Map(filter.Statuses, func(status domain.OrderStatus, _ int) string {
		return string(status)
	})

	var createdAfter, createdBefore *time.Time

	if filter.CreatedAt != nil {
		createdAfter = filter.CreatedAt.After
		createdBefore = filter.CreatedAt.Before
	}

	return db.SearchOrdersParams{
		Ids:           nilSliceIfEmpty(filter.IDs),
		UserIds:       nilSliceIfEmpty(filter.UserIDs),
		Statuses:      nilSliceIfEmpty(statuses),
		CreatedAfter:  createdAfter,
		CreatedBefore: createdBefore,
	}
}

func (r *orderRepository) SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("filter.Validate: %w", err)
	}

	dbOrders, err := r.q.SearchOrders(ctx, mapDomainOrderFilterToDBFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("q.SearchOrders: %w", err)
	}

	orders, err := mapDBOrdersToDomain(dbOrders)
	if err != nil {
		return nil, fmt.Errorf("mapDBOrdersToDomain: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) InsertOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	if len(order.Lines) == 0 {
		return domain.Order{}, errors.New("no lines in order")
	}

	address, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return domain.Order{}, fmt.Errorf("json.Marshal: %w", err)
	}

	inserted, err := withTx(ctx, r.dbtx, func(tx pgx.Tx) (domain.Order, error) {
		q := db.New(tx)

		dbOrder, err := q.InsertOrder(ctx, db.InsertOrderParams{
			UserID:          order.UserID,
			TotalAmount:     order.Total.Amount,
			TotalCurrency:   order.Total.Currency.String(),
			Status:          string(order.Status),
			ShippingAddress: address,
		})
		if err != nil {
			return domain.Order{}, fmt.Errorf("q.InsertOrder: %w", err)
		}

		result, err := mapDBOrderToDomain(dbOrder, nil)
		if err != nil {
			return domain.Order{}, fmt.Errorf("mapDBOrderToDomain: %w", err)
		}

		// TODO: batch the line inserts with pgx.Batch
		for idx, line := range order.Lines {
			quantity, err := toDBQuantity(line.Quantity)
			if err != nil {
				return domain.Order{}, fmt.Errorf("lines[%d]: %w", idx, err)
			}

			lineID, err := q.InsertOrderLine(ctx, db.InsertOrderLineParams{
				OrderID:       dbOrder.ID,
				Position:      int32(idx),
				ProductID:     toNullUUID(line.ProductID),
				DesignID:      toNullUUID(line.DesignID),
				Quantity:      quantity,
				Size:          line.Size,
				Color:         line.Color,
				PriceAmount:   line.Price.Amount,
				PriceCurrency: line.Price.Currency.String(),
			})
			if err != nil {
				return domain.Order{}, fmt.Errorf("q.InsertOrderLine[%d]: %w", idx, err)
			}

			line.ID = lineID
			line.OrderID = dbOrder.ID
			result.Lines = append(result.Lines, line)
		}

		return result, nil
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("withTx: %w", err)
	}

	return inserted, nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (domain.Order, error) {
	if orderID == uuid.Nil {
		return domain.Order{}, fmt.Errorf("orderID is empty")
	}
	if status == "" {
		return domain.Order{}, fmt.Errorf("status is empty")
	}

	dbOrder, err := r.q.UpdateOrderStatus(ctx, db.UpdateOrderStatusParams{
		ID:     orderID,
		Status: string(status),
	})
	if err != nil {
		return domain.Order{}, mapNoRows("q.UpdateOrderStatus", err)
	}

	order, err := mapDBOrderToDomain(dbOrder, nil)
	if err != nil {
		return domain.Order{}, fmt.Errorf("mapDBOrderToDomain: %w", err)
	}

	return order, nil
}

func mapDBOrderLineToDomain(row db.OrderLine) (domain.OrderLine, error) {
	parsedCurrency, err := currency.ParseISO(row.PriceCurrency)
	if err != nil {
		return domain.OrderLine{}, fmt.Errorf("currency[%s] is not valid: %w", row.PriceCurrency, err)
	}

	return domain.OrderLine{
		ID:        row.ID,
		OrderID:   row.OrderID,
		ProductID: fromNullUUID(row.ProductID),
		DesignID:  fromNullUUID(row.DesignID),
		Quantity:  int(row.Quantity),
		Size:      row.Size,
		Color:     row.Color,
		Price:     domain.Money{Amount: row.PriceAmount, Currency: parsedCurrency},
	}, nil
}

func mapDBOrderToDomain(dbOrder db.Order, dbOrderLines []db.OrderLine) (domain.Order, error) {
	var o domain.Order

	parsedCurrency, err := currency.ParseISO(dbOrder.TotalCurrency)
	if err != nil {
		return o, fmt.Errorf("currency[%s] is not valid: %w", dbOrder.TotalCurrency, err)
	}

	status, err := domain.ToOrderStatus(dbOrder.Status)
	if err != nil {
		return o, fmt.Errorf("domain.ToOrderStatus[%s]: %w", dbOrder.Status, err)
	}

	var address domain.ShippingAddress
	if err := json.Unmarshal(dbOrder.ShippingAddress, &address); err != nil {
		return o, fmt.Errorf("json.Unmarshal: %w", err)
	}

	var lines []domain.OrderLine
	for _, row := range dbOrderLines {
		line, err := mapDBOrderLineToDomain(row)
		if err != nil {
			return o, fmt.Errorf("mapDBOrderLineToDomain: %w", err)
		}
		lines = append(lines, line)
	}

	return domain.Order{
		ID:              dbOrder.ID,
		UserID:          dbOrder.UserID,
		Total:           domain.Money{Amount: dbOrder.TotalAmount, Currency: parsedCurrency},
		Status:          status,
		ShippingAddress: address,
		Lines:           lines,
		CreatedAt:       dbOrder.CreatedAt,
		UpdatedAt:       dbOrder.UpdatedAt,
	}, nil
}

func mapDBOrdersToDomain(rows []db.Order) ([]domain.Order, error) {
	var orders []domain.Order

	for _, row := range rows {
		order, err := mapDBOrderToDomain(row, nil)
		if err != nil {
			return nil, fmt.Errorf("mapDBOrderToDomain[%s]: %w", row.ID, err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

func nilSliceIfEmpty[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return s
}
