package memstore

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/samber/lo"
)

type orderRepository struct {
	v *view
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	var order domain.Order

	err := r.v.read(func(st *state) error {
		o, ok := st.orders[orderID]
		if !ok {
			return fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
		}

		order = o
		order.Lines = lo.Map(st.orderLines[orderID], func(l domain.OrderLine, _ int) domain.OrderLine {
			return copyOrderLine(l)
		})
		return nil
	})

	return order, err
}

// GetOrderForUpdate needs no row lock here: transactions already run one at a time.
func (r *orderRepository) GetOrderForUpdate(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	var order domain.Order

	err := r.v.read(func(st *state) error {
		o, ok := st.orders[orderID]
		if !ok {
			return fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
		}
		order = o
		return nil
	})

	return order, err
}

func (r *orderRepository) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	return r.collect(func(o domain.Order) bool {
		return o.UserID == userID
	})
}

func (r *orderRepository) SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("filter.Validate: %w", err)
	}

	return r.collect(func(o domain.Order) bool {
		if len(filter.IDs) > 0 && !lo.Contains(filter.IDs, o.ID) {
			return false
		}
		if len(filter.UserIDs) > 0 && !lo.Contains(filter.UserIDs, o.UserID) {
			return false
		}
		if len(filter.Statuses) > 0 && !lo.Contains(filter.Statuses, o.Status) {
			return false
		}
		if filter.CreatedAt != nil && !filter.CreatedAt.Contains(o.CreatedAt) {
			return false
		}
		return true
	})
}

// collect returns matching orders without lines, most recent first.
func (r *orderRepository) collect(match func(domain.Order) bool) ([]domain.Order, error) {
	var orders []domain.Order

	err := r.v.read(func(st *state) error {
		for _, o := range st.orders {
			if match(o) {
				orders = append(orders, o)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(orders, func(a, b domain.Order) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return slices.Compare(b.ID[:], a.ID[:])
	})

	return orders, nil
}

func (r *orderRepository) InsertOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	if len(order.Lines) == 0 {
		return domain.Order{}, errors.New("no lines in order")
	}

	var inserted domain.Order

	err := r.v.write(func(st *state) error {
		now := r.v.now(st)

		inserted = order
		inserted.ID = uuid.New()
		inserted.CreatedAt = now
		inserted.UpdatedAt = now
		if inserted.Status == "" {
			inserted.Status = domain.OrderStatusPending
		}

		lines := make([]domain.OrderLine, 0, len(order.Lines))
		for _, l := range order.Lines {
			l = copyOrderLine(l)
			l.ID = uuid.New()
			l.OrderID = inserted.ID
			lines = append(lines, l)
		}

		inserted.Lines = nil
		st.orders[inserted.ID] = inserted
		st.orderLines[inserted.ID] = lines

		inserted.Lines = lo.Map(lines, func(l domain.OrderLine, _ int) domain.OrderLine {
			return copyOrderLine(l)
		})
		return nil
	})
	if err != nil {
		return domain.Order{}, err
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

	var updated domain.Order

	err := r.v.write(func(st *state) error {
		o, ok := st.orders[orderID]
		if !ok {
			return fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
		}

		o.Status = status
		o.UpdatedAt = r.v.now(st)
		st.orders[orderID] = o

		updated = o
		return nil
	})

	return updated, err
}

func copyOrderLine(l domain.OrderLine) domain.OrderLine {
	l.ProductID = copyPtr(l.ProductID)
	l.DesignID = copyPtr(l.DesignID)
	return l
}
