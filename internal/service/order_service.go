package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/pricing"
	"go.uber.org/zap"
)

type OrderService struct {
	store    port.Store
	resolver *pricing.Resolver
	locks    *UserLocks
	logger   *zap.Logger
}

func NewOrderService(store port.Store, resolver *pricing.Resolver, locks *UserLocks, logger *zap.Logger) *OrderService {
	return &OrderService{
		store:    store,
		resolver: resolver,
		locks:    locks,
		logger:   logger.Named("order"),
	}
}

// PlaceOrder turns the user's cart into a pending order with frozen line
// prices and empties the cart. Either all of it happens or none of it does.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, address domain.ShippingAddress) (domain.Order, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.Order{}, domain.NewValidationError("userId", "is required")
	}
	if err := address.Validate(); err != nil {
		return domain.Order{}, err
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	var order domain.Order

	err := s.store.WithinTx(ctx, func(tx port.Store) error {
		lines, err := tx.Carts().ListLines(ctx, userID)
		if err != nil {
			return fmt.Errorf("carts.ListLines: %w", err)
		}
		if len(lines) == 0 {
			return domain.ErrEmptyCart
		}

		lookup, err := productLookup(ctx, tx.Products(), lines)
		if err != nil {
			return err
		}

		order, err = tx.Orders().InsertOrder(ctx, s.materialize(userID, address, lines, lookup))
		if err != nil {
			return fmt.Errorf("orders.InsertOrder: %w", err)
		}

		if _, err := tx.Carts().ClearCart(ctx, userID); err != nil {
			return fmt.Errorf("carts.ClearCart: %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	s.logger.Info("order_placed",
		zap.String("user_id", userID),
		zap.Stringer("order_id", order.ID),
		zap.Stringer("total", order.Total),
		zap.Int("lines", len(order.Lines)),
	)

	return order, nil
}

func (s *OrderService) materialize(userID string, address domain.ShippingAddress, lines []domain.CartLine, lookup pricing.ProductLookup) domain.Order {
	unit := s.resolver.Currency()

	order := domain.Order{
		UserID:          userID,
		Status:          domain.OrderStatusPending,
		ShippingAddress: address,
		Total:           domain.NewMoney(s.resolver.CartTotal(lines, lookup), unit),
	}

	for _, line := range lines {
		var product *domain.Product
		if line.ProductID != nil {
			if p, ok := lookup(*line.ProductID); ok {
				product = &p
			}
		}

		order.Lines = append(order.Lines, domain.OrderLine{
			ProductID: line.ProductID,
			DesignID:  line.DesignID,
			Quantity:  line.Quantity,
			Size:      line.Size,
			Color:     line.Color,
			Price:     domain.NewMoney(s.resolver.UnitPrice(line, product), unit),
		})
	}

	return order
}

func (s *OrderService) GetOrderWithLines(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	order, err := s.store.Orders().GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.GetOrder: %w", err)
	}

	return order, nil
}

// GetUserOrder reports orders of other users as not found.
func (s *OrderService) GetUserOrder(ctx context.Context, userID string, orderID uuid.UUID) (domain.Order, error) {
	order, err := s.GetOrderWithLines(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	if order.UserID != userID {
		return domain.Order{}, fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
	}

	return order, nil
}

// ListOrders returns the user's orders without lines, most recent first.
func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.store.Orders().ListOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("orders.ListOrders: %w", err)
	}

	return orders, nil
}

func (s *OrderService) SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if err := filter.Validate(); err != nil {
		return nil, domain.NewValidationError("filter", err.Error())
	}

	orders, err := s.store.Orders().SearchOrders(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("orders.SearchOrders: %w", err)
	}

	return orders, nil
}

// SetStatus moves the order along pending, processing, shipped, delivered.
// Cancelling is allowed until the order is delivered. Setting the current
// status again changes nothing.
func (s *OrderService) SetStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (domain.Order, error) {
	var (
		order    domain.Order
		previous domain.OrderStatus
	)

	err := s.store.WithinTx(ctx, func(tx port.Store) error {
		current, err := tx.Orders().GetOrderForUpdate(ctx, orderID)
		if err != nil {
			return fmt.Errorf("orders.GetOrderForUpdate: %w", err)
		}
		previous = current.Status

		if err := current.Status.ValidateTransition(status); err != nil {
			return err
		}

		if current.Status != status {
			if _, err := tx.Orders().UpdateOrderStatus(ctx, orderID, status); err != nil {
				return fmt.Errorf("orders.UpdateOrderStatus: %w", err)
			}
		}

		order, err = tx.Orders().GetOrder(ctx, orderID)
		if err != nil {
			return fmt.Errorf("orders.GetOrder: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	if previous != status {
		s.logger.Info("order_status_changed",
			zap.Stringer("order_id", orderID),
			zap.String("from", string(previous)),
			zap.String("to", string(status)),
		)
	}

	return order, nil
}
