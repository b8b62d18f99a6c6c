package domain

import (
	"errors"
	"fmt"
)

type OrderStatus string

// remember to add new statuses to the validOrderStatuses map and the transition table
const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var validOrderStatuses = map[OrderStatus]struct{}{
	OrderStatusPending:    {},
	OrderStatusProcessing: {},
	OrderStatusShipped:    {},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// pending -> processing -> shipped -> delivered, cancellation from any
// non-terminal status. Statuses without an entry are terminal.
var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled},
}

func ToOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := validOrderStatuses[status]; ok {
		return status, nil
	}

	return "", errors.New("invalid order status")
}

func OrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}
}

func (s OrderStatus) IsTerminal() bool {
	_, ok := orderStatusTransitions[s]
	return !ok
}

// CanTransitionTo reports whether the status may move to next. Staying in the
// same status is allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}

	for _, allowed := range orderStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

func (s OrderStatus) ValidateTransition(next OrderStatus) error {
	if _, ok := validOrderStatuses[next]; !ok {
		return NewValidationError("status", fmt.Sprintf("%q is not a valid order status", next))
	}
	if !s.CanTransitionTo(next) {
		return NewValidationError("status", fmt.Sprintf("cannot move from %s to %s", s, next))
	}
	return nil
}
