package order

import (
	"github.com/shopspring/decimal"

	"github.com/shopfront/backend/internal/domain/shared"
)

const AggregateTypeOrder = "Order"

// Event types
const (
	EventTypeOrderCreated       = "order.created"
	EventTypeOrderStatusChanged = "order.status_changed"
)

// OrderCreatedEvent is published when a new order is placed
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerEmail string          `json:"customer_email"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	ItemCount     int             `json:"item_count"`
}

// NewOrderCreatedEvent creates a new order created event
func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, o.ID),
		CustomerEmail:   o.CustomerEmail,
		TotalAmount:     o.TotalAmount,
		ItemCount:       len(o.Lines),
	}
}

// OrderStatusChangedEvent is published when an order changes status
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	PreviousStatus Status `json:"previous_status"`
	NewStatus      Status `json:"new_status"`
}

// NewOrderStatusChangedEvent creates a new status changed event
func NewOrderStatusChangedEvent(o *Order, previous Status) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, o.ID),
		PreviousStatus:  previous,
		NewStatus:       o.Status,
	}
}
