package ordering

import (
	"github.com/google/uuid"
	"github.com/pyasti/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderCreated   = "OrderCreated"
	EventTypeOrderPaid      = "OrderPaid"
	EventTypeOrderDelivered = "OrderDelivered"
	EventTypeOrderCancelled = "OrderCancelled"
)

// OrderCreatedEvent is published when a seller order is materialized
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID       `json:"order_id"`
	BuyerID    uuid.UUID       `json:"buyer_id"`
	SellerID   uuid.UUID       `json:"seller_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
	ItemCount  int             `json:"item_count"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		BuyerID:         order.BuyerID,
		SellerID:        order.SellerID,
		TotalPrice:      order.TotalPrice,
		ItemCount:       len(order.Items),
	}
}

// OrderPaidEvent is published when payment is captured
type OrderPaidEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID       `json:"order_id"`
	BuyerID    uuid.UUID       `json:"buyer_id"`
	SellerID   uuid.UUID       `json:"seller_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CaptureID  string          `json:"capture_id"`
}

// NewOrderPaidEvent creates a new OrderPaidEvent
func NewOrderPaidEvent(order *Order) *OrderPaidEvent {
	captureID := ""
	if order.PaymentResult != nil {
		captureID = order.PaymentResult.ID
	}
	return &OrderPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPaid, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		BuyerID:         order.BuyerID,
		SellerID:        order.SellerID,
		TotalPrice:      order.TotalPrice,
		CaptureID:       captureID,
	}
}

// OrderDeliveredEvent is published when the order is delivered
type OrderDeliveredEvent struct {
	shared.BaseDomainEvent
	OrderID  uuid.UUID `json:"order_id"`
	BuyerID  uuid.UUID `json:"buyer_id"`
	SellerID uuid.UUID `json:"seller_id"`
}

// NewOrderDeliveredEvent creates a new OrderDeliveredEvent
func NewOrderDeliveredEvent(order *Order) *OrderDeliveredEvent {
	return &OrderDeliveredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderDelivered, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		BuyerID:         order.BuyerID,
		SellerID:        order.SellerID,
	}
}

// OrderCancelledEvent is published when the order is cancelled
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID  uuid.UUID `json:"order_id"`
	BuyerID  uuid.UUID `json:"buyer_id"`
	SellerID uuid.UUID `json:"seller_id"`
	WasPaid  bool      `json:"was_paid"`
}

// NewOrderCancelledEvent creates a new OrderCancelledEvent
func NewOrderCancelledEvent(order *Order) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		BuyerID:         order.BuyerID,
		SellerID:        order.SellerID,
		WasPaid:         order.IsPaid,
	}
}
