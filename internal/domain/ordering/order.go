package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/pyasti/backend/internal/domain/shared"
	"github.com/pyasti/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusCancelled  OrderStatus = "Cancelled"
	OrderStatusCompleted  OrderStatus = "Completed"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusCancelled, OrderStatusCompleted:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal returns true for states that admit no further transitions
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCancelled || s == OrderStatusCompleted
}

// PaymentResult holds the external gateway's capture details
type PaymentResult struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	EmailAddress string `json:"email_address"`
}

// Order is one seller's share of a checkout. A multi-seller cart
// materializes into several orders, one per seller.
type Order struct {
	shared.BaseAggregateRoot
	BuyerID              uuid.UUID
	SellerID             uuid.UUID
	Items                []CartItem
	ShippingAddress      valueobject.Address
	PaymentMethod        string
	PaymentResult        *PaymentResult
	ItemsPrice           decimal.Decimal
	ShippingPrice        *decimal.Decimal
	TaxPrice             *decimal.Decimal
	TotalPrice           decimal.Decimal
	DeliveryOption       DeliveryOption
	ExpectedDeliveryDate time.Time
	Status               OrderStatus
	IsPaid               bool
	PaidAt               *time.Time
	IsDelivered          bool
	DeliveredAt          *time.Time
}

// NewOrder materializes one seller partition into an order using its quote
func NewOrder(buyerID, sellerID uuid.UUID, items []CartItem, address valueobject.Address, paymentMethod string, quote Quote) (*Order, error) {
	if buyerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer is required")
	}
	if sellerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SELLER", "Seller is required")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Order must have at least one item")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		if item.SellerID != sellerID {
			return nil, shared.NewDomainError("INVALID_ITEMS", "Order items must all belong to the order's seller")
		}
	}
	if paymentMethod == "" {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is required")
	}

	order := &Order{
		BaseAggregateRoot:    shared.NewBaseAggregateRoot(),
		BuyerID:              buyerID,
		SellerID:             sellerID,
		Items:                items,
		ShippingAddress:      address,
		PaymentMethod:        paymentMethod,
		ItemsPrice:           quote.ItemsPrice,
		ShippingPrice:        quote.ShippingPrice,
		TaxPrice:             quote.TaxPrice,
		TotalPrice:           quote.TotalPrice,
		DeliveryOption:       quote.DeliveryOption,
		ExpectedDeliveryDate: quote.ExpectedDeliveryDate,
		Status:               OrderStatusProcessing,
	}

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// AttachPaymentIntent stores the gateway's order reference ahead of
// capture. Paid and cancelled orders are rejected.
func (o *Order) AttachPaymentIntent(result PaymentResult) error {
	if o.IsPaid {
		return shared.NewDomainError("INVALID_STATE", "Order is already paid")
	}
	if o.Status == OrderStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot pay a cancelled order")
	}

	o.PaymentResult = &result
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// MarkPaid records a successful payment capture.
// Already-paid and cancelled orders are rejected.
func (o *Order) MarkPaid(result PaymentResult) error {
	if o.IsPaid {
		return shared.NewDomainError("INVALID_STATE", "Order is already paid")
	}
	if o.Status == OrderStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot pay a cancelled order")
	}

	now := time.Now()
	o.IsPaid = true
	o.PaidAt = &now
	o.PaymentResult = &result
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderPaidEvent(o))

	return nil
}

// MarkDelivered records delivery and completes the order.
// Only paid orders can be delivered.
func (o *Order) MarkDelivered() error {
	if !o.IsPaid {
		return shared.NewDomainError("INVALID_STATE", "Order is not paid")
	}
	if o.IsDelivered {
		return shared.NewDomainError("INVALID_STATE", "Order is already delivered")
	}
	if o.Status == OrderStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot deliver a cancelled order")
	}

	now := time.Now()
	o.IsDelivered = true
	o.DeliveredAt = &now
	o.Status = OrderStatusCompleted
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderDeliveredEvent(o))

	return nil
}

// Cancel cancels the order. Terminal orders are rejected.
func (o *Order) Cancel() error {
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Order is already closed")
	}

	now := time.Now()
	o.Status = OrderStatusCancelled
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderCancelledEvent(o))

	return nil
}

// TotalQuantity returns the number of units across all items
func (o *Order) TotalQuantity() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}
