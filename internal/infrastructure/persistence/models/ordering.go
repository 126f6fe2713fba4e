package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pyasti/backend/internal/domain/ordering"
	"github.com/pyasti/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order domain entity.
// Items are stored as a JSONB snapshot; they never change after checkout.
type OrderModel struct {
	AggregateModel
	BuyerID              uuid.UUID               `gorm:"type:uuid;not null;index"`
	SellerID             uuid.UUID               `gorm:"type:uuid;not null;index"`
	Items                []ordering.CartItem     `gorm:"serializer:json;type:jsonb;not null"`
	ShippingAddress      valueobject.Address     `gorm:"type:jsonb"`
	PaymentMethod        string                  `gorm:"type:varchar(50);not null"`
	PaymentResult        *ordering.PaymentResult `gorm:"serializer:json;type:jsonb"`
	ItemsPrice           decimal.Decimal         `gorm:"type:decimal(18,2);not null;default:0"`
	ShippingPrice        *decimal.Decimal        `gorm:"type:decimal(18,2)"`
	TaxPrice             *decimal.Decimal        `gorm:"type:decimal(18,2)"`
	TotalPrice           decimal.Decimal         `gorm:"type:decimal(18,2);not null;default:0"`
	DeliveryOption       ordering.DeliveryOption `gorm:"serializer:json;type:jsonb"`
	ExpectedDeliveryDate time.Time               `gorm:"not null"`
	Status               ordering.OrderStatus    `gorm:"type:varchar(20);not null;default:'Processing';index"`
	IsPaid               bool                    `gorm:"not null;default:false;index"`
	PaidAt               *time.Time
	IsDelivered          bool `gorm:"not null;default:false"`
	DeliveredAt          *time.Time
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *ordering.Order {
	return &ordering.Order{
		BaseAggregateRoot:    m.ToDomainAggregateRoot(),
		BuyerID:              m.BuyerID,
		SellerID:             m.SellerID,
		Items:                m.Items,
		ShippingAddress:      m.ShippingAddress,
		PaymentMethod:        m.PaymentMethod,
		PaymentResult:        m.PaymentResult,
		ItemsPrice:           m.ItemsPrice,
		ShippingPrice:        m.ShippingPrice,
		TaxPrice:             m.TaxPrice,
		TotalPrice:           m.TotalPrice,
		DeliveryOption:       m.DeliveryOption,
		ExpectedDeliveryDate: m.ExpectedDeliveryDate,
		Status:               m.Status,
		IsPaid:               m.IsPaid,
		PaidAt:               m.PaidAt,
		IsDelivered:          m.IsDelivered,
		DeliveredAt:          m.DeliveredAt,
	}
}

// FromDomain populates the persistence model from a domain Order entity.
func (m *OrderModel) FromDomain(o *ordering.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.BuyerID = o.BuyerID
	m.SellerID = o.SellerID
	m.Items = o.Items
	m.ShippingAddress = o.ShippingAddress
	m.PaymentMethod = o.PaymentMethod
	m.PaymentResult = o.PaymentResult
	m.ItemsPrice = o.ItemsPrice
	m.ShippingPrice = o.ShippingPrice
	m.TaxPrice = o.TaxPrice
	m.TotalPrice = o.TotalPrice
	m.DeliveryOption = o.DeliveryOption
	m.ExpectedDeliveryDate = o.ExpectedDeliveryDate
	m.Status = o.Status
	m.IsPaid = o.IsPaid
	m.PaidAt = o.PaidAt
	m.IsDelivered = o.IsDelivered
	m.DeliveredAt = o.DeliveredAt
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity.
func OrderModelFromDomain(o *ordering.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}
