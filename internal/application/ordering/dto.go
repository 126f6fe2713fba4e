package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/pyasti/backend/internal/domain/ordering"
	"github.com/pyasti/backend/internal/domain/shared"
	"github.com/pyasti/backend/internal/domain/shared/valueobject"
)

// CartItemRequest is one cart line as submitted by the client. Prices
// and part metadata are resolved server-side during enrichment.
type CartItemRequest struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	ClientID  string `json:"clientId" binding:"required"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// AddressRequest is the shipping address payload
type AddressRequest struct {
	FullName   string `json:"fullName" binding:"required"`
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
	Province   string `json:"province" binding:"required"`
	Country    string `json:"country" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
}

// CreateOrderRequest is the checkout payload
type CreateOrderRequest struct {
	Items               []CartItemRequest `json:"items" binding:"required,min=1,dive"`
	ShippingAddress     *AddressRequest   `json:"shippingAddress"`
	DeliveryOptionIndex *int              `json:"deliveryOptionIndex"`
	PaymentMethod       string            `json:"paymentMethod" binding:"required"`
}

// ToCart converts the request into a domain cart (without enrichment)
func (r CreateOrderRequest) ToCart() (ordering.Cart, error) {
	cart := ordering.Cart{
		DeliveryOptionIndex: r.DeliveryOptionIndex,
		PaymentMethod:       r.PaymentMethod,
	}

	for _, item := range r.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return ordering.Cart{}, shared.NewDomainError("INVALID_INPUT", "Invalid product ID in cart")
		}
		cart.Items = append(cart.Items, ordering.CartItem{
			ProductID: productID,
			ClientID:  item.ClientID,
			Color:     item.Color,
			Quantity:  item.Quantity,
		})
	}

	if r.ShippingAddress != nil {
		addr, err := valueobject.NewAddress(
			r.ShippingAddress.FullName,
			r.ShippingAddress.Street,
			r.ShippingAddress.City,
			r.ShippingAddress.PostalCode,
			r.ShippingAddress.Province,
			r.ShippingAddress.Country,
			r.ShippingAddress.Phone,
		)
		if err != nil {
			return ordering.Cart{}, shared.NewDomainError("INVALID_INPUT", err.Error())
		}
		cart.ShippingAddress = &addr
	}

	return cart, nil
}

// CreateOrderResponse reports the orders created by a checkout
type CreateOrderResponse struct {
	PrimaryOrderID string   `json:"primaryOrderId"`
	OrderIDs       []string `json:"orderIds"`
}

// OrderItemDTO is one snapshotted order line
type OrderItemDTO struct {
	ProductID  string `json:"productId"`
	ClientID   string `json:"clientId"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	Image      string `json:"image"`
	Brand      string `json:"brand"`
	PartNumber string `json:"partNumber"`
	Color      string `json:"color,omitempty"`
	Quantity   int    `json:"quantity"`
	Price      string `json:"price"`
}

// PaymentResultDTO mirrors the gateway capture details
type PaymentResultDTO struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	EmailAddress string `json:"emailAddress,omitempty"`
}

// DeliveryOptionDTO is the delivery tier snapshot on an order
type DeliveryOptionDTO struct {
	Name                 string `json:"name"`
	DaysToDeliver        int    `json:"daysToDeliver"`
	ShippingPrice        string `json:"shippingPrice"`
	FreeShippingMinPrice string `json:"freeShippingMinPrice"`
}

// OrderDTO is the read model for a single order
type OrderDTO struct {
	ID                   string              `json:"id"`
	BuyerID              string              `json:"buyerId"`
	SellerID             string              `json:"sellerId"`
	Items                []OrderItemDTO      `json:"items"`
	ShippingAddress      valueobject.Address `json:"shippingAddress"`
	PaymentMethod        string              `json:"paymentMethod"`
	PaymentResult        *PaymentResultDTO   `json:"paymentResult,omitempty"`
	ItemsPrice           string              `json:"itemsPrice"`
	ShippingPrice        *string             `json:"shippingPrice,omitempty"`
	TaxPrice             *string             `json:"taxPrice,omitempty"`
	TotalPrice           string              `json:"totalPrice"`
	DeliveryOption       DeliveryOptionDTO   `json:"deliveryOption"`
	ExpectedDeliveryDate time.Time           `json:"expectedDeliveryDate"`
	Status               string              `json:"status"`
	IsPaid               bool                `json:"isPaid"`
	PaidAt               *time.Time          `json:"paidAt,omitempty"`
	IsDelivered          bool                `json:"isDelivered"`
	DeliveredAt          *time.Time          `json:"deliveredAt,omitempty"`
	CreatedAt            time.Time           `json:"createdAt"`
}

// ToOrderDTO maps a domain order to its read model
func ToOrderDTO(order *ordering.Order) OrderDTO {
	dto := OrderDTO{
		ID:              order.ID.String(),
		BuyerID:         order.BuyerID.String(),
		SellerID:        order.SellerID.String(),
		ShippingAddress: order.ShippingAddress,
		PaymentMethod:   order.PaymentMethod,
		ItemsPrice:      order.ItemsPrice.StringFixed(2),
		TotalPrice:      order.TotalPrice.StringFixed(2),
		DeliveryOption: DeliveryOptionDTO{
			Name:                 order.DeliveryOption.Name,
			DaysToDeliver:        order.DeliveryOption.DaysToDeliver,
			ShippingPrice:        order.DeliveryOption.ShippingPrice.StringFixed(2),
			FreeShippingMinPrice: order.DeliveryOption.FreeShippingMinPrice.StringFixed(2),
		},
		ExpectedDeliveryDate: order.ExpectedDeliveryDate,
		Status:               order.Status.String(),
		IsPaid:               order.IsPaid,
		PaidAt:               order.PaidAt,
		IsDelivered:          order.IsDelivered,
		DeliveredAt:          order.DeliveredAt,
		CreatedAt:            order.CreatedAt,
	}

	if order.ShippingPrice != nil {
		s := order.ShippingPrice.StringFixed(2)
		dto.ShippingPrice = &s
	}
	if order.TaxPrice != nil {
		s := order.TaxPrice.StringFixed(2)
		dto.TaxPrice = &s
	}
	if order.PaymentResult != nil {
		dto.PaymentResult = &PaymentResultDTO{
			ID:           order.PaymentResult.ID,
			Status:       order.PaymentResult.Status,
			EmailAddress: order.PaymentResult.EmailAddress,
		}
	}

	for _, item := range order.Items {
		dto.Items = append(dto.Items, OrderItemDTO{
			ProductID:  item.ProductID.String(),
			ClientID:   item.ClientID,
			Name:       item.Name,
			Slug:       item.Slug,
			Image:      item.Image,
			Brand:      item.Brand,
			PartNumber: item.PartNumber,
			Color:      item.Color,
			Quantity:   item.Quantity,
			Price:      item.Price.StringFixed(2),
		})
	}

	return dto
}

// ToOrderDTOs maps a slice of domain orders
func ToOrderDTOs(orders []ordering.Order) []OrderDTO {
	dtos := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, ToOrderDTO(&orders[i]))
	}
	return dtos
}
