package ordering

import (
	"github.com/google/uuid"
	"github.com/pyasti/backend/internal/domain/catalog"
	"github.com/pyasti/backend/internal/domain/shared"
	"github.com/pyasti/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CartItem is one line of a checkout cart. Before enrichment only the
// client-supplied fields are set; enrichment snapshots the product's
// seller and part metadata into the item.
type CartItem struct {
	ProductID            uuid.UUID                      `json:"productId"`
	ClientID             string                         `json:"clientId"`
	Name                 string                         `json:"name"`
	Slug                 string                         `json:"slug"`
	Image                string                         `json:"image,omitempty"`
	Brand                string                         `json:"brand"`
	PartNumber           string                         `json:"partNumber"`
	SubCategoryID        uuid.UUID                      `json:"subCategoryId"`
	Color                string                         `json:"color,omitempty"`
	Quantity             int                            `json:"quantity"`
	Price                decimal.Decimal                `json:"price"`
	SellerID             uuid.UUID                      `json:"sellerId"`
	VehicleCompatibility []catalog.VehicleCompatibility `json:"vehicleCompatibility,omitempty"`
	Specifications       map[string]string              `json:"specifications,omitempty"`
}

// Validate checks the invariants every cart item must satisfy
func (i CartItem) Validate() error {
	if i.ProductID == uuid.Nil {
		return shared.NewDomainError("INVALID_ITEM", "Cart item is missing a product")
	}
	if i.Quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if i.Price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Item price cannot be negative")
	}
	return nil
}

// LineTotal returns price multiplied by quantity
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the client-side checkout payload
type Cart struct {
	Items               []CartItem
	ShippingAddress     *valueobject.Address
	DeliveryOptionIndex *int
	PaymentMethod       string
}

// Validate checks the cart can enter checkout
func (c Cart) Validate() error {
	if len(c.Items) == 0 {
		return shared.NewDomainError("EMPTY_CART", "Cart has no items")
	}
	for _, item := range c.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	if c.ShippingAddress != nil && c.ShippingAddress.IsEmpty() {
		return shared.NewDomainError("INVALID_ADDRESS", "Shipping address is incomplete")
	}
	return nil
}
