package ordering

import (
	"time"

	"github.com/pyasti/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DeliveryOption is one configured delivery tier
type DeliveryOption struct {
	Name                 string          `json:"name"`
	DaysToDeliver        int             `json:"daysToDeliver"`
	ShippingPrice        decimal.Decimal `json:"shippingPrice"`
	FreeShippingMinPrice decimal.Decimal `json:"freeShippingMinPrice"`
}

// ExpectedDate returns the delivery date relative to now
func (o DeliveryOption) ExpectedDate(now time.Time) time.Time {
	return now.AddDate(0, 0, o.DaysToDeliver)
}

// DefaultDeliveryOptions returns the site's configured delivery tiers.
// The last option is the default when the buyer picks none.
func DefaultDeliveryOptions() []DeliveryOption {
	return []DeliveryOption{
		{
			Name:                 "Tomorrow",
			DaysToDeliver:        1,
			ShippingPrice:        decimal.NewFromFloat(12.9),
			FreeShippingMinPrice: decimal.Zero,
		},
		{
			Name:                 "Next 3 Days",
			DaysToDeliver:        3,
			ShippingPrice:        decimal.NewFromFloat(6.9),
			FreeShippingMinPrice: decimal.Zero,
		},
		{
			Name:                 "Next 5 Days",
			DaysToDeliver:        5,
			ShippingPrice:        decimal.NewFromFloat(4.9),
			FreeShippingMinPrice: decimal.NewFromInt(35),
		},
	}
}

// ResolveDeliveryOption picks the option for the given index.
// A nil index selects the last configured option; an out-of-range index
// is rejected.
func ResolveDeliveryOption(options []DeliveryOption, index *int) (DeliveryOption, int, error) {
	if len(options) == 0 {
		return DeliveryOption{}, 0, shared.NewDomainError("NO_DELIVERY_OPTIONS", "No delivery options are configured")
	}

	resolved := len(options) - 1
	if index != nil {
		resolved = *index
	}
	if resolved < 0 || resolved >= len(options) {
		return DeliveryOption{}, 0, shared.NewDomainError("INVALID_INPUT", "Delivery option index is out of range")
	}
	return options[resolved], resolved, nil
}
