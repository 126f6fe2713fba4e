package ordering

import (
	"time"

	"github.com/pyasti/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// TaxPolicy computes the tax on an items subtotal delivered to an address
type TaxPolicy interface {
	TaxFor(itemsPrice decimal.Decimal, address valueobject.Address) decimal.Decimal
}

// ZeroTaxPolicy charges no tax. Current storefront policy.
type ZeroTaxPolicy struct{}

// TaxFor always returns zero
func (ZeroTaxPolicy) TaxFor(itemsPrice decimal.Decimal, address valueobject.Address) decimal.Decimal {
	return decimal.Zero
}

// Quote is the priced result of a cart or cart partition.
// ShippingPrice and TaxPrice stay nil until a shipping address is known.
type Quote struct {
	ItemsPrice           decimal.Decimal
	ShippingPrice        *decimal.Decimal
	TaxPrice             *decimal.Decimal
	TotalPrice           decimal.Decimal
	DeliveryOptionIndex  int
	DeliveryOption       DeliveryOption
	ExpectedDeliveryDate time.Time
}

// round2 rounds half-up to two decimal places
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// CalculateQuote prices a set of cart items.
//
// itemsPrice is the rounded sum of line totals. The delivery option
// defaults to the last configured tier when index is nil. Shipping and
// tax are only charged once a shipping address is known; shipping is
// free when the option has a positive free-shipping threshold and the
// subtotal reaches it.
func CalculateQuote(items []CartItem, address *valueobject.Address, optionIndex *int, options []DeliveryOption, taxPolicy TaxPolicy) (Quote, error) {
	option, resolvedIndex, err := ResolveDeliveryOption(options, optionIndex)
	if err != nil {
		return Quote{}, err
	}
	if taxPolicy == nil {
		taxPolicy = ZeroTaxPolicy{}
	}

	itemsPrice := decimal.Zero
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return Quote{}, err
		}
		itemsPrice = itemsPrice.Add(item.LineTotal())
	}
	itemsPrice = round2(itemsPrice)

	var shippingPrice, taxPrice *decimal.Decimal
	if address != nil && !address.IsEmpty() {
		shipping := option.ShippingPrice
		if option.FreeShippingMinPrice.IsPositive() && itemsPrice.GreaterThanOrEqual(option.FreeShippingMinPrice) {
			shipping = decimal.Zero
		}
		shippingPrice = &shipping

		tax := round2(taxPolicy.TaxFor(itemsPrice, *address))
		taxPrice = &tax
	}

	total := itemsPrice
	if shippingPrice != nil {
		total = total.Add(*shippingPrice)
	}
	if taxPrice != nil {
		total = total.Add(*taxPrice)
	}

	return Quote{
		ItemsPrice:           itemsPrice,
		ShippingPrice:        shippingPrice,
		TaxPrice:             taxPrice,
		TotalPrice:           round2(total),
		DeliveryOptionIndex:  resolvedIndex,
		DeliveryOption:       option,
		ExpectedDeliveryDate: option.ExpectedDate(time.Now()),
	}, nil
}
