package ordering

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pyasti/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAddress() valueobject.Address {
	return valueobject.MustNewAddress("Amine B", "12 Rue Didouche", "Alger", "16000", "Alger", "Algeria", "+213550123456")
}

func cartItem(sellerID uuid.UUID, price float64, quantity int) CartItem {
	return CartItem{
		ProductID: uuid.New(),
		ClientID:  uuid.NewString(),
		Name:      "part",
		Quantity:  quantity,
		Price:     decimal.NewFromFloat(price),
		SellerID:  sellerID,
	}
}

func intPtr(i int) *int { return &i }

func TestCalculateQuoteFreeShippingAboveThreshold(t *testing.T) {
	// Two items worth 150 on the "Next 5 Days" tier (4.90, free above 35)
	seller := uuid.New()
	items := []CartItem{cartItem(seller, 100, 1), cartItem(seller, 50, 1)}
	addr := testAddress()

	quote, err := CalculateQuote(items, &addr, intPtr(2), DefaultDeliveryOptions(), ZeroTaxPolicy{})
	require.NoError(t, err)

	assert.True(t, quote.ItemsPrice.Equal(decimal.NewFromInt(150)))
	require.NotNil(t, quote.ShippingPrice)
	assert.True(t, quote.ShippingPrice.IsZero())
	require.NotNil(t, quote.TaxPrice)
	assert.True(t, quote.TaxPrice.IsZero())
	assert.True(t, quote.TotalPrice.Equal(decimal.NewFromInt(150)))
}

func TestCalculateQuoteFlatShippingWithoutThreshold(t *testing.T) {
	// One item worth 10 on the "Tomorrow" tier (12.90, no free threshold)
	items := []CartItem{cartItem(uuid.New(), 10, 1)}
	addr := testAddress()

	quote, err := CalculateQuote(items, &addr, intPtr(0), DefaultDeliveryOptions(), ZeroTaxPolicy{})
	require.NoError(t, err)

	assert.True(t, quote.ItemsPrice.Equal(decimal.NewFromInt(10)))
	require.NotNil(t, quote.ShippingPrice)
	assert.True(t, quote.ShippingPrice.Equal(decimal.NewFromFloat(12.9)))
	assert.True(t, quote.TotalPrice.Equal(decimal.NewFromFloat(22.9)))
}

func TestCalculateQuoteFlatPriceIgnoresSubtotalWhenNoThreshold(t *testing.T) {
	addr := testAddress()
	for _, price := range []float64{0, 5, 100, 10000} {
		items := []CartItem{cartItem(uuid.New(), price, 1)}
		quote, err := CalculateQuote(items, &addr, intPtr(1), DefaultDeliveryOptions(), nil)
		require.NoError(t, err)
		require.NotNil(t, quote.ShippingPrice)
		assert.True(t, quote.ShippingPrice.Equal(decimal.NewFromFloat(6.9)), "price %v", price)
	}
}

func TestCalculateQuoteShippingAndTaxUndefinedWithoutAddress(t *testing.T) {
	items := []CartItem{cartItem(uuid.New(), 20, 2)}

	quote, err := CalculateQuote(items, nil, nil, DefaultDeliveryOptions(), ZeroTaxPolicy{})
	require.NoError(t, err)

	assert.Nil(t, quote.ShippingPrice)
	assert.Nil(t, quote.TaxPrice)
	assert.True(t, quote.TotalPrice.Equal(decimal.NewFromInt(40)))
}

func TestCalculateQuoteDefaultsToLastOption(t *testing.T) {
	items := []CartItem{cartItem(uuid.New(), 10, 1)}
	addr := testAddress()

	quote, err := CalculateQuote(items, &addr, nil, DefaultDeliveryOptions(), ZeroTaxPolicy{})
	require.NoError(t, err)

	assert.Equal(t, 2, quote.DeliveryOptionIndex)
	assert.Equal(t, "Next 5 Days", quote.DeliveryOption.Name)
	// 10 is below the 35 threshold, so the 4.90 flat price applies
	require.NotNil(t, quote.ShippingPrice)
	assert.True(t, quote.ShippingPrice.Equal(decimal.NewFromFloat(4.9)))
}

func TestCalculateQuoteRejectsOutOfRangeIndex(t *testing.T) {
	items := []CartItem{cartItem(uuid.New(), 10, 1)}
	addr := testAddress()

	_, err := CalculateQuote(items, &addr, intPtr(3), DefaultDeliveryOptions(), ZeroTaxPolicy{})
	assert.Error(t, err)

	_, err = CalculateQuote(items, &addr, intPtr(-1), DefaultDeliveryOptions(), ZeroTaxPolicy{})
	assert.Error(t, err)
}

func TestCalculateQuoteRoundsHalfUp(t *testing.T) {
	// 3 x 33.335 = 100.005, which rounds half-up to 100.01
	items := []CartItem{cartItem(uuid.New(), 33.335, 3)}

	quote, err := CalculateQuote(items, nil, nil, DefaultDeliveryOptions(), ZeroTaxPolicy{})
	require.NoError(t, err)

	assert.True(t, quote.ItemsPrice.Equal(decimal.NewFromFloat(100.01)))
}

func TestCalculateQuoteTotalIsSumOfParts(t *testing.T) {
	addr := testAddress()
	items := []CartItem{cartItem(uuid.New(), 19.99, 2), cartItem(uuid.New(), 4.5, 1)}

	quote, err := CalculateQuote(items, &addr, intPtr(0), DefaultDeliveryOptions(), ZeroTaxPolicy{})
	require.NoError(t, err)

	expected := quote.ItemsPrice.Add(*quote.ShippingPrice).Add(*quote.TaxPrice).Round(2)
	assert.True(t, quote.TotalPrice.Equal(expected))
}

func TestCalculateQuoteRejectsInvalidItems(t *testing.T) {
	items := []CartItem{{ProductID: uuid.New(), Quantity: 0, Price: decimal.NewFromInt(5)}}

	_, err := CalculateQuote(items, nil, nil, DefaultDeliveryOptions(), ZeroTaxPolicy{})
	assert.Error(t, err)
}
