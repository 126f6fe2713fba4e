package ordering

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionBySellerEmptyCart(t *testing.T) {
	partitions := PartitionBySeller(nil)
	assert.Empty(t, partitions)
	assert.NotNil(t, partitions)
}

func TestPartitionBySellerSingleSeller(t *testing.T) {
	seller := uuid.New()
	items := []CartItem{cartItem(seller, 10, 1), cartItem(seller, 20, 2)}

	partitions := PartitionBySeller(items)

	require.Len(t, partitions, 1)
	assert.Equal(t, seller, partitions[0].SellerID)
	assert.Len(t, partitions[0].Items, 2)
}

func TestPartitionBySellerPreservesFirstSeenOrder(t *testing.T) {
	s1, s2, s3 := uuid.New(), uuid.New(), uuid.New()
	items := []CartItem{
		cartItem(s2, 10, 1),
		cartItem(s1, 20, 1),
		cartItem(s2, 30, 1),
		cartItem(s3, 40, 1),
		cartItem(s1, 50, 1),
	}

	partitions := PartitionBySeller(items)

	require.Len(t, partitions, 3)
	assert.Equal(t, s2, partitions[0].SellerID)
	assert.Equal(t, s1, partitions[1].SellerID)
	assert.Equal(t, s3, partitions[2].SellerID)

	// Items keep their cart order inside each partition
	assert.Equal(t, items[0].ProductID, partitions[0].Items[0].ProductID)
	assert.Equal(t, items[2].ProductID, partitions[0].Items[1].ProductID)
	assert.Equal(t, items[1].ProductID, partitions[1].Items[0].ProductID)
	assert.Equal(t, items[4].ProductID, partitions[1].Items[1].ProductID)
}

func TestPartitionBySellerCountsSumToCartSize(t *testing.T) {
	sellers := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	var items []CartItem
	for i := 0; i < 17; i++ {
		items = append(items, cartItem(sellers[i%len(sellers)], float64(i+1), 1))
	}

	partitions := PartitionBySeller(items)

	require.Len(t, partitions, len(sellers))
	total := 0
	var flattened []CartItem
	for _, p := range partitions {
		total += len(p.Items)
		for _, item := range p.Items {
			assert.Equal(t, p.SellerID, item.SellerID)
		}
		flattened = append(flattened, p.Items...)
	}
	assert.Equal(t, len(items), total)
	assert.Len(t, flattened, len(items))
}

func TestPerSellerShippingPolicyQuotesIndependently(t *testing.T) {
	s1, s2 := uuid.New(), uuid.New()
	items := []CartItem{cartItem(s1, 100, 1), cartItem(s2, 10, 1)}
	addr := testAddress()
	policy := PerSellerShippingPolicy{}

	partitions := PartitionBySeller(items)
	require.Len(t, partitions, 2)

	// Last tier: free above 35, otherwise 4.90
	first, err := policy.QuotePartition(partitions[0], &addr, nil, DefaultDeliveryOptions(), ZeroTaxPolicy{})
	require.NoError(t, err)
	second, err := policy.QuotePartition(partitions[1], &addr, nil, DefaultDeliveryOptions(), ZeroTaxPolicy{})
	require.NoError(t, err)

	assert.True(t, first.ShippingPrice.IsZero())
	assert.True(t, second.ShippingPrice.Equal(decimal.NewFromFloat(4.9)))
}
