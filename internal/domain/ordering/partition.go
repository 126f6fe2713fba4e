package ordering

import (
	"github.com/google/uuid"
	"github.com/pyasti/backend/internal/domain/shared/valueobject"
)

// SellerPartition groups the cart items belonging to one seller
type SellerPartition struct {
	SellerID uuid.UUID
	Items    []CartItem
}

// PartitionBySeller splits cart items into per-seller groups. Partitions
// appear in the order each seller is first seen; items keep their cart
// order inside each partition. An empty cart yields an empty slice.
func PartitionBySeller(items []CartItem) []SellerPartition {
	partitions := make([]SellerPartition, 0)
	index := make(map[uuid.UUID]int)

	for _, item := range items {
		i, ok := index[item.SellerID]
		if !ok {
			i = len(partitions)
			index[item.SellerID] = i
			partitions = append(partitions, SellerPartition{SellerID: item.SellerID})
		}
		partitions[i].Items = append(partitions[i].Items, item)
	}

	return partitions
}

// ShippingPolicy quotes a seller partition during checkout
type ShippingPolicy interface {
	QuotePartition(partition SellerPartition, address *valueobject.Address, optionIndex *int, options []DeliveryOption, taxPolicy TaxPolicy) (Quote, error)
}

// PerSellerShippingPolicy quotes every partition independently, so each
// seller order carries its own shipping and tax charges.
type PerSellerShippingPolicy struct{}

// QuotePartition prices one partition as if it were a standalone cart
func (PerSellerShippingPolicy) QuotePartition(partition SellerPartition, address *valueobject.Address, optionIndex *int, options []DeliveryOption, taxPolicy TaxPolicy) (Quote, error) {
	return CalculateQuote(partition.Items, address, optionIndex, options, taxPolicy)
}
