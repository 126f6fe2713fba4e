package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/pyasti/backend/internal/domain/shared"
)

// ProductRepository defines the persistence contract for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	FindBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// AdjustStock atomically applies stockDelta to the stock count and
	// salesDelta to the sales counter of a single product. The update is
	// guarded so stock can never go below zero; a violated guard returns
	// shared.ErrInsufficientStock.
	AdjustStock(ctx context.Context, productID uuid.UUID, stockDelta, salesDelta int) error
}
