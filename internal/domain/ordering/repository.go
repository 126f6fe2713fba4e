package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/pyasti/backend/internal/domain/shared"
)

// OrderRepository defines the persistence contract for orders
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByBuyer(ctx context.Context, buyerID uuid.UUID, filter shared.Filter) ([]Order, error)
	FindBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) ([]Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	// Save persists the order and its items in one transaction
	Save(ctx context.Context, order *Order) error
	// SaveWithLock persists with an optimistic version check; a stale
	// version returns shared.ErrConcurrencyConflict
	SaveWithLock(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
