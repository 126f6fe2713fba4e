package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/pyasti/backend/internal/domain/shared"
)

// CategoryRepository defines the persistence contract for both levels
// of the taxonomy
type CategoryRepository interface {
	FindMainByID(ctx context.Context, id uuid.UUID) (*MainCategory, error)
	FindAllMain(ctx context.Context, filter shared.Filter) ([]MainCategory, error)
	CountMain(ctx context.Context, filter shared.Filter) (int64, error)
	SaveMain(ctx context.Context, category *MainCategory) error
	DeleteMain(ctx context.Context, id uuid.UUID) error

	FindSubByID(ctx context.Context, id uuid.UUID) (*SubCategory, error)
	// FindSubByMain returns every subcategory under one main category,
	// ordered by name
	FindSubByMain(ctx context.Context, mainCategoryID uuid.UUID) ([]SubCategory, error)
	FindAllSub(ctx context.Context, filter shared.Filter) ([]SubCategory, error)
	CountSub(ctx context.Context, filter shared.Filter) (int64, error)
	SaveSub(ctx context.Context, subCategory *SubCategory) error
	DeleteSub(ctx context.Context, id uuid.UUID) error
}
