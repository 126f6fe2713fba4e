package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/pyasti/backend/internal/domain/catalog"
	"github.com/pyasti/backend/internal/domain/identity"
	"github.com/pyasti/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CategoryService manages the two-level parts taxonomy. Reads are
// public; writes are restricted to administrators.
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	productRepo  catalog.ProductRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository, productRepo catalog.ProductRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		logger:       logger.Named("category"),
	}
}

// CreateMain creates a top-level category
func (s *CategoryService) CreateMain(ctx context.Context, role identity.Role, req MainCategoryRequest) (*MainCategoryDTO, error) {
	if role != identity.RoleAdmin {
		return nil, shared.ErrForbidden
	}

	category, err := catalog.NewMainCategory(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.SaveMain(ctx, category); err != nil {
		return nil, err
	}
	s.logger.Info("main category created",
		zap.String("category_id", category.ID.String()),
		zap.String("slug", category.Slug))

	dto := ToMainCategoryDTO(category)
	return &dto, nil
}

// UpdateMain renames a top-level category
func (s *CategoryService) UpdateMain(ctx context.Context, role identity.Role, id uuid.UUID, req MainCategoryRequest) (*MainCategoryDTO, error) {
	if role != identity.RoleAdmin {
		return nil, shared.ErrForbidden
	}

	category, err := s.categoryRepo.FindMainByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := category.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.SaveMain(ctx, category); err != nil {
		return nil, err
	}

	dto := ToMainCategoryDTO(category)
	return &dto, nil
}

// DeleteMain removes a top-level category. Deletion is rejected while
// subcategories still reference it.
func (s *CategoryService) DeleteMain(ctx context.Context, role identity.Role, id uuid.UUID) error {
	if role != identity.RoleAdmin {
		return shared.ErrForbidden
	}

	filter := shared.DefaultFilter()
	filter.Filters["main_category_id"] = id
	count, err := s.categoryRepo.CountSub(ctx, filter)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("CATEGORY_IN_USE", "Main category still has subcategories")
	}

	return s.categoryRepo.DeleteMain(ctx, id)
}

// GetMain returns one main category
func (s *CategoryService) GetMain(ctx context.Context, id uuid.UUID) (*MainCategoryDTO, error) {
	category, err := s.categoryRepo.FindMainByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToMainCategoryDTO(category)
	return &dto, nil
}

// ListMain returns a paginated main category listing
func (s *CategoryService) ListMain(ctx context.Context, filter shared.Filter) (*shared.Paginated[MainCategoryDTO], error) {
	categories, err := s.categoryRepo.FindAllMain(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.categoryRepo.CountMain(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(ToMainCategoryDTOs(categories), total, filter.Page, filter.PageSize)
	return &page, nil
}

// CreateSub creates a subcategory under an existing main category
func (s *CategoryService) CreateSub(ctx context.Context, role identity.Role, req SubCategoryRequest) (*SubCategoryDTO, error) {
	if role != identity.RoleAdmin {
		return nil, shared.ErrForbidden
	}

	mainID, err := uuid.Parse(req.MainCategoryID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid main category ID")
	}
	if _, err := s.categoryRepo.FindMainByID(ctx, mainID); err != nil {
		return nil, err
	}

	subCategory, err := catalog.NewSubCategory(mainID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.SaveSub(ctx, subCategory); err != nil {
		return nil, err
	}
	s.logger.Info("subcategory created",
		zap.String("sub_category_id", subCategory.ID.String()),
		zap.String("main_category_id", mainID.String()),
		zap.String("slug", subCategory.Slug))

	dto := ToSubCategoryDTO(subCategory)
	return &dto, nil
}

// UpdateSub renames a subcategory or moves it under another main category
func (s *CategoryService) UpdateSub(ctx context.Context, role identity.Role, id uuid.UUID, req SubCategoryRequest) (*SubCategoryDTO, error) {
	if role != identity.RoleAdmin {
		return nil, shared.ErrForbidden
	}

	mainID, err := uuid.Parse(req.MainCategoryID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid main category ID")
	}
	if _, err := s.categoryRepo.FindMainByID(ctx, mainID); err != nil {
		return nil, err
	}

	subCategory, err := s.categoryRepo.FindSubByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := subCategory.Update(mainID, req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.SaveSub(ctx, subCategory); err != nil {
		return nil, err
	}

	dto := ToSubCategoryDTO(subCategory)
	return &dto, nil
}

// DeleteSub removes a subcategory. Deletion is rejected while products
// still reference it.
func (s *CategoryService) DeleteSub(ctx context.Context, role identity.Role, id uuid.UUID) error {
	if role != identity.RoleAdmin {
		return shared.ErrForbidden
	}

	filter := shared.DefaultFilter()
	filter.Filters["sub_category_id"] = id
	count, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("CATEGORY_IN_USE", "Subcategory still has products")
	}

	return s.categoryRepo.DeleteSub(ctx, id)
}

// GetSub returns one subcategory
func (s *CategoryService) GetSub(ctx context.Context, id uuid.UUID) (*SubCategoryDTO, error) {
	subCategory, err := s.categoryRepo.FindSubByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToSubCategoryDTO(subCategory)
	return &dto, nil
}

// ListSub returns a paginated subcategory listing
func (s *CategoryService) ListSub(ctx context.Context, filter shared.Filter) (*shared.Paginated[SubCategoryDTO], error) {
	subCategories, err := s.categoryRepo.FindAllSub(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.categoryRepo.CountSub(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(ToSubCategoryDTOs(subCategories), total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListSubByMain returns every subcategory under one main category
func (s *CategoryService) ListSubByMain(ctx context.Context, mainCategoryID uuid.UUID) ([]SubCategoryDTO, error) {
	subCategories, err := s.categoryRepo.FindSubByMain(ctx, mainCategoryID)
	if err != nil {
		return nil, err
	}
	return ToSubCategoryDTOs(subCategories), nil
}
