package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/pyasti/backend/internal/domain/catalog"
	"github.com/pyasti/backend/internal/domain/shared"
	"github.com/pyasti/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCategoryRepository implements catalog.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindMainByID finds a main category by its ID
func (r *GormCategoryRepository) FindMainByID(ctx context.Context, id uuid.UUID) (*catalog.MainCategory, error) {
	var model models.MainCategoryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllMain finds all main categories matching the filter
func (r *GormCategoryRepository) FindAllMain(ctx context.Context, filter shared.Filter) ([]catalog.MainCategory, error) {
	var rows []models.MainCategoryModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.MainCategoryModel{}), filter)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	categories := make([]catalog.MainCategory, len(rows))
	for i := range rows {
		categories[i] = *rows[i].ToDomain()
	}
	return categories, nil
}

// CountMain counts main categories matching the filter
func (r *GormCategoryRepository) CountMain(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&models.MainCategoryModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SaveMain creates or updates a main category
func (r *GormCategoryRepository) SaveMain(ctx context.Context, category *catalog.MainCategory) error {
	model := models.MainCategoryModelFromDomain(category)
	err := r.db.WithContext(ctx).Save(model).Error
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return shared.ErrAlreadyExists
	}
	return err
}

// DeleteMain deletes a main category
func (r *GormCategoryRepository) DeleteMain(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MainCategoryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindSubByID finds a subcategory by its ID
func (r *GormCategoryRepository) FindSubByID(ctx context.Context, id uuid.UUID) (*catalog.SubCategory, error) {
	var model models.SubCategoryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindSubByMain finds every subcategory under one main category
func (r *GormCategoryRepository) FindSubByMain(ctx context.Context, mainCategoryID uuid.UUID) ([]catalog.SubCategory, error) {
	var rows []models.SubCategoryModel
	if err := r.db.WithContext(ctx).
		Where("main_category_id = ?", mainCategoryID).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainSubCategories(rows), nil
}

// FindAllSub finds all subcategories matching the filter
func (r *GormCategoryRepository) FindAllSub(ctx context.Context, filter shared.Filter) ([]catalog.SubCategory, error) {
	var rows []models.SubCategoryModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.SubCategoryModel{}), filter)

	if mainID, ok := filter.Filters["main_category_id"]; ok {
		query = query.Where("main_category_id = ?", mainID)
	}

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainSubCategories(rows), nil
}

// CountSub counts subcategories matching the filter
func (r *GormCategoryRepository) CountSub(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&models.SubCategoryModel{}), filter)

	if mainID, ok := filter.Filters["main_category_id"]; ok {
		query = query.Where("main_category_id = ?", mainID)
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SaveSub creates or updates a subcategory
func (r *GormCategoryRepository) SaveSub(ctx context.Context, subCategory *catalog.SubCategory) error {
	model := models.SubCategoryModelFromDomain(subCategory)
	err := r.db.WithContext(ctx).Save(model).Error
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return shared.ErrAlreadyExists
	}
	return err
}

// DeleteSub deletes a subcategory
func (r *GormCategoryRepository) DeleteSub(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SubCategoryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormCategoryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}
	return query
}

func (r *GormCategoryRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	return query
}

func toDomainSubCategories(rows []models.SubCategoryModel) []catalog.SubCategory {
	subCategories := make([]catalog.SubCategory, len(rows))
	for i := range rows {
		subCategories[i] = *rows[i].ToDomain()
	}
	return subCategories
}

// Ensure GormCategoryRepository implements CategoryRepository
var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
