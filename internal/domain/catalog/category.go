package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pyasti/backend/internal/domain/shared"
)

// MainCategory is a top-level entry in the parts taxonomy
type MainCategory struct {
	shared.BaseAggregateRoot
	Name        string
	Slug        string
	Description string
}

// NewMainCategory creates a new top-level category
func NewMainCategory(name, description string) (*MainCategory, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	return &MainCategory{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Slug:              Slugify(name),
		Description:       strings.TrimSpace(description),
	}, nil
}

// Update renames the category and regenerates its slug
func (m *MainCategory) Update(name, description string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}

	m.Name = strings.TrimSpace(name)
	m.Slug = Slugify(name)
	m.Description = strings.TrimSpace(description)
	m.Touch()
	m.IncrementVersion()

	return nil
}

// SubCategory is a second-level entry in the parts taxonomy.
// Products reference subcategories through Product.SubCategoryID.
type SubCategory struct {
	shared.BaseAggregateRoot
	MainCategoryID uuid.UUID
	Name           string
	Slug           string
	Description    string
}

// NewSubCategory creates a new subcategory under a main category
func NewSubCategory(mainCategoryID uuid.UUID, name, description string) (*SubCategory, error) {
	if mainCategoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MAIN_CATEGORY", "Main category is required")
	}
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	return &SubCategory{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		MainCategoryID:    mainCategoryID,
		Name:              strings.TrimSpace(name),
		Slug:              Slugify(name),
		Description:       strings.TrimSpace(description),
	}, nil
}

// Update renames the subcategory, regenerates its slug, and optionally
// moves it under a different main category
func (s *SubCategory) Update(mainCategoryID uuid.UUID, name, description string) error {
	if mainCategoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_MAIN_CATEGORY", "Main category is required")
	}
	if err := validateCategoryName(name); err != nil {
		return err
	}

	s.MainCategoryID = mainCategoryID
	s.Name = strings.TrimSpace(name)
	s.Slug = Slugify(name)
	s.Description = strings.TrimSpace(description)
	s.Touch()
	s.IncrementVersion()

	return nil
}

func validateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}
