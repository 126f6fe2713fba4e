package models

import (
	"github.com/google/uuid"
	"github.com/pyasti/backend/internal/domain/catalog"
)

// MainCategoryModel is the persistence model for the MainCategory entity.
type MainCategoryModel struct {
	AggregateModel
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Slug        string `gorm:"type:varchar(120);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (MainCategoryModel) TableName() string {
	return "main_categories"
}

// ToDomain converts the persistence model to a domain MainCategory entity.
func (m *MainCategoryModel) ToDomain() *catalog.MainCategory {
	return &catalog.MainCategory{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Slug:              m.Slug,
		Description:       m.Description,
	}
}

// MainCategoryModelFromDomain creates a persistence model from a domain entity.
func MainCategoryModelFromDomain(c *catalog.MainCategory) *MainCategoryModel {
	m := &MainCategoryModel{}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Slug = c.Slug
	m.Description = c.Description
	return m
}

// SubCategoryModel is the persistence model for the SubCategory entity.
type SubCategoryModel struct {
	AggregateModel
	MainCategoryID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"type:varchar(100);not null"`
	Slug           string    `gorm:"type:varchar(120);not null;uniqueIndex"`
	Description    string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SubCategoryModel) TableName() string {
	return "sub_categories"
}

// ToDomain converts the persistence model to a domain SubCategory entity.
func (m *SubCategoryModel) ToDomain() *catalog.SubCategory {
	return &catalog.SubCategory{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		MainCategoryID:    m.MainCategoryID,
		Name:              m.Name,
		Slug:              m.Slug,
		Description:       m.Description,
	}
}

// SubCategoryModelFromDomain creates a persistence model from a domain entity.
func SubCategoryModelFromDomain(c *catalog.SubCategory) *SubCategoryModel {
	m := &SubCategoryModel{}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.MainCategoryID = c.MainCategoryID
	m.Name = c.Name
	m.Slug = c.Slug
	m.Description = c.Description
	return m
}
