package models

import (
	"github.com/google/uuid"
	"github.com/pyasti/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	AggregateModel
	SellerID             uuid.UUID                      `gorm:"type:uuid;not null;index"`
	Name                 string                         `gorm:"type:varchar(200);not null"`
	Slug                 string                         `gorm:"type:varchar(250);not null;index"`
	Brand                string                         `gorm:"type:varchar(100);not null;index"`
	PartNumber           string                         `gorm:"type:varchar(100);not null;index"`
	SubCategoryID        uuid.UUID                      `gorm:"type:uuid;not null;index"`
	Description          string                         `gorm:"type:text"`
	Images               []string                       `gorm:"serializer:json;type:jsonb"`
	Price                decimal.Decimal                `gorm:"type:decimal(18,2);not null;default:0"`
	DiscountPrice        *decimal.Decimal               `gorm:"type:decimal(18,2)"`
	CountInStock         int                            `gorm:"not null;default:0"`
	NumSales             int                            `gorm:"not null;default:0"`
	Tags                 []string                       `gorm:"serializer:json;type:jsonb"`
	Colors               []string                       `gorm:"serializer:json;type:jsonb"`
	Sizes                []string                       `gorm:"serializer:json;type:jsonb"`
	VehicleCompatibility []catalog.VehicleCompatibility `gorm:"serializer:json;type:jsonb"`
	Specifications       map[string]string              `gorm:"serializer:json;type:jsonb"`
	AvgRating            decimal.Decimal                `gorm:"type:decimal(4,2);not null;default:0"`
	NumReviews           int                            `gorm:"not null;default:0"`
	IsPublished          bool                           `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot:    m.ToDomainAggregateRoot(),
		SellerID:             m.SellerID,
		Name:                 m.Name,
		Slug:                 m.Slug,
		Brand:                m.Brand,
		PartNumber:           m.PartNumber,
		SubCategoryID:        m.SubCategoryID,
		Description:          m.Description,
		Images:               m.Images,
		Price:                m.Price,
		DiscountPrice:        m.DiscountPrice,
		CountInStock:         m.CountInStock,
		NumSales:             m.NumSales,
		Tags:                 m.Tags,
		Colors:               m.Colors,
		Sizes:                m.Sizes,
		VehicleCompatibility: m.VehicleCompatibility,
		Specifications:       m.Specifications,
		AvgRating:            m.AvgRating,
		NumReviews:           m.NumReviews,
		IsPublished:          m.IsPublished,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.SellerID = p.SellerID
	m.Name = p.Name
	m.Slug = p.Slug
	m.Brand = p.Brand
	m.PartNumber = p.PartNumber
	m.SubCategoryID = p.SubCategoryID
	m.Description = p.Description
	m.Images = p.Images
	m.Price = p.Price
	m.DiscountPrice = p.DiscountPrice
	m.CountInStock = p.CountInStock
	m.NumSales = p.NumSales
	m.Tags = p.Tags
	m.Colors = p.Colors
	m.Sizes = p.Sizes
	m.VehicleCompatibility = p.VehicleCompatibility
	m.Specifications = p.Specifications
	m.AvgRating = p.AvgRating
	m.NumReviews = p.NumReviews
	m.IsPublished = p.IsPublished
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
