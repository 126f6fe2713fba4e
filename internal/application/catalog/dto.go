package catalog

import (
	"time"

	"github.com/pyasti/backend/internal/domain/catalog"
)

// CreateProductRequest is the payload for listing a new product
type CreateProductRequest struct {
	Name                 string                         `json:"name" binding:"required,max=200"`
	Brand                string                         `json:"brand" binding:"required"`
	PartNumber           string                         `json:"partNumber" binding:"required"`
	SubCategoryID        string                         `json:"subCategoryId" binding:"required,uuid"`
	Description          string                         `json:"description"`
	Images               []string                       `json:"images"`
	Price                string                         `json:"price" binding:"required"`
	DiscountPrice        *string                        `json:"discountPrice"`
	CountInStock         int                            `json:"countInStock" binding:"min=0"`
	Colors               []string                       `json:"colors"`
	Sizes                []string                       `json:"sizes"`
	VehicleCompatibility []catalog.VehicleCompatibility `json:"vehicleCompatibility"`
	Specifications       map[string]string              `json:"specifications"`
}

// UpdateProductRequest is the payload for editing a product
type UpdateProductRequest struct {
	Name          string  `json:"name" binding:"required,max=200"`
	Brand         string  `json:"brand" binding:"required"`
	Description   string  `json:"description"`
	Price         string  `json:"price" binding:"required"`
	DiscountPrice *string `json:"discountPrice"`
	CountInStock  int     `json:"countInStock" binding:"min=0"`
}

// ProductDTO is the read model for a product
type ProductDTO struct {
	ID                   string                         `json:"id"`
	SellerID             string                         `json:"sellerId"`
	Name                 string                         `json:"name"`
	Slug                 string                         `json:"slug"`
	Brand                string                         `json:"brand"`
	PartNumber           string                         `json:"partNumber"`
	SubCategoryID        string                         `json:"subCategoryId"`
	Description          string                         `json:"description,omitempty"`
	Images               []string                       `json:"images"`
	Price                string                         `json:"price"`
	DiscountPrice        *string                        `json:"discountPrice,omitempty"`
	CountInStock         int                            `json:"countInStock"`
	NumSales             int                            `json:"numSales"`
	Tags                 []string                       `json:"tags"`
	Colors               []string                       `json:"colors"`
	Sizes                []string                       `json:"sizes"`
	VehicleCompatibility []catalog.VehicleCompatibility `json:"vehicleCompatibility,omitempty"`
	Specifications       map[string]string              `json:"specifications,omitempty"`
	AvgRating            string                         `json:"avgRating"`
	NumReviews           int                            `json:"numReviews"`
	IsPublished          bool                           `json:"isPublished"`
	CreatedAt            time.Time                      `json:"createdAt"`
	UpdatedAt            time.Time                      `json:"updatedAt"`
}

// ToProductDTO maps a domain product to its read model
func ToProductDTO(product *catalog.Product) ProductDTO {
	dto := ProductDTO{
		ID:                   product.ID.String(),
		SellerID:             product.SellerID.String(),
		Name:                 product.Name,
		Slug:                 product.Slug,
		Brand:                product.Brand,
		PartNumber:           product.PartNumber,
		SubCategoryID:        product.SubCategoryID.String(),
		Description:          product.Description,
		Images:               product.Images,
		Price:                product.Price.StringFixed(2),
		CountInStock:         product.CountInStock,
		NumSales:             product.NumSales,
		Tags:                 product.Tags,
		Colors:               product.Colors,
		Sizes:                product.Sizes,
		VehicleCompatibility: product.VehicleCompatibility,
		Specifications:       product.Specifications,
		AvgRating:            product.AvgRating.StringFixed(1),
		NumReviews:           product.NumReviews,
		IsPublished:          product.IsPublished,
		CreatedAt:            product.CreatedAt,
		UpdatedAt:            product.UpdatedAt,
	}
	if product.DiscountPrice != nil {
		s := product.DiscountPrice.StringFixed(2)
		dto.DiscountPrice = &s
	}
	return dto
}

// ToProductDTOs maps a slice of domain products
func ToProductDTOs(products []catalog.Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, ToProductDTO(&products[i]))
	}
	return dtos
}

// MainCategoryRequest is the payload for creating or editing a main category
type MainCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

// SubCategoryRequest is the payload for creating or editing a subcategory
type SubCategoryRequest struct {
	MainCategoryID string `json:"mainCategoryId" binding:"required,uuid"`
	Name           string `json:"name" binding:"required,max=100"`
	Description    string `json:"description"`
}

// MainCategoryDTO is the read model for a main category
type MainCategoryDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SubCategoryDTO is the read model for a subcategory
type SubCategoryDTO struct {
	ID             string    `json:"id"`
	MainCategoryID string    `json:"mainCategoryId"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Description    string    `json:"description,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ToMainCategoryDTO maps a domain main category to its read model
func ToMainCategoryDTO(category *catalog.MainCategory) MainCategoryDTO {
	return MainCategoryDTO{
		ID:          category.ID.String(),
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

// ToMainCategoryDTOs maps a slice of domain main categories
func ToMainCategoryDTOs(categories []catalog.MainCategory) []MainCategoryDTO {
	dtos := make([]MainCategoryDTO, 0, len(categories))
	for i := range categories {
		dtos = append(dtos, ToMainCategoryDTO(&categories[i]))
	}
	return dtos
}

// ToSubCategoryDTO maps a domain subcategory to its read model
func ToSubCategoryDTO(subCategory *catalog.SubCategory) SubCategoryDTO {
	return SubCategoryDTO{
		ID:             subCategory.ID.String(),
		MainCategoryID: subCategory.MainCategoryID.String(),
		Name:           subCategory.Name,
		Slug:           subCategory.Slug,
		Description:    subCategory.Description,
		CreatedAt:      subCategory.CreatedAt,
		UpdatedAt:      subCategory.UpdatedAt,
	}
}

// ToSubCategoryDTOs maps a slice of domain subcategories
func ToSubCategoryDTOs(subCategories []catalog.SubCategory) []SubCategoryDTO {
	dtos := make([]SubCategoryDTO, 0, len(subCategories))
	for i := range subCategories {
		dtos = append(dtos, ToSubCategoryDTO(&subCategories[i]))
	}
	return dtos
}
