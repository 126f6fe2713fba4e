package catalog

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/pyasti/backend/internal/domain/shared"
	"github.com/pyasti/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// VehicleCompatibility describes one vehicle a part fits
type VehicleCompatibility struct {
	Make  string `json:"make"`
	Model string `json:"model"`
	Years []int  `json:"years,omitempty"`
}

// Product represents an auto part listed by a seller
// It is the aggregate root for catalog operations
type Product struct {
	shared.BaseAggregateRoot
	SellerID             uuid.UUID
	Name                 string
	Slug                 string
	Brand                string
	PartNumber           string
	SubCategoryID        uuid.UUID
	Description          string
	Images               []string
	Price                decimal.Decimal
	DiscountPrice        *decimal.Decimal
	CountInStock         int
	NumSales             int
	Tags                 []string
	Colors               []string
	Sizes                []string
	VehicleCompatibility []VehicleCompatibility
	Specifications       map[string]string
	AvgRating            decimal.Decimal
	NumReviews           int
	IsPublished          bool
}

// NewProduct creates a new product owned by a seller
func NewProduct(sellerID uuid.UUID, name, brand, partNumber string, subCategoryID uuid.UUID, price decimal.Decimal) (*Product, error) {
	if sellerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SELLER", "Seller is required")
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if strings.TrimSpace(brand) == "" {
		return nil, shared.NewDomainError("INVALID_BRAND", "Brand cannot be empty")
	}
	if strings.TrimSpace(partNumber) == "" {
		return nil, shared.NewDomainError("INVALID_PART_NUMBER", "Part number cannot be empty")
	}
	if subCategoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUBCATEGORY", "Subcategory is required")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SellerID:          sellerID,
		Name:              strings.TrimSpace(name),
		Slug:              Slugify(name),
		Brand:             strings.TrimSpace(brand),
		PartNumber:        strings.TrimSpace(partNumber),
		SubCategoryID:     subCategoryID,
		Price:             price,
		Tags:              []string{"new arrival"},
		AvgRating:         decimal.Zero,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information and regenerates the slug
func (p *Product) Update(name, brand, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if strings.TrimSpace(brand) == "" {
		return shared.NewDomainError("INVALID_BRAND", "Brand cannot be empty")
	}

	p.Name = strings.TrimSpace(name)
	p.Slug = Slugify(name)
	p.Brand = strings.TrimSpace(brand)
	p.Description = description
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetPrices sets the list price and optional discount price
func (p *Product) SetPrices(price decimal.Decimal, discountPrice *decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if discountPrice != nil && discountPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Discount price cannot be negative")
	}

	p.Price = price
	p.DiscountPrice = discountPrice
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetStock replaces the stock count
func (p *Product) SetStock(count int) error {
	if count < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	p.CountInStock = count
	p.Touch()
	p.IncrementVersion()

	return nil
}

// Publish makes the product visible in the storefront
func (p *Product) Publish() error {
	if p.IsPublished {
		return shared.NewDomainError("ALREADY_PUBLISHED", "Product is already published")
	}

	p.IsPublished = true
	p.Touch()
	p.IncrementVersion()

	return nil
}

// Unpublish hides the product from the storefront
func (p *Product) Unpublish() error {
	if !p.IsPublished {
		return shared.NewDomainError("NOT_PUBLISHED", "Product is not published")
	}

	p.IsPublished = false
	p.Touch()
	p.IncrementVersion()

	return nil
}

// HasStock returns true if at least quantity units are available
func (p *Product) HasStock(quantity int) bool {
	return quantity > 0 && p.CountInStock >= quantity
}

// EffectivePrice returns the discount price when set, otherwise the list price
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.DiscountPrice != nil && p.DiscountPrice.IsPositive() {
		return *p.DiscountPrice
	}
	return p.Price
}

// EffectivePriceMoney returns the effective price as a Money value object
func (p *Product) EffectivePriceMoney() valueobject.Money {
	return valueobject.NewMoneyDZD(p.EffectivePrice())
}

// PrimaryImage returns the first image URL, or empty string if none
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

var slugStripPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify generates a URL-safe slug from a product name
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugStripPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
