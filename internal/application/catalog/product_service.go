package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/pyasti/backend/internal/domain/catalog"
	"github.com/pyasti/backend/internal/domain/identity"
	"github.com/pyasti/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductService handles catalog business operations
type ProductService struct {
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		logger:      logger.Named("catalog"),
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create lists a new product for the requesting seller
func (s *ProductService) Create(ctx context.Context, sellerID uuid.UUID, role identity.Role, req CreateProductRequest) (*ProductDTO, error) {
	if sellerID == uuid.Nil {
		return nil, shared.ErrUnauthenticated
	}
	if role != identity.RoleSeller && role != identity.RoleAdmin {
		return nil, shared.ErrForbidden
	}

	subCategoryID, err := uuid.Parse(req.SubCategoryID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid subcategory ID")
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid price")
	}

	product, err := catalog.NewProduct(sellerID, req.Name, req.Brand, req.PartNumber, subCategoryID, price)
	if err != nil {
		return nil, err
	}

	var discount *decimal.Decimal
	if req.DiscountPrice != nil {
		d, err := decimal.NewFromString(*req.DiscountPrice)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid discount price")
		}
		discount = &d
	}
	if err := product.SetPrices(price, discount); err != nil {
		return nil, err
	}
	if err := product.SetStock(req.CountInStock); err != nil {
		return nil, err
	}

	product.Description = req.Description
	product.Images = req.Images
	product.Colors = req.Colors
	product.Sizes = req.Sizes
	product.VehicleCompatibility = req.VehicleCompatibility
	product.Specifications = req.Specifications

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	dto := ToProductDTO(product)
	return &dto, nil
}

// Update edits a product; only the owning seller or an admin may edit
func (s *ProductService) Update(ctx context.Context, requesterID uuid.UUID, role identity.Role, productID uuid.UUID, req UpdateProductRequest) (*ProductDTO, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if role != identity.RoleAdmin && product.SellerID != requesterID {
		return nil, shared.ErrForbidden
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid price")
	}
	var discount *decimal.Decimal
	if req.DiscountPrice != nil {
		d, err := decimal.NewFromString(*req.DiscountPrice)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid discount price")
		}
		discount = &d
	}

	if err := product.Update(req.Name, req.Brand, req.Description); err != nil {
		return nil, err
	}
	if err := product.SetPrices(price, discount); err != nil {
		return nil, err
	}
	if err := product.SetStock(req.CountInStock); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	dto := ToProductDTO(product)
	return &dto, nil
}

// SetPublished publishes or unpublishes a product
func (s *ProductService) SetPublished(ctx context.Context, requesterID uuid.UUID, role identity.Role, productID uuid.UUID, published bool) (*ProductDTO, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if role != identity.RoleAdmin && product.SellerID != requesterID {
		return nil, shared.ErrForbidden
	}

	if published {
		err = product.Publish()
	} else {
		err = product.Unpublish()
	}
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	dto := ToProductDTO(product)
	return &dto, nil
}

// GetByID returns one product
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	dto := ToProductDTO(product)
	return &dto, nil
}

// GetBySlug returns one product by its slug
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductDTO, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	dto := ToProductDTO(product)
	return &dto, nil
}

// List returns a paginated product listing
func (s *ProductService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ProductDTO], error) {
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(ToProductDTOs(products), total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListBySeller returns one seller's products
func (s *ProductService) ListBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) ([]ProductDTO, error) {
	products, err := s.productRepo.FindBySeller(ctx, sellerID, filter)
	if err != nil {
		return nil, err
	}
	return ToProductDTOs(products), nil
}

// Delete removes a product; only the owning seller or an admin may delete
func (s *ProductService) Delete(ctx context.Context, requesterID uuid.UUID, role identity.Role, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if role != identity.RoleAdmin && product.SellerID != requesterID {
		return shared.ErrForbidden
	}
	return s.productRepo.Delete(ctx, productID)
}

func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	if s.eventPublisher == nil {
		return
	}
	if events := product.GetDomainEvents(); len(events) > 0 {
		if err := s.eventPublisher.Publish(ctx, events...); err != nil {
			s.logger.Warn("failed to publish product events",
				zap.String("product_id", product.ID.String()),
				zap.Error(err))
		}
		product.ClearDomainEvents()
	}
}
