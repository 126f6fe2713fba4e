package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pyasti/backend/internal/application/catalog"
	"github.com/pyasti/backend/internal/interfaces/http/middleware"
)

// ProductHandler handles catalog HTTP requests
type ProductHandler struct {
	BaseHandler
	productService *catalog.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *catalog.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List returns a paginated product listing. Public endpoint; only
// published products are visible without a query override.
func (h *ProductHandler) List(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BindingError(c, err)
		return
	}

	if brand := c.Query("brand"); brand != "" {
		filter.Filters["brand"] = brand
	}
	if subCategory := c.Query("sub_category_id"); subCategory != "" {
		filter.Filters["sub_category_id"] = subCategory
	}
	if minPrice := c.Query("min_price"); minPrice != "" {
		filter.Filters["min_price"] = minPrice
	}
	if maxPrice := c.Query("max_price"); maxPrice != "" {
		filter.Filters["max_price"] = maxPrice
	}
	if c.Query("in_stock") == "true" {
		filter.Filters["in_stock"] = true
	}
	filter.Filters["is_published"] = true

	page, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns one product by ID
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// GetBySlug returns one product by its slug
func (h *ProductHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		h.BadRequest(c, "Missing product slug")
		return
	}

	product, err := h.productService.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// ListMine returns the requesting seller's products
func (h *ProductHandler) ListMine(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BindingError(c, err)
		return
	}

	products, err := h.productService.ListBySeller(c.Request.Context(), middleware.GetUserID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// Create lists a new product for the requesting seller
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), middleware.GetUserID(c), middleware.GetRole(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Update edits a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalog.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), middleware.GetUserID(c), middleware.GetRole(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

type publishRequest struct {
	Published *bool `json:"published" binding:"required"`
}

// SetPublished publishes or unpublishes a product
func (h *ProductHandler) SetPublished(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.productService.SetPublished(c.Request.Context(), middleware.GetUserID(c), middleware.GetRole(c), id, *req.Published)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete removes a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), middleware.GetUserID(c), middleware.GetRole(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
