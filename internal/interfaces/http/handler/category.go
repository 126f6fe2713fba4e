package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pyasti/backend/internal/application/catalog"
	"github.com/pyasti/backend/internal/interfaces/http/middleware"
)

// CategoryHandler handles taxonomy HTTP requests
type CategoryHandler struct {
	BaseHandler
	categoryService *catalog.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService *catalog.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// ListMain returns a paginated main category listing
func (h *CategoryHandler) ListMain(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BindingError(c, err)
		return
	}

	page, err := h.categoryService.ListMain(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetMain returns one main category
func (h *CategoryHandler) GetMain(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	category, err := h.categoryService.GetMain(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// ListSubOfMain returns every subcategory under one main category
func (h *CategoryHandler) ListSubOfMain(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	subCategories, err := h.categoryService.ListSubByMain(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, subCategories)
}

// CreateMain creates a main category
func (h *CategoryHandler) CreateMain(c *gin.Context) {
	var req catalog.MainCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	category, err := h.categoryService.CreateMain(c.Request.Context(), middleware.GetRole(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// UpdateMain edits a main category
func (h *CategoryHandler) UpdateMain(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	var req catalog.MainCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	category, err := h.categoryService.UpdateMain(c.Request.Context(), middleware.GetRole(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// DeleteMain removes a main category
func (h *CategoryHandler) DeleteMain(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.categoryService.DeleteMain(c.Request.Context(), middleware.GetRole(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListSub returns a paginated subcategory listing
func (h *CategoryHandler) ListSub(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BindingError(c, err)
		return
	}
	if mainID := c.Query("main_category_id"); mainID != "" {
		filter.Filters["main_category_id"] = mainID
	}

	page, err := h.categoryService.ListSub(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetSub returns one subcategory
func (h *CategoryHandler) GetSub(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.BadRequest(c, "Invalid subcategory ID")
		return
	}

	subCategory, err := h.categoryService.GetSub(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, subCategory)
}

// CreateSub creates a subcategory
func (h *CategoryHandler) CreateSub(c *gin.Context) {
	var req catalog.SubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	subCategory, err := h.categoryService.CreateSub(c.Request.Context(), middleware.GetRole(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, subCategory)
}

// UpdateSub edits a subcategory
func (h *CategoryHandler) UpdateSub(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.BadRequest(c, "Invalid subcategory ID")
		return
	}

	var req catalog.SubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	subCategory, err := h.categoryService.UpdateSub(c.Request.Context(), middleware.GetRole(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, subCategory)
}

// DeleteSub removes a subcategory
func (h *CategoryHandler) DeleteSub(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.BadRequest(c, "Invalid subcategory ID")
		return
	}

	if err := h.categoryService.DeleteSub(c.Request.Context(), middleware.GetRole(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
