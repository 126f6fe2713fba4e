package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pyasti/backend/internal/application/identity"
	"github.com/pyasti/backend/internal/interfaces/http/middleware"
)

// UserHandler handles admin account administration requests
type UserHandler struct {
	BaseHandler
	userService *identity.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *identity.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns a paginated account listing
func (h *UserHandler) List(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BindingError(c, err)
		return
	}
	if role := c.Query("role"); role != "" {
		filter.Filters["role"] = role
	}

	page, err := h.userService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns one account
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Update edits an account's name, email, and role
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req identity.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Delete removes an account
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
