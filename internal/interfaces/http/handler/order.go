package handler

import (
	"github.com/gin-gonic/gin"
	appordering "github.com/pyasti/backend/internal/application/ordering"
	"github.com/pyasti/backend/internal/domain/ordering"
	"github.com/pyasti/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles checkout and order lifecycle HTTP requests
type OrderHandler struct {
	BaseHandler
	checkoutService *appordering.CheckoutService
	orderService    *appordering.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(checkoutService *appordering.CheckoutService, orderService *appordering.OrderService) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkoutService,
		orderService:    orderService,
	}
}

// Checkout turns the submitted cart into one order per seller
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req appordering.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.checkoutService.CreateOrder(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Get returns one order, visible to its buyer, its seller, or an admin
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), middleware.GetUserID(c), middleware.GetRole(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// ListMine lists the requesting buyer's orders
func (h *OrderHandler) ListMine(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BindingError(c, err)
		return
	}

	orders, err := h.orderService.ListMine(c.Request.Context(), middleware.GetUserID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// ListForSeller lists the requesting seller's orders
func (h *OrderHandler) ListForSeller(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BindingError(c, err)
		return
	}

	orders, err := h.orderService.ListForSeller(c.Request.Context(), middleware.GetUserID(c), middleware.GetRole(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// ListAll lists every order. Admin only.
func (h *OrderHandler) ListAll(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BindingError(c, err)
		return
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	orders, err := h.orderService.ListAll(c.Request.Context(), middleware.GetRole(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

type createPaymentResponse struct {
	GatewayOrderID string `json:"gatewayOrderId"`
}

// CreatePayment registers a payment intent with the gateway
func (h *OrderHandler) CreatePayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	gatewayOrderID, err := h.orderService.CreatePayment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, createPaymentResponse{GatewayOrderID: gatewayOrderID})
}

// ApprovePayment captures the gateway order and marks the order paid
func (h *OrderHandler) ApprovePayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.ApprovePayment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

type markPaidRequest struct {
	PaymentID    string `json:"paymentId" binding:"required"`
	Status       string `json:"status" binding:"required"`
	EmailAddress string `json:"emailAddress"`
}

// MarkPaid records a payment made outside the gateway flow. Admin only.
func (h *OrderHandler) MarkPaid(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req markPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	order, err := h.orderService.MarkPaid(c.Request.Context(), id, ordering.PaymentResult{
		ID:           req.PaymentID,
		Status:       req.Status,
		EmailAddress: req.EmailAddress,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// MarkDelivered records delivery, completing the order
func (h *OrderHandler) MarkDelivered(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.MarkDelivered(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Cancel cancels an order
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), middleware.GetUserID(c), middleware.GetRole(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete removes an order. Admin only.
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), middleware.GetRole(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
