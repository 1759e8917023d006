// internal/interfaces/http/handlers/order.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jhuggee/marketplace-backend/internal/domain/order"
	"github.com/jhuggee/marketplace-backend/internal/domain/payment"
	"github.com/jhuggee/marketplace-backend/internal/interfaces/http/middleware"
	"github.com/jhuggee/marketplace-backend/internal/pkg/response"
)

// OrderHandler serves checkout, verification, cancellation and listing
type OrderHandler struct {
	orderService *order.Service
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *order.Service) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create handles POST /orders (cash on delivery)
func (h *OrderHandler) Create(c *gin.Context) {
	var req order.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	ord, err := h.orderService.CreateOrder(middleware.UserID(c), &req)
	if err != nil {
		h.writeCheckoutError(c, err)
		return
	}
	response.Created(c, ord)
}

// CreatePayment handles POST /orders/payment (online payment)
func (h *OrderHandler) CreatePayment(c *gin.Context) {
	var req order.GatewayCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	claims := middleware.SessionClaims(c)
	if claims == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	session, err := h.orderService.CreateGatewayOrder(c.Request.Context(), order.Customer{
		UserID: claims.UserID,
		Phone:  claims.Phone,
		Email:  claims.Email,
	}, &req)
	if err != nil {
		h.writeCheckoutError(c, err)
		return
	}
	response.Created(c, session)
}

// Verify handles POST /orders/verify
func (h *OrderHandler) Verify(c *gin.Context) {
	var req order.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	ord, err := h.orderService.VerifyPayment(c.Request.Context(), middleware.UserID(c), req.GatewayOrderID)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			response.NotFound(c, "Order not found")
		case errors.Is(err, order.ErrVerificationInProgress):
			response.Conflict(c, "Verification already in progress")
		case errors.Is(err, order.ErrPaymentNotCompleted):
			response.BadRequest(c, "Payment has not completed")
		case errors.Is(err, order.ErrInsufficientStock):
			response.Conflict(c, "Not enough stock available")
		case errors.Is(err, payment.ErrGateway):
			response.GatewayError(c, "Payment gateway unavailable, please retry")
		default:
			response.InternalError(c, "Failed to verify payment")
		}
		return
	}
	response.OK(c, ord)
}

// Cancel handles PUT /orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid order id")
		return
	}

	ord, err := h.orderService.CancelOrder(middleware.UserID(c), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			response.NotFound(c, "Order not found")
		case errors.Is(err, order.ErrNotCancellable):
			response.Conflict(c, "Order can no longer be cancelled")
		default:
			response.InternalError(c, "Failed to cancel order")
		}
		return
	}
	response.OK(c, ord)
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orderService.GetUserOrders(middleware.UserID(c))
	if err != nil {
		response.InternalError(c, "Failed to list orders")
		return
	}
	response.OK(c, orders)
}

// Get handles GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid order id")
		return
	}

	ord, err := h.orderService.GetUserOrder(middleware.UserID(c), uint(id))
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			response.NotFound(c, "Order not found")
			return
		}
		response.InternalError(c, "Failed to get order")
		return
	}
	response.OK(c, ord)
}

// writeCheckoutError maps checkout failures onto the error taxonomy
func (h *OrderHandler) writeCheckoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrEmptyCart):
		response.BadRequest(c, "Cart is empty")
	case errors.Is(err, order.ErrInvalidPaymentMethod):
		response.BadRequest(c, "Invalid payment method")
	case errors.Is(err, order.ErrProductUnavailable):
		response.Conflict(c, "A product in your order is no longer available")
	case errors.Is(err, order.ErrInsufficientStock):
		response.Conflict(c, "Not enough stock available")
	case errors.Is(err, payment.ErrGateway), errors.Is(err, payment.ErrNoSession):
		response.GatewayError(c, "Could not start payment, please retry")
	default:
		response.InternalError(c, "Failed to place order")
	}
}
