// internal/interfaces/http/handlers/admin_order.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jhuggee/marketplace-backend/internal/domain/order"
	"github.com/jhuggee/marketplace-backend/internal/pkg/response"
)

// AdminOrderHandler serves admin order management
type AdminOrderHandler struct {
	orderService *order.Service
}

// NewAdminOrderHandler creates a new admin order handler
func NewAdminOrderHandler(orderService *order.Service) *AdminOrderHandler {
	return &AdminOrderHandler{orderService: orderService}
}

// List handles GET /admin/orders
func (h *AdminOrderHandler) List(c *gin.Context) {
	var req order.AdminListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	result, err := h.orderService.ListAll(&req)
	if err != nil {
		response.InternalError(c, "Failed to list orders")
		return
	}
	response.OK(c, result)
}

// UpdateStatus handles PUT /admin/orders/:id/status
func (h *AdminOrderHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid order id")
		return
	}

	var req order.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	ord, err := h.orderService.UpdateStatus(uint(id), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			response.NotFound(c, "Order not found")
		case errors.Is(err, order.ErrInvalidTransition), errors.Is(err, order.ErrNotCancellable):
			response.Conflict(c, err.Error())
		default:
			response.InternalError(c, "Failed to update order status")
		}
		return
	}
	response.OK(c, ord)
}
