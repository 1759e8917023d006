// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jhuggee/marketplace-backend/internal/domain/cart"
	"github.com/jhuggee/marketplace-backend/internal/interfaces/http/middleware"
	"github.com/jhuggee/marketplace-backend/internal/pkg/response"
)

// CartHandler serves the cart endpoints
type CartHandler struct {
	cartService *cart.Service
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get handles GET /cart
func (h *CartHandler) Get(c *gin.Context) {
	result, err := h.cartService.Get(middleware.UserID(c))
	if err != nil {
		response.InternalError(c, "Failed to get cart")
		return
	}
	response.OK(c, result)
}

// Add handles POST /cart
func (h *CartHandler) Add(c *gin.Context) {
	var req cart.AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.cartService.Add(middleware.UserID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrProductNotFound):
			response.NotFound(c, "Product not found")
		case errors.Is(err, cart.ErrInsufficientStock):
			response.Conflict(c, "Not enough stock available")
		default:
			response.InternalError(c, "Failed to add to cart")
		}
		return
	}
	response.OK(c, result)
}

// UpdateQuantity handles PATCH /cart/:itemID
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("itemID"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid cart item id")
		return
	}

	var req cart.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.cartService.UpdateQuantity(middleware.UserID(c), uint(itemID), &req)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrItemNotFound):
			response.NotFound(c, "Cart item not found")
		case errors.Is(err, cart.ErrInsufficientStock):
			response.Conflict(c, "Not enough stock available")
		default:
			response.InternalError(c, "Failed to update cart")
		}
		return
	}
	response.OK(c, result)
}

// Remove handles DELETE /cart/:itemID
func (h *CartHandler) Remove(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("itemID"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid cart item id")
		return
	}

	result, err := h.cartService.Remove(middleware.UserID(c), uint(itemID))
	if err != nil {
		if errors.Is(err, cart.ErrItemNotFound) {
			response.NotFound(c, "Cart item not found")
			return
		}
		response.InternalError(c, "Failed to remove cart item")
		return
	}
	response.OK(c, result)
}

// Clear handles DELETE /cart
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cartService.Clear(middleware.UserID(c)); err != nil {
		response.InternalError(c, "Failed to clear cart")
		return
	}
	response.OK(c, gin.H{"cleared": true})
}
