// internal/interfaces/http/handlers/wishlist.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jhuggee/marketplace-backend/internal/domain/wishlist"
	"github.com/jhuggee/marketplace-backend/internal/interfaces/http/middleware"
	"github.com/jhuggee/marketplace-backend/internal/pkg/response"
)

// WishlistHandler serves the wishlist endpoints
type WishlistHandler struct {
	wishlistService *wishlist.Service
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(wishlistService *wishlist.Service) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

// List handles GET /wishlist
func (h *WishlistHandler) List(c *gin.Context) {
	items, err := h.wishlistService.List(middleware.UserID(c))
	if err != nil {
		response.InternalError(c, "Failed to list wishlist")
		return
	}
	response.OK(c, items)
}

// Add handles POST /wishlist
func (h *WishlistHandler) Add(c *gin.Context) {
	var req wishlist.AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	item, err := h.wishlistService.Add(middleware.UserID(c), &req)
	if err != nil {
		if errors.Is(err, wishlist.ErrProductNotFound) {
			response.NotFound(c, "Product not found")
			return
		}
		response.InternalError(c, "Failed to add to wishlist")
		return
	}
	response.Created(c, item)
}

// Remove handles DELETE /wishlist/:productID
func (h *WishlistHandler) Remove(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("productID"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid product id")
		return
	}

	if err := h.wishlistService.Remove(middleware.UserID(c), uint(productID)); err != nil {
		if errors.Is(err, wishlist.ErrItemNotFound) {
			response.NotFound(c, "Wishlist item not found")
			return
		}
		response.InternalError(c, "Failed to remove wishlist item")
		return
	}
	response.OK(c, gin.H{"deleted": true})
}
