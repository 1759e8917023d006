// internal/interfaces/http/handlers/address.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jhuggee/marketplace-backend/internal/domain/user"
	"github.com/jhuggee/marketplace-backend/internal/interfaces/http/middleware"
	"github.com/jhuggee/marketplace-backend/internal/pkg/response"
)

// AddressHandler serves saved delivery addresses
type AddressHandler struct {
	addressService *user.AddressService
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(addressService *user.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

// List handles GET /profile/addresses
func (h *AddressHandler) List(c *gin.Context) {
	addresses, err := h.addressService.List(middleware.UserID(c))
	if err != nil {
		response.InternalError(c, "Failed to list addresses")
		return
	}
	response.OK(c, addresses)
}

// Create handles POST /profile/addresses
func (h *AddressHandler) Create(c *gin.Context) {
	var req user.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	address, err := h.addressService.Create(middleware.UserID(c), &req)
	if err != nil {
		if errors.Is(err, user.ErrAddressLimit) {
			response.Conflict(c, "Address limit reached, remove one first")
			return
		}
		response.InternalError(c, "Failed to save address")
		return
	}
	response.Created(c, address)
}

// Update handles PUT /profile/addresses/:id
func (h *AddressHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid address id")
		return
	}

	var req user.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	address, err := h.addressService.Update(middleware.UserID(c), uint(id), &req)
	if err != nil {
		if errors.Is(err, user.ErrAddressNotFound) {
			response.NotFound(c, "Address not found")
			return
		}
		response.InternalError(c, "Failed to update address")
		return
	}
	response.OK(c, address)
}

// Delete handles DELETE /profile/addresses/:id
func (h *AddressHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid address id")
		return
	}

	if err := h.addressService.Delete(middleware.UserID(c), uint(id)); err != nil {
		if errors.Is(err, user.ErrAddressNotFound) {
			response.NotFound(c, "Address not found")
			return
		}
		response.InternalError(c, "Failed to delete address")
		return
	}
	response.OK(c, gin.H{"deleted": true})
}
