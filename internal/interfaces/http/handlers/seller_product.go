// internal/interfaces/http/handlers/seller_product.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jhuggee/marketplace-backend/internal/domain/product"
	"github.com/jhuggee/marketplace-backend/internal/domain/seller"
	"github.com/jhuggee/marketplace-backend/internal/interfaces/http/middleware"
	"github.com/jhuggee/marketplace-backend/internal/pkg/response"
)

// SellerProductHandler serves seller profile and product management
type SellerProductHandler struct {
	sellerService  *seller.Service
	productService *product.Service
}

// NewSellerProductHandler creates a new seller product handler
func NewSellerProductHandler(sellerService *seller.Service, productService *product.Service) *SellerProductHandler {
	return &SellerProductHandler{sellerService: sellerService, productService: productService}
}

// sellerID resolves the seller profile for the authenticated user
func (h *SellerProductHandler) sellerID(c *gin.Context) (uint, bool) {
	s, err := h.sellerService.GetByUserID(middleware.UserID(c))
	if err != nil {
		if errors.Is(err, seller.ErrSellerNotFound) {
			response.Forbidden(c, "Seller profile required")
			return 0, false
		}
		response.InternalError(c, "Failed to resolve seller")
		return 0, false
	}
	return s.ID, true
}

// GetProfile handles GET /seller/profile
func (h *SellerProductHandler) GetProfile(c *gin.Context) {
	s, err := h.sellerService.GetByUserID(middleware.UserID(c))
	if err != nil {
		if errors.Is(err, seller.ErrSellerNotFound) {
			response.NotFound(c, "Seller profile not found")
			return
		}
		response.InternalError(c, "Failed to get seller profile")
		return
	}
	response.OK(c, s)
}

// UpsertProfile handles PUT /seller/profile
func (h *SellerProductHandler) UpsertProfile(c *gin.Context) {
	var req seller.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	s, err := h.sellerService.Upsert(middleware.UserID(c), &req)
	if err != nil {
		response.InternalError(c, "Failed to save seller profile")
		return
	}
	response.OK(c, s)
}

// ListProducts handles GET /seller/products
func (h *SellerProductHandler) ListProducts(c *gin.Context) {
	sellerID, ok := h.sellerID(c)
	if !ok {
		return
	}

	products, err := h.productService.ListBySeller(sellerID)
	if err != nil {
		response.InternalError(c, "Failed to list products")
		return
	}
	response.OK(c, products)
}

// CreateProduct handles POST /seller/products
func (h *SellerProductHandler) CreateProduct(c *gin.Context) {
	sellerID, ok := h.sellerID(c)
	if !ok {
		return
	}

	var req product.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	p, err := h.productService.Create(sellerID, &req)
	if err != nil {
		if errors.Is(err, product.ErrPriceAboveMRP) {
			response.BadRequest(c, "Price cannot exceed MRP")
			return
		}
		response.InternalError(c, "Failed to create product")
		return
	}
	response.Created(c, p)
}

// UpdateProduct handles PATCH /seller/products/:id
func (h *SellerProductHandler) UpdateProduct(c *gin.Context) {
	sellerID, ok := h.sellerID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid product id")
		return
	}

	var req product.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	p, err := h.productService.Update(sellerID, uint(id), &req)
	if err != nil {
		switch {
		case errors.Is(err, product.ErrProductNotFound):
			response.NotFound(c, "Product not found")
		case errors.Is(err, product.ErrNotProductOwner):
			response.Forbidden(c, "Product belongs to another seller")
		case errors.Is(err, product.ErrPriceAboveMRP):
			response.BadRequest(c, "Price cannot exceed MRP")
		default:
			response.InternalError(c, "Failed to update product")
		}
		return
	}
	response.OK(c, p)
}

// DeleteProduct handles DELETE /seller/products/:id
func (h *SellerProductHandler) DeleteProduct(c *gin.Context) {
	sellerID, ok := h.sellerID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid product id")
		return
	}

	if err := h.productService.Delete(sellerID, uint(id)); err != nil {
		switch {
		case errors.Is(err, product.ErrProductNotFound):
			response.NotFound(c, "Product not found")
		case errors.Is(err, product.ErrNotProductOwner):
			response.Forbidden(c, "Product belongs to another seller")
		default:
			response.InternalError(c, "Failed to delete product")
		}
		return
	}
	response.OK(c, gin.H{"deleted": true})
}
