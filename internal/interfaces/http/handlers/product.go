// internal/interfaces/http/handlers/product.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jhuggee/marketplace-backend/internal/domain/product"
	"github.com/jhuggee/marketplace-backend/internal/pkg/response"
)

// ProductHandler serves the public catalog read side
type ProductHandler struct {
	productService *product.Service
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *product.Service) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	var req product.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	result, err := h.productService.List(&req)
	if err != nil {
		response.InternalError(c, "Failed to list products")
		return
	}
	response.OK(c, result)
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid product id")
		return
	}

	p, err := h.productService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			response.NotFound(c, "Product not found")
			return
		}
		response.InternalError(c, "Failed to get product")
		return
	}
	response.OK(c, p)
}
