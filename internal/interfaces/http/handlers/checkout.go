// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jhuggee/marketplace-backend/internal/domain/checkout"
	"github.com/jhuggee/marketplace-backend/internal/interfaces/http/middleware"
	"github.com/jhuggee/marketplace-backend/internal/pkg/response"
)

// CheckoutHandler serves the pre-checkout summary
type CheckoutHandler struct {
	checkoutService *checkout.Service
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Summary handles GET /checkout/summary
func (h *CheckoutHandler) Summary(c *gin.Context) {
	summary, err := h.checkoutService.GetSummary(middleware.UserID(c))
	if err != nil {
		response.InternalError(c, "Failed to build checkout summary")
		return
	}
	response.OK(c, summary)
}
