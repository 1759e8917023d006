// internal/domain/checkout/service.go
package checkout

import (
	"fmt"

	"github.com/jhuggee/marketplace-backend/internal/config"
	"github.com/jhuggee/marketplace-backend/internal/domain/cart"
	"github.com/jhuggee/marketplace-backend/internal/domain/order"
)

// Service assembles the pre-checkout summary: the hydrated cart, computed
// charges and the payment methods on offer. Placing the order itself is the
// order service's job.
type Service struct {
	cartService *cart.Service
	cfg         *config.CheckoutConfig
}

// NewService creates a new checkout service
func NewService(cartService *cart.Service, cfg *config.CheckoutConfig) *Service {
	return &Service{cartService: cartService, cfg: cfg}
}

// Summary is what the checkout page renders
type Summary struct {
	Cart             *cart.Cart `json:"cart"`
	ItemsTotal       int64      `json:"items_total"`
	DeliveryCharge   int64      `json:"delivery_charge"`
	Total            int64      `json:"total"`
	FreeDeliveryOver int64      `json:"free_delivery_over"`
	PaymentMethods   []string   `json:"payment_methods"`
}

// GetSummary prices the user's current cart
func (s *Service) GetSummary(userID uint) (*Summary, error) {
	c, err := s.cartService.Get(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	deliveryCharge := int64(0)
	if c.Subtotal < s.cfg.FreeDeliveryThreshold {
		deliveryCharge = s.cfg.DeliveryCharge
	}
	if len(c.Items) == 0 {
		deliveryCharge = 0
	}

	return &Summary{
		Cart:             c,
		ItemsTotal:       c.Subtotal,
		DeliveryCharge:   deliveryCharge,
		Total:            c.Subtotal + deliveryCharge,
		FreeDeliveryOver: s.cfg.FreeDeliveryThreshold,
		PaymentMethods:   []string{order.MethodCOD, order.MethodUPI, order.MethodCard},
	}, nil
}
