package order

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhuggee/marketplace-backend/internal/config"
)

func testCheckoutConfig() *config.CheckoutConfig {
	return &config.CheckoutConfig{
		FreeDeliveryThreshold: 199,
		DeliveryCharge:        49,
		DeliveryLeadDays:      5,
		MaxAddresses:          3,
	}
}

func TestDeliveryChargeBoundary(t *testing.T) {
	s := &Service{cfg: testCheckoutConfig()}

	assert.Equal(t, int64(49), s.deliveryChargeFor(1))
	assert.Equal(t, int64(49), s.deliveryChargeFor(198))
	assert.Equal(t, int64(0), s.deliveryChargeFor(199))
	assert.Equal(t, int64(0), s.deliveryChargeFor(200))
	assert.Equal(t, int64(0), s.deliveryChargeFor(10000))
}
