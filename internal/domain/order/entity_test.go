package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusPending, StatusDelivered, false},
		{StatusConfirmed, StatusShipped, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusDelivered, false},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, false},
		{StatusDelivered, StatusReturned, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusReturned, StatusPending, false},
	}

	for _, tc := range cases {
		ord := &Order{Status: tc.from}
		assert.Equal(t, tc.allowed, ord.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestCanBeCancelled(t *testing.T) {
	cancellable := []OrderStatus{StatusPending, StatusConfirmed}
	for _, status := range cancellable {
		ord := &Order{Status: status}
		assert.True(t, ord.CanBeCancelled(), "status %s", status)
	}

	final := []OrderStatus{StatusShipped, StatusDelivered, StatusCancelled, StatusReturned}
	for _, status := range final {
		ord := &Order{Status: status}
		assert.False(t, ord.CanBeCancelled(), "status %s", status)
	}
}

func TestGatewayOrderIDRoundTrip(t *testing.T) {
	ord := &Order{ID: 42}
	gatewayID := ord.GatewayOrderID()
	assert.Equal(t, "ORDER_42", gatewayID)

	id, err := ParseGatewayOrderID(gatewayID)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestParseGatewayOrderIDRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "42", "ORDER_", "ORDER_abc", "ORDER_-1", "ORDER_0", "order_42"} {
		_, err := ParseGatewayOrderID(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestValidPaymentMethod(t *testing.T) {
	assert.True(t, ValidPaymentMethod(MethodCOD))
	assert.True(t, ValidPaymentMethod(MethodUPI))
	assert.True(t, ValidPaymentMethod(MethodCard))
	assert.False(t, ValidPaymentMethod("netbanking"))
	assert.False(t, ValidPaymentMethod(""))
}

func TestIsPaid(t *testing.T) {
	assert.False(t, (&Order{PaymentStatus: PaymentPending}).IsPaid())
	assert.True(t, (&Order{PaymentStatus: PaymentPaid}).IsPaid())
	assert.False(t, (&Order{PaymentStatus: PaymentRefundPending}).IsPaid())
}
