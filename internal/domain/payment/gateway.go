// internal/domain/payment/gateway.go
package payment

import (
	"context"
	"errors"
)

// Gateway errors
var (
	ErrGateway   = errors.New("payment gateway error")
	ErrNoSession = errors.New("payment session not created")
)

// Attempt status reported by the gateway
const (
	AttemptStatusSuccess = "SUCCESS"
	AttemptStatusFailed  = "FAILED"
	AttemptStatusPending = "PENDING"
)

// SessionRequest carries what the gateway needs to open a payment session
type SessionRequest struct {
	GatewayOrderID string
	Amount         int64
	Currency       string
	CustomerID     string
	CustomerPhone  string
	CustomerEmail  string
}

// Session is an open payment session at the gateway
type Session struct {
	GatewayOrderID   string `json:"gateway_order_id"`
	PaymentSessionID string `json:"payment_session_id"`
}

// PaymentAttempt is one payment attempt recorded at the gateway
type PaymentAttempt struct {
	PaymentID string `json:"cf_payment_id"`
	Status    string `json:"payment_status"`
	Amount    int64  `json:"payment_amount"`
	Method    string `json:"payment_group"`
	Message   string `json:"payment_message"`
}

// IsSuccessful reports whether this attempt completed
func (a PaymentAttempt) IsSuccessful() bool {
	return a.Status == AttemptStatusSuccess
}

// Gateway abstracts the payment provider. The production implementation
// talks to Cashfree; tests substitute a fake.
type Gateway interface {
	CreateSession(ctx context.Context, req *SessionRequest) (*Session, error)
	FetchPayments(ctx context.Context, gatewayOrderID string) ([]PaymentAttempt, error)
}

// AnySuccessful reports whether at least one attempt in the list succeeded
func AnySuccessful(attempts []PaymentAttempt) bool {
	for _, a := range attempts {
		if a.IsSuccessful() {
			return true
		}
	}
	return false
}
