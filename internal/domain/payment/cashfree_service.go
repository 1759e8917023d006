// internal/domain/payment/cashfree_service.go
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jhuggee/marketplace-backend/internal/config"
)

// Cashfree PG API endpoints
const (
	cashfreeSandboxURL    = "https://sandbox.cashfree.com/pg"
	cashfreeProductionURL = "https://api.cashfree.com/pg"
	cashfreeAPIVersion    = "2023-08-01"
)

// CashfreeService talks to the Cashfree payment gateway
type CashfreeService struct {
	appID     string
	secretKey string
	baseURL   string
	returnURL string
	client    *http.Client
}

// NewCashfreeService creates a Cashfree gateway client from config
func NewCashfreeService(cfg *config.CashfreeConfig) *CashfreeService {
	baseURL := cashfreeSandboxURL
	if cfg.Environment == "production" {
		baseURL = cashfreeProductionURL
	}
	return &CashfreeService{
		appID:     cfg.AppID,
		secretKey: cfg.SecretKey,
		baseURL:   baseURL,
		returnURL: cfg.ReturnURL,
		client:    &http.Client{Timeout: cfg.Timeout},
	}
}

type cashfreeCreateOrderRequest struct {
	OrderID         string                  `json:"order_id"`
	OrderAmount     float64                 `json:"order_amount"`
	OrderCurrency   string                  `json:"order_currency"`
	CustomerDetails cashfreeCustomerDetails `json:"customer_details"`
	OrderMeta       cashfreeOrderMeta       `json:"order_meta"`
}

type cashfreeCustomerDetails struct {
	CustomerID    string `json:"customer_id"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email,omitempty"`
}

type cashfreeOrderMeta struct {
	ReturnURL string `json:"return_url,omitempty"`
}

type cashfreeCreateOrderResponse struct {
	OrderID          string `json:"order_id"`
	PaymentSessionID string `json:"payment_session_id"`
	OrderStatus      string `json:"order_status"`
}

type cashfreePayment struct {
	CFPaymentID   json.Number `json:"cf_payment_id"`
	PaymentStatus string      `json:"payment_status"`
	PaymentAmount float64     `json:"payment_amount"`
	PaymentGroup  string      `json:"payment_group"`
	PaymentMsg    string      `json:"payment_message"`
}

// CreateSession opens a payment session at Cashfree for a gateway order id
func (s *CashfreeService) CreateSession(ctx context.Context, req *SessionRequest) (*Session, error) {
	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}
	payload := cashfreeCreateOrderRequest{
		OrderID:       req.GatewayOrderID,
		OrderAmount:   float64(req.Amount),
		OrderCurrency: currency,
		CustomerDetails: cashfreeCustomerDetails{
			CustomerID:    req.CustomerID,
			CustomerPhone: req.CustomerPhone,
			CustomerEmail: req.CustomerEmail,
		},
		OrderMeta: cashfreeOrderMeta{ReturnURL: s.returnURL},
	}

	var resp cashfreeCreateOrderResponse
	if err := s.makeAPICall(ctx, http.MethodPost, "/orders", payload, &resp); err != nil {
		return nil, err
	}
	if resp.PaymentSessionID == "" {
		return nil, ErrNoSession
	}

	return &Session{
		GatewayOrderID:   resp.OrderID,
		PaymentSessionID: resp.PaymentSessionID,
	}, nil
}

// FetchPayments returns every payment attempt recorded for a gateway order
func (s *CashfreeService) FetchPayments(ctx context.Context, gatewayOrderID string) ([]PaymentAttempt, error) {
	var payments []cashfreePayment
	path := fmt.Sprintf("/orders/%s/payments", gatewayOrderID)
	if err := s.makeAPICall(ctx, http.MethodGet, path, nil, &payments); err != nil {
		return nil, err
	}

	attempts := make([]PaymentAttempt, 0, len(payments))
	for _, p := range payments {
		attempts = append(attempts, PaymentAttempt{
			PaymentID: p.CFPaymentID.String(),
			Status:    p.PaymentStatus,
			Amount:    int64(p.PaymentAmount),
			Method:    p.PaymentGroup,
			Message:   p.PaymentMsg,
		})
	}
	return attempts, nil
}

// makeAPICall performs an authenticated request against the Cashfree API
func (s *CashfreeService) makeAPICall(ctx context.Context, method, path string, payload, result interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-client-id", s.appID)
	req.Header.Set("x-client-secret", s.secretKey)
	req.Header.Set("x-api-version", cashfreeAPIVersion)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", ErrGateway, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("%w: %s (%s)", ErrGateway, apiErr.Message, apiErr.Code)
		}
		return fmt.Errorf("%w: unexpected status %d", ErrGateway, resp.StatusCode)
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", ErrGateway, err)
		}
	}
	return nil
}
