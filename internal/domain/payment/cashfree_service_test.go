package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhuggee/marketplace-backend/internal/config"
)

func newTestService(baseURL string) *CashfreeService {
	svc := NewCashfreeService(&config.CashfreeConfig{
		AppID:       "test-app",
		SecretKey:   "test-secret",
		Environment: "sandbox",
		ReturnURL:   "https://shop.example/payment/return",
		Timeout:     5 * time.Second,
	})
	svc.baseURL = baseURL
	return svc
}

func TestCreateSessionSuccess(t *testing.T) {
	var gotHeaders http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"order_id":"ORDER_7","payment_session_id":"session-abc","order_status":"ACTIVE"}`))
	}))
	defer server.Close()

	svc := newTestService(server.URL)
	session, err := svc.CreateSession(context.Background(), &SessionRequest{
		GatewayOrderID: "ORDER_7",
		Amount:         248,
		CustomerID:     "user_3",
		CustomerPhone:  "9876543210",
	})
	require.NoError(t, err)

	assert.Equal(t, "ORDER_7", session.GatewayOrderID)
	assert.Equal(t, "session-abc", session.PaymentSessionID)
	assert.Equal(t, "test-app", gotHeaders.Get("x-client-id"))
	assert.Equal(t, "test-secret", gotHeaders.Get("x-client-secret"))
	assert.Equal(t, "2023-08-01", gotHeaders.Get("x-api-version"))
}

func TestCreateSessionMissingSessionID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"order_id":"ORDER_7","order_status":"ACTIVE"}`))
	}))
	defer server.Close()

	svc := newTestService(server.URL)
	_, err := svc.CreateSession(context.Background(), &SessionRequest{GatewayOrderID: "ORDER_7", Amount: 100})
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestCreateSessionAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"authentication failed","code":"request_failed"}`))
	}))
	defer server.Close()

	svc := newTestService(server.URL)
	_, err := svc.CreateSession(context.Background(), &SessionRequest{GatewayOrderID: "ORDER_7", Amount: 100})
	assert.ErrorIs(t, err, ErrGateway)
	assert.Contains(t, err.Error(), "authentication failed")
}

func TestFetchPayments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/orders/ORDER_7/payments", r.URL.Path)
		w.Write([]byte(`[
			{"cf_payment_id":101,"payment_status":"FAILED","payment_amount":248,"payment_group":"upi","payment_message":"declined"},
			{"cf_payment_id":102,"payment_status":"SUCCESS","payment_amount":248,"payment_group":"upi","payment_message":"ok"}
		]`))
	}))
	defer server.Close()

	svc := newTestService(server.URL)
	attempts, err := svc.FetchPayments(context.Background(), "ORDER_7")
	require.NoError(t, err)
	require.Len(t, attempts, 2)

	assert.Equal(t, "101", attempts[0].PaymentID)
	assert.False(t, attempts[0].IsSuccessful())
	assert.Equal(t, "102", attempts[1].PaymentID)
	assert.True(t, attempts[1].IsSuccessful())
	assert.True(t, AnySuccessful(attempts))
}

func TestFetchPaymentsNoAttempts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	svc := newTestService(server.URL)
	attempts, err := svc.FetchPayments(context.Background(), "ORDER_9")
	require.NoError(t, err)
	assert.Empty(t, attempts)
	assert.False(t, AnySuccessful(attempts))
}

func TestContextCancellationAborts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	svc := newTestService(server.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := svc.FetchPayments(ctx, "ORDER_7")
	assert.ErrorIs(t, err, ErrGateway)
}
