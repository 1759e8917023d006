package order

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jhuggee/marketplace-backend/internal/domain/cart"
	"github.com/jhuggee/marketplace-backend/internal/domain/payment"
	"github.com/jhuggee/marketplace-backend/internal/domain/product"
)

// fakeGateway substitutes the payment provider in tests. CreateSession
// succeeds unless sessionErr is set; FetchPayments returns the canned
// attempts.
type fakeGateway struct {
	sessionErr error
	attempts   []payment.PaymentAttempt
	fetchCalls int
}

func (g *fakeGateway) CreateSession(ctx context.Context, req *payment.SessionRequest) (*payment.Session, error) {
	if g.sessionErr != nil {
		return nil, g.sessionErr
	}
	return &payment.Session{GatewayOrderID: req.GatewayOrderID, PaymentSessionID: "session_test123"}, nil
}

func (g *fakeGateway) FetchPayments(ctx context.Context, gatewayOrderID string) ([]payment.PaymentAttempt, error) {
	g.fetchCalls++
	return g.attempts, nil
}

// newTestService wires an order service against in-memory sqlite and
// miniredis. A single connection keeps sqlite from racing itself.
func newTestService(t *testing.T) (*Service, *gorm.DB, *fakeGateway) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&product.Product{}, &cart.CartItem{}, &Order{}, &OrderItem{}))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	gw := &fakeGateway{}
	svc := NewService(db, rdb, gw, cart.NewService(db), testCheckoutConfig())
	return svc, db, gw
}

func seedProduct(t *testing.T, db *gorm.DB, price int64, stock int) *product.Product {
	t.Helper()
	p := &product.Product{
		SellerID: 1,
		Name:     "Cotton Kurta",
		Category: "kurtas",
		Price:    price,
		MRP:      price,
		Stock:    stock,
		IsActive: true,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func addToCart(t *testing.T, db *gorm.DB, userID, productID uint, qty int) {
	t.Helper()
	require.NoError(t, db.Create(&cart.CartItem{UserID: userID, ProductID: productID, Quantity: qty}).Error)
}

func testAddress() AddressInput {
	return AddressInput{
		Name:    "Asha Rao",
		Phone:   "9876543210",
		Line1:   "14 MG Road",
		City:    "Bengaluru",
		State:   "Karnataka",
		Pincode: "560001",
	}
}

func reloadProduct(t *testing.T, db *gorm.DB, id uint) *product.Product {
	t.Helper()
	var p product.Product
	require.NoError(t, db.First(&p, id).Error)
	return &p
}

func cartCount(t *testing.T, db *gorm.DB, userID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&cart.CartItem{}).Where("user_id = ?", userID).Count(&n).Error)
	return n
}

func TestCreateOrderTotalIsItemLinesOnly(t *testing.T) {
	svc, db, _ := newTestService(t)
	p := seedProduct(t, db, 150, 5)
	addToCart(t, db, 1, p.ID, 1)

	ord, err := svc.CreateOrder(1, &CreateOrderRequest{
		Address:       testAddress(),
		PaymentMethod: MethodCOD,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(150), ord.Total)
	assert.Equal(t, int64(49), ord.DeliveryCharge)
	assert.Equal(t, int64(199), ord.GrandTotal())
	assert.Equal(t, StatusPending, ord.Status)

	got := reloadProduct(t, db, p.ID)
	assert.Equal(t, 4, got.Stock)
	assert.Equal(t, 1, got.Sold)
	assert.Zero(t, cartCount(t, db, 1))
}

func TestCreateOrderInsufficientStockAbortsWholeCheckout(t *testing.T) {
	svc, db, _ := newTestService(t)
	plenty := seedProduct(t, db, 300, 10)
	scarce := seedProduct(t, db, 200, 1)
	addToCart(t, db, 1, plenty.ID, 2)
	addToCart(t, db, 1, scarce.ID, 3)

	_, err := svc.CreateOrder(1, &CreateOrderRequest{
		Address:       testAddress(),
		PaymentMethod: MethodCOD,
	})
	require.ErrorIs(t, err, ErrInsufficientStock)

	// The transaction rolled back: no order, no partial decrement, cart kept.
	var orders int64
	require.NoError(t, db.Model(&Order{}).Count(&orders).Error)
	assert.Zero(t, orders)
	assert.Equal(t, 10, reloadProduct(t, db, plenty.ID).Stock)
	assert.Equal(t, 1, reloadProduct(t, db, scarce.ID).Stock)
	assert.Equal(t, int64(2), cartCount(t, db, 1))
}

func TestCreateOrderDrainsStockToZeroThenRejects(t *testing.T) {
	svc, db, _ := newTestService(t)
	p := seedProduct(t, db, 250, 2)

	req := func(qty int) *CreateOrderRequest {
		return &CreateOrderRequest{
			Address:       testAddress(),
			PaymentMethod: MethodCOD,
			Items:         []ItemInput{{ProductID: p.ID, Quantity: qty}},
		}
	}

	_, err := svc.CreateOrder(1, req(2))
	require.NoError(t, err)
	assert.Equal(t, 0, reloadProduct(t, db, p.ID).Stock)

	_, err = svc.CreateOrder(2, req(1))
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 0, reloadProduct(t, db, p.ID).Stock)
}

func TestCancelOrderSecondAttemptRejectedAndStockRestoredOnce(t *testing.T) {
	svc, db, _ := newTestService(t)
	p := seedProduct(t, db, 400, 5)

	ord, err := svc.CreateOrder(1, &CreateOrderRequest{
		Address:       testAddress(),
		PaymentMethod: MethodCOD,
		Items:         []ItemInput{{ProductID: p.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	require.Equal(t, 3, reloadProduct(t, db, p.ID).Stock)

	cancelled, err := svc.CancelOrder(1, ord.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)
	assert.Equal(t, PaymentPending, cancelled.PaymentStatus)
	assert.Equal(t, 5, reloadProduct(t, db, p.ID).Stock)

	_, err = svc.CancelOrder(1, ord.ID)
	assert.ErrorIs(t, err, ErrNotCancellable)
	assert.Equal(t, 5, reloadProduct(t, db, p.ID).Stock)
}

func TestCancelPaidOrderEntersRefundPendingAndRestoresStock(t *testing.T) {
	svc, db, gw := newTestService(t)
	p := seedProduct(t, db, 500, 4)

	session, err := svc.CreateGatewayOrder(context.Background(), Customer{UserID: 1, Phone: "9876543210"}, &GatewayCheckoutRequest{
		Address:       testAddress(),
		PaymentMethod: MethodUPI,
		Items:         []ItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	// A pending gateway order reserves nothing.
	require.Equal(t, 4, reloadProduct(t, db, p.ID).Stock)

	gw.attempts = []payment.PaymentAttempt{{PaymentID: "cf_1", Status: payment.AttemptStatusSuccess, Amount: 500}}
	_, err = svc.VerifyPayment(context.Background(), 1, session.GatewayOrderID)
	require.NoError(t, err)
	require.Equal(t, 3, reloadProduct(t, db, p.ID).Stock)

	cancelled, err := svc.CancelOrder(1, session.OrderID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)
	assert.Equal(t, PaymentRefundPending, cancelled.PaymentStatus)
	assert.Equal(t, 4, reloadProduct(t, db, p.ID).Stock)
}

func TestVerifyPaymentIdempotentDecrementsStockOnce(t *testing.T) {
	svc, db, gw := newTestService(t)
	p := seedProduct(t, db, 600, 3)
	addToCart(t, db, 1, p.ID, 1)

	session, err := svc.CreateGatewayOrder(context.Background(), Customer{UserID: 1, Phone: "9876543210"}, &GatewayCheckoutRequest{
		Address:       testAddress(),
		PaymentMethod: MethodCard,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(600), session.Amount)

	gw.attempts = []payment.PaymentAttempt{{PaymentID: "cf_1", Status: payment.AttemptStatusSuccess, Amount: 600}}
	first, err := svc.VerifyPayment(context.Background(), 1, session.GatewayOrderID)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, first.Status)
	assert.Equal(t, PaymentPaid, first.PaymentStatus)
	assert.Equal(t, 2, reloadProduct(t, db, p.ID).Stock)
	assert.Zero(t, cartCount(t, db, 1))

	second, err := svc.VerifyPayment(context.Background(), 1, session.GatewayOrderID)
	require.NoError(t, err)
	assert.Equal(t, PaymentPaid, second.PaymentStatus)
	assert.Equal(t, 2, reloadProduct(t, db, p.ID).Stock)
	assert.Equal(t, 1, gw.fetchCalls)
}

func TestVerifyPaymentWithoutSuccessLeavesOrderPending(t *testing.T) {
	svc, db, gw := newTestService(t)
	p := seedProduct(t, db, 700, 2)

	session, err := svc.CreateGatewayOrder(context.Background(), Customer{UserID: 1, Phone: "9876543210"}, &GatewayCheckoutRequest{
		Address:       testAddress(),
		PaymentMethod: MethodUPI,
		Items:         []ItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	gw.attempts = []payment.PaymentAttempt{{PaymentID: "cf_1", Status: payment.AttemptStatusFailed}}
	_, err = svc.VerifyPayment(context.Background(), 1, session.GatewayOrderID)
	assert.ErrorIs(t, err, ErrPaymentNotCompleted)

	ord, err := svc.GetUserOrder(1, session.OrderID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, ord.Status)
	assert.Equal(t, PaymentPending, ord.PaymentStatus)
	assert.Equal(t, 2, reloadProduct(t, db, p.ID).Stock)
}

func TestCreateGatewayOrderSessionFailureDeletesPendingOrder(t *testing.T) {
	svc, db, gw := newTestService(t)
	p := seedProduct(t, db, 800, 2)
	gw.sessionErr = payment.ErrGateway

	_, err := svc.CreateGatewayOrder(context.Background(), Customer{UserID: 1, Phone: "9876543210"}, &GatewayCheckoutRequest{
		Address:       testAddress(),
		PaymentMethod: MethodUPI,
		Items:         []ItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	require.ErrorIs(t, err, payment.ErrGateway)

	var orders int64
	require.NoError(t, db.Model(&Order{}).Count(&orders).Error)
	assert.Zero(t, orders)
	assert.Equal(t, 2, reloadProduct(t, db, p.ID).Stock)
}

func TestAdminConfirmRejectsUnpaidGatewayOrder(t *testing.T) {
	svc, db, gw := newTestService(t)
	p := seedProduct(t, db, 900, 5)

	session, err := svc.CreateGatewayOrder(context.Background(), Customer{UserID: 1, Phone: "9876543210"}, &GatewayCheckoutRequest{
		Address:       testAddress(),
		PaymentMethod: MethodUPI,
		Items:         []ItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(session.OrderID, StatusConfirmed)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Once the payment verifies the same transition goes through.
	gw.attempts = []payment.PaymentAttempt{{PaymentID: "cf_1", Status: payment.AttemptStatusSuccess}}
	_, err = svc.VerifyPayment(context.Background(), 1, session.GatewayOrderID)
	require.NoError(t, err)

	shipped, err := svc.UpdateStatus(session.OrderID, StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, shipped.Status)
}

func TestAdminConfirmAllowsCODOrder(t *testing.T) {
	svc, db, _ := newTestService(t)
	p := seedProduct(t, db, 300, 5)

	ord, err := svc.CreateOrder(1, &CreateOrderRequest{
		Address:       testAddress(),
		PaymentMethod: MethodCOD,
		Items:         []ItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	confirmed, err := svc.UpdateStatus(ord.ID, StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, confirmed.Status)
}
