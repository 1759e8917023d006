// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jhuggee/marketplace-backend/internal/config"
	"github.com/jhuggee/marketplace-backend/internal/domain/cart"
	"github.com/jhuggee/marketplace-backend/internal/domain/payment"
	"github.com/jhuggee/marketplace-backend/internal/domain/product"
)

// Service errors
var (
	ErrOrderNotFound          = errors.New("order not found")
	ErrEmptyCart              = errors.New("cart is empty")
	ErrProductUnavailable     = errors.New("product unavailable")
	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrInvalidPaymentMethod   = errors.New("invalid payment method")
	ErrNotCancellable         = errors.New("order can no longer be cancelled")
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrPaymentNotCompleted    = errors.New("payment not completed")
	ErrVerificationInProgress = errors.New("verification already in progress")
)

// verifyLockTTL bounds how long a verification lock can stay held if the
// holder dies mid-flight.
const verifyLockTTL = 30 * time.Second

// Service handles order business logic
type Service struct {
	db      *gorm.DB
	redis   *redis.Client
	gateway payment.Gateway
	carts   *cart.Service
	cfg     *config.CheckoutConfig
}

// NewService creates a new order service
func NewService(db *gorm.DB, redisClient *redis.Client, gateway payment.Gateway, carts *cart.Service, cfg *config.CheckoutConfig) *Service {
	return &Service{
		db:      db,
		redis:   redisClient,
		gateway: gateway,
		carts:   carts,
		cfg:     cfg,
	}
}

// AddressInput is the delivery address supplied at checkout
type AddressInput struct {
	Name    string `json:"name" binding:"required,min=2,max=100"`
	Phone   string `json:"phone" binding:"required,min=10,max=15"`
	Line1   string `json:"line1" binding:"required,min=3,max=255"`
	City    string `json:"city" binding:"required,min=2,max=100"`
	State   string `json:"state" binding:"omitempty,max=100"`
	Pincode string `json:"pincode" binding:"required,len=6,numeric"`
}

// ItemInput is a direct "buy now" line. Prices are never taken from the
// client; they are re-read from the catalog inside the transaction.
type ItemInput struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Size      string `json:"size" binding:"omitempty,max=20"`
	Color     string `json:"color" binding:"omitempty,max=50"`
	Quantity  int    `json:"quantity" binding:"required,gte=1,lte=10"`
}

// CreateOrderRequest is the cash-on-delivery checkout payload
type CreateOrderRequest struct {
	Address       AddressInput `json:"address" binding:"required"`
	PaymentMethod string       `json:"payment_method" binding:"required,oneof=cod"`
	Items         []ItemInput  `json:"items" binding:"omitempty,dive"`
}

// GatewayCheckoutRequest is the online-payment checkout payload
type GatewayCheckoutRequest struct {
	Address       AddressInput `json:"address" binding:"required"`
	PaymentMethod string       `json:"payment_method" binding:"required,oneof=upi card"`
	Items         []ItemInput  `json:"items" binding:"omitempty,dive"`
}

// Customer identifies the paying user to the gateway
type Customer struct {
	UserID uint
	Phone  string
	Email  string
}

// GatewaySession is returned by the gateway checkout
type GatewaySession struct {
	OrderID          uint   `json:"order_id"`
	OrderNumber      string `json:"order_number"`
	GatewayOrderID   string `json:"gateway_order_id"`
	PaymentSessionID string `json:"payment_session_id"`
	Amount           int64  `json:"amount"`
}

// VerifyRequest identifies the gateway order to reconcile
type VerifyRequest struct {
	GatewayOrderID string `json:"gateway_order_id" binding:"required"`
}

// CreateOrder places a cash-on-delivery order. Line materialization, stock
// decrement and cart clearing all happen inside one transaction.
func (s *Service) CreateOrder(userID uint, req *CreateOrderRequest) (*Order, error) {
	if req.PaymentMethod != MethodCOD {
		return nil, ErrInvalidPaymentMethod
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	ord, fromCart, err := s.buildOrder(tx, userID, req.Address, MethodCOD, req.Items)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Create(ord).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.decrementStock(tx, ord.Items); err != nil {
		tx.Rollback()
		return nil, err
	}

	if fromCart {
		if err := s.carts.ClearTx(tx, userID); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"order_id":        ord.ID,
		"order_number":    ord.OrderNumber,
		"user_id":         userID,
		"total":           ord.Total,
		"delivery_charge": ord.DeliveryCharge,
	}).Info("COD order placed")

	return ord, nil
}

// CreateGatewayOrder creates a pending order and opens a payment session at
// the gateway. Stock is not touched and the cart is left intact until the
// payment is verified. If the session cannot be opened the pending order is
// deleted again.
func (s *Service) CreateGatewayOrder(ctx context.Context, customer Customer, req *GatewayCheckoutRequest) (*GatewaySession, error) {
	if req.PaymentMethod != MethodUPI && req.PaymentMethod != MethodCard {
		return nil, ErrInvalidPaymentMethod
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	ord, _, err := s.buildOrder(tx, customer.UserID, req.Address, req.PaymentMethod, req.Items)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Create(ord).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	session, err := s.gateway.CreateSession(ctx, &payment.SessionRequest{
		GatewayOrderID: ord.GatewayOrderID(),
		Amount:         ord.GrandTotal(),
		Currency:       "INR",
		CustomerID:     fmt.Sprintf("user_%d", customer.UserID),
		CustomerPhone:  customer.Phone,
		CustomerEmail:  customer.Email,
	})
	if err != nil {
		s.deletePendingOrder(ord)
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id":         ord.ID,
		"gateway_order_id": session.GatewayOrderID,
		"user_id":          customer.UserID,
		"amount":           ord.GrandTotal(),
	}).Info("Payment session opened")

	return &GatewaySession{
		OrderID:          ord.ID,
		OrderNumber:      ord.OrderNumber,
		GatewayOrderID:   session.GatewayOrderID,
		PaymentSessionID: session.PaymentSessionID,
		Amount:           ord.GrandTotal(),
	}, nil
}

// deletePendingOrder compensates a failed session creation. A delete
// failure is logged and otherwise ignored: an unpaid pending order is
// harmless, a blocked checkout is not.
func (s *Service) deletePendingOrder(ord *Order) {
	if err := s.db.Select("Items").Delete(ord).Error; err != nil {
		logrus.WithFields(logrus.Fields{
			"order_id": ord.ID,
			"error":    err.Error(),
		}).Warn("Failed to delete pending order after gateway failure")
	}
}

// VerifyPayment reconciles a gateway order after the payment redirect. It
// is idempotent: verifying an already-paid order succeeds without touching
// stock or the cart. A redis lock serializes concurrent verifications of
// the same gateway order.
func (s *Service) VerifyPayment(ctx context.Context, userID uint, gatewayOrderID string) (*Order, error) {
	orderID, err := ParseGatewayOrderID(gatewayOrderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	lockKey := fmt.Sprintf("verify:lock:%s", gatewayOrderID)
	acquired, err := s.redis.SetNX(ctx, lockKey, "1", verifyLockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire verification lock: %w", err)
	}
	if !acquired {
		return nil, ErrVerificationInProgress
	}
	defer s.redis.Del(ctx, lockKey)

	var ord Order
	err = s.db.Preload("Items").Where("id = ? AND user_id = ?", orderID, userID).First(&ord).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if ord.IsPaid() {
		return &ord, nil
	}

	attempts, err := s.gateway.FetchPayments(ctx, gatewayOrderID)
	if err != nil {
		return nil, err
	}
	if !payment.AnySuccessful(attempts) {
		return nil, ErrPaymentNotCompleted
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	updates := map[string]interface{}{
		"payment_status": PaymentPaid,
		"status":         StatusConfirmed,
	}
	if err := tx.Model(&ord).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to mark order paid: %w", err)
	}

	if err := s.decrementStock(tx, ord.Items); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := s.carts.ClearTx(tx, userID); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit verification: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"order_id":         ord.ID,
		"gateway_order_id": gatewayOrderID,
		"user_id":          userID,
	}).Info("Payment verified, order confirmed")

	return &ord, nil
}

// CancelOrder cancels an order that has not shipped. Paid orders move to
// refund_pending; the refund itself is executed out of band. Stock restore
// runs after the status commit, per item, and a failed restore does not
// undo the cancellation.
func (s *Service) CancelOrder(userID, orderID uint) (*Order, error) {
	var ord Order
	err := s.db.Preload("Items").Where("id = ? AND user_id = ?", orderID, userID).First(&ord).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if !ord.CanBeCancelled() {
		return nil, ErrNotCancellable
	}

	wasPaid := ord.IsPaid()
	now := time.Now()
	updates := map[string]interface{}{
		"status":       StatusCancelled,
		"cancelled_at": &now,
	}
	if wasPaid {
		updates["payment_status"] = PaymentRefundPending
	}
	if err := s.db.Model(&ord).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}

	// Stock is only reserved at COD placement or at payment verification.
	// A pending gateway order never took any, so there is nothing to return.
	if ord.PaymentMethod == MethodCOD || wasPaid {
		s.restoreStock(ord.Items)
	}

	logrus.WithFields(logrus.Fields{
		"order_id": ord.ID,
		"user_id":  userID,
		"was_paid": wasPaid,
	}).Info("Order cancelled")

	return &ord, nil
}

// GetUserOrders returns the caller's orders, newest first
func (s *Service) GetUserOrders(userID uint) ([]Order, error) {
	var orders []Order
	err := s.db.Preload("Items").Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetUserOrder returns a single order owned by the caller
func (s *Service) GetUserOrder(userID, orderID uint) (*Order, error) {
	var ord Order
	err := s.db.Preload("Items").Where("id = ? AND user_id = ?", orderID, userID).First(&ord).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &ord, nil
}

// buildOrder materializes order lines from the cart or from direct items,
// snapshots live product data and computes totals. Returns the unsaved
// order and whether the lines came from the cart. Must run inside the
// caller's transaction.
func (s *Service) buildOrder(tx *gorm.DB, userID uint, addr AddressInput, method string, direct []ItemInput) (*Order, bool, error) {
	inputs := direct
	fromCart := false
	if len(inputs) == 0 {
		rows, err := s.carts.ListItemsTx(tx, userID)
		if err != nil {
			return nil, false, err
		}
		for _, row := range rows {
			inputs = append(inputs, ItemInput{
				ProductID: row.ProductID,
				Size:      row.Size,
				Color:     row.Color,
				Quantity:  row.Quantity,
			})
		}
		fromCart = true
	}
	if len(inputs) == 0 {
		return nil, false, ErrEmptyCart
	}

	var items []OrderItem
	var itemsTotal int64
	for _, in := range inputs {
		var p product.Product
		err := tx.Where("id = ? AND is_active = ?", in.ProductID, true).First(&p).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, false, fmt.Errorf("%w: product %d", ErrProductUnavailable, in.ProductID)
			}
			return nil, false, fmt.Errorf("failed to load product: %w", err)
		}

		image := ""
		if len(p.Images) > 0 {
			image = p.Images[0]
		}
		items = append(items, OrderItem{
			ProductID: p.ID,
			SellerID:  p.SellerID,
			Name:      p.Name,
			Image:     image,
			Price:     p.Price,
			Quantity:  in.Quantity,
			Size:      in.Size,
			Color:     in.Color,
		})
		itemsTotal += p.Price * int64(in.Quantity)
	}

	deliveryCharge := s.deliveryChargeFor(itemsTotal)

	number, err := s.generateOrderNumber(tx)
	if err != nil {
		return nil, false, err
	}

	return &Order{
		OrderNumber:       number,
		UserID:            userID,
		Status:            StatusPending,
		PaymentMethod:     method,
		PaymentStatus:     PaymentPending,
		Total:             itemsTotal,
		DeliveryCharge:    deliveryCharge,
		ShipName:          addr.Name,
		ShipPhone:         addr.Phone,
		ShipLine1:         addr.Line1,
		ShipCity:          addr.City,
		ShipState:         addr.State,
		ShipPincode:       addr.Pincode,
		EstimatedDelivery: time.Now().AddDate(0, 0, s.cfg.DeliveryLeadDays),
		Items:             items,
	}, fromCart, nil
}

// deliveryChargeFor returns the delivery charge for an items total
func (s *Service) deliveryChargeFor(itemsTotal int64) int64 {
	if itemsTotal >= s.cfg.FreeDeliveryThreshold {
		return 0
	}
	return s.cfg.DeliveryCharge
}

// generateOrderNumber produces a JH-YYYYMMDD-XXXXX order number from the
// day's order count.
func (s *Service) generateOrderNumber(tx *gorm.DB) (string, error) {
	today := time.Now().Format("20060102")
	var count int64
	err := tx.Model(&Order{}).Where("order_number LIKE ?", fmt.Sprintf("JH-%s-%%", today)).Count(&count).Error
	if err != nil {
		return "", fmt.Errorf("failed to count orders: %w", err)
	}
	return fmt.Sprintf("JH-%s-%05d", today, count+1), nil
}

// decrementStock applies a guarded stock decrement for every order line.
// The WHERE clause refuses to take stock below zero; an unmatched row means
// another checkout won the remaining stock.
func (s *Service) decrementStock(tx *gorm.DB, items []OrderItem) error {
	for _, item := range items {
		result := tx.Model(&product.Product{}).
			Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
			UpdateColumns(map[string]interface{}{
				"stock": gorm.Expr("stock - ?", item.Quantity),
				"sold":  gorm.Expr("sold + ?", item.Quantity),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to reserve stock: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: product %d", ErrInsufficientStock, item.ProductID)
		}
	}
	return nil
}

// restoreStock returns reserved stock after a cancellation. Items are
// restored independently; a failure is logged and the rest continue.
func (s *Service) restoreStock(items []OrderItem) {
	for _, item := range items {
		err := s.db.Model(&product.Product{}).
			Where("id = ?", item.ProductID).
			UpdateColumns(map[string]interface{}{
				"stock": gorm.Expr("stock + ?", item.Quantity),
				"sold":  gorm.Expr("sold - ?", item.Quantity),
			}).Error
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"product_id": item.ProductID,
				"quantity":   item.Quantity,
				"error":      err.Error(),
			}).Warn("Failed to restore stock for cancelled item")
		}
	}
}
