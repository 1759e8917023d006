// internal/domain/order/admin_service.go
package order

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AdminListRequest represents admin order listing query parameters
type AdminListRequest struct {
	Status        string `form:"status" binding:"omitempty,oneof=pending confirmed shipped delivered cancelled returned"`
	PaymentStatus string `form:"payment_status" binding:"omitempty,oneof=pending paid refund_pending refunded"`
	UserID        uint   `form:"user_id"`
	Page          int    `form:"page"`
	Limit         int    `form:"limit"`
}

// AdminListResult is a paginated page of orders
type AdminListResult struct {
	Orders []Order `json:"orders"`
	Total  int64   `json:"total"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

// UpdateStatusRequest advances the fulfillment status of an order
type UpdateStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required,oneof=confirmed shipped delivered cancelled"`
}

// ListAll returns orders across all users, filtered and paginated
func (s *Service) ListAll(req *AdminListRequest) (*AdminListResult, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := s.db.Model(&Order{})
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.PaymentStatus != "" {
		query = query.Where("payment_status = ?", req.PaymentStatus)
	}
	if req.UserID != 0 {
		query = query.Where("user_id = ?", req.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []Order
	err := query.Preload("Items").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return &AdminListResult{Orders: orders, Total: total, Page: page, Limit: limit}, nil
}

// UpdateStatus moves an order through the fulfillment state machine.
// Transitions outside the table are rejected. Cancelling through this path
// follows the same stock and refund rules as a user cancellation.
func (s *Service) UpdateStatus(orderID uint, status OrderStatus) (*Order, error) {
	var ord Order
	err := s.db.Preload("Items").First(&ord, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if !ord.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, ord.Status, status)
	}

	// A gateway order holds no stock until its payment verifies, so there is
	// nothing to confirm yet.
	if status == StatusConfirmed && ord.PaymentMethod != MethodCOD && !ord.IsPaid() {
		return nil, fmt.Errorf("%w: %s order awaits payment verification", ErrInvalidTransition, ord.PaymentMethod)
	}

	if status == StatusCancelled {
		return s.CancelOrder(ord.UserID, ord.ID)
	}

	from := ord.Status
	if err := s.db.Model(&ord).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"order_id": ord.ID,
		"from":     from,
		"to":       status,
	}).Info("Order status updated")

	return &ord, nil
}
