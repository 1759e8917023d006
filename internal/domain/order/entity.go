// internal/domain/order/entity.go
package order

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// OrderStatus represents the fulfillment status of an order
type OrderStatus string

// Order statuses
const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
	StatusReturned  OrderStatus = "returned"
)

// PaymentStatus represents the payment lifecycle of an order
type PaymentStatus string

// Payment statuses
const (
	PaymentPending       PaymentStatus = "pending"
	PaymentPaid          PaymentStatus = "paid"
	PaymentRefundPending PaymentStatus = "refund_pending"
	PaymentRefunded      PaymentStatus = "refunded"
)

// Payment methods accepted at checkout
const (
	MethodCOD  = "cod"
	MethodUPI  = "upi"
	MethodCard = "card"
)

// gatewayOrderPrefix prefixes the local order id in the id sent to the
// payment gateway.
const gatewayOrderPrefix = "ORDER_"

// Order represents a placed order
type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	OrderNumber   string        `gorm:"uniqueIndex;not null;size:32" json:"order_number"`
	UserID        uint          `gorm:"not null;index" json:"user_id"`
	Status        OrderStatus   `gorm:"size:20;not null;default:'pending';index" json:"status"`
	PaymentMethod string        `gorm:"size:20;not null" json:"payment_method"`
	PaymentStatus PaymentStatus `gorm:"size:20;not null;default:'pending'" json:"payment_status"`

	// Total is the sum of the item lines only. The delivery charge is
	// carried separately; GrandTotal is what actually gets charged.
	Total          int64 `gorm:"not null" json:"total"`
	DeliveryCharge int64 `gorm:"not null" json:"delivery_charge"`

	// Address snapshot taken at checkout
	ShipName    string `gorm:"size:100" json:"ship_name"`
	ShipPhone   string `gorm:"size:20" json:"ship_phone"`
	ShipLine1   string `gorm:"size:255" json:"ship_line1"`
	ShipCity    string `gorm:"size:100" json:"ship_city"`
	ShipState   string `gorm:"size:100" json:"ship_state"`
	ShipPincode string `gorm:"size:10" json:"ship_pincode"`

	EstimatedDelivery time.Time  `json:"estimated_delivery"`
	CancelledAt       *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items,omitempty"`
}

// OrderItem is a snapshot of a product line at checkout time
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	SellerID  uint      `gorm:"not null;index" json:"seller_id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Image     string    `gorm:"size:500" json:"image"`
	Price     int64     `gorm:"not null" json:"price"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Size      string    `gorm:"size:20" json:"size"`
	Color     string    `gorm:"size:50" json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name for Order
func (Order) TableName() string {
	return "orders"
}

// TableName overrides the table name for OrderItem
func (OrderItem) TableName() string {
	return "order_items"
}

// validTransitions defines allowed fulfillment status transitions
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
	StatusDelivered: {},
	StatusCancelled: {},
	StatusReturned:  {},
}

// CanTransitionTo reports whether the order may move to the given status
func (o *Order) CanTransitionTo(status OrderStatus) bool {
	for _, next := range validTransitions[o.Status] {
		if next == status {
			return true
		}
	}
	return false
}

// CanBeCancelled reports whether the order is still cancellable
func (o *Order) CanBeCancelled() bool {
	return o.Status == StatusPending || o.Status == StatusConfirmed
}

// GrandTotal returns the amount charged to the buyer: item lines plus
// delivery.
func (o *Order) GrandTotal() int64 {
	return o.Total + o.DeliveryCharge
}

// IsPaid reports whether payment has completed
func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentPaid
}

// GatewayOrderID returns the id this order is known by at the gateway
func (o *Order) GatewayOrderID() string {
	return fmt.Sprintf("%s%d", gatewayOrderPrefix, o.ID)
}

// ParseGatewayOrderID extracts the local order id from a gateway order id
func ParseGatewayOrderID(gatewayOrderID string) (uint, error) {
	raw, ok := strings.CutPrefix(gatewayOrderID, gatewayOrderPrefix)
	if !ok {
		return 0, fmt.Errorf("invalid gateway order id: %s", gatewayOrderID)
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid gateway order id: %s", gatewayOrderID)
	}
	return uint(id), nil
}

// ValidPaymentMethod reports whether the method is one we accept
func ValidPaymentMethod(method string) bool {
	switch method {
	case MethodCOD, MethodUPI, MethodCard:
		return true
	}
	return false
}
