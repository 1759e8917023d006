// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/jhuggee/marketplace-backend/internal/domain/product"
)

// CartItem represents one line in a user's cart. The same product added
// twice with the same size and color merges into a single row.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_variant" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_user_variant" json:"product_id"`
	Size      string    `gorm:"size:20;uniqueIndex:idx_cart_user_variant" json:"size"`
	Color     string    `gorm:"size:50;uniqueIndex:idx_cart_user_variant" json:"color"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name for CartItem
func (CartItem) TableName() string {
	return "cart_items"
}

// HydratedItem is a cart line joined with live product data. Prices are
// never stored in the cart; they are read from the catalog on every view
// and again inside the checkout transaction.
type HydratedItem struct {
	CartItem
	Product product.Product `json:"product"`
}

// Cart is the hydrated view of a user's cart
type Cart struct {
	Items     []HydratedItem `json:"items"`
	ItemCount int            `json:"item_count"`
	Subtotal  int64          `json:"subtotal"`
}
