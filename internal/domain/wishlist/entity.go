// internal/domain/wishlist/entity.go
package wishlist

import (
	"time"

	"github.com/jhuggee/marketplace-backend/internal/domain/product"
)

// WishlistItem represents one saved product in a user's wishlist
type WishlistItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name for WishlistItem
func (WishlistItem) TableName() string {
	return "wishlist_items"
}

// HydratedItem is a wishlist entry joined with live product data
type HydratedItem struct {
	WishlistItem
	Product product.Product `json:"product"`
}
