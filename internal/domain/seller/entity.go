// internal/domain/seller/entity.go
package seller

import (
	"time"
)

// Seller represents a seller profile attached to a user account
type Seller struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	ShopName    string    `gorm:"size:100;not null" json:"shop_name"`
	Description string    `gorm:"type:text" json:"description"`
	GSTIN       string    `gorm:"size:20" json:"gstin"`
	IsApproved  bool      `gorm:"default:true" json:"is_approved"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides the table name for Seller
func (Seller) TableName() string {
	return "sellers"
}
