// internal/domain/product/entity.go
package product

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog product
type Product struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	SellerID     uint           `gorm:"not null;index" json:"seller_id"`
	Name         string         `gorm:"not null;size:255;index" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	Category     string         `gorm:"size:100;index" json:"category"`
	Subcategory  string         `gorm:"size:100" json:"subcategory"`
	Images       []string       `gorm:"serializer:json" json:"images"`
	Price        int64          `gorm:"not null" json:"price"`
	MRP          int64          `gorm:"not null;column:mrp" json:"mrp"`
	Stock        int            `gorm:"not null;default:0" json:"stock"`
	Sizes        []string       `gorm:"serializer:json" json:"sizes"`
	Colors       []string       `gorm:"serializer:json" json:"colors"`
	Tags         []string       `gorm:"serializer:json" json:"tags"`
	Rating       float64        `gorm:"default:0" json:"rating"`
	RatingCount  int            `gorm:"default:0" json:"rating_count"`
	Sold         int            `gorm:"default:0" json:"sold"`
	IsActive     bool           `gorm:"default:true;index" json:"is_active"`
	FreeDelivery bool           `gorm:"default:false" json:"free_delivery"`
	DeliveryDays int            `gorm:"default:5" json:"delivery_days"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name for Product
func (Product) TableName() string {
	return "products"
}

// IsInStock returns true if the product has available stock
func (p *Product) IsInStock() bool {
	return p.Stock > 0
}

// DiscountPercent returns the discount off MRP, rounded down
func (p *Product) DiscountPercent() int {
	if p.MRP <= 0 || p.Price >= p.MRP {
		return 0
	}
	return int((p.MRP - p.Price) * 100 / p.MRP)
}

// ProductWithSeller is the detail view including the seller's shop name
type ProductWithSeller struct {
	Product
	ShopName string `json:"shop_name"`
}
