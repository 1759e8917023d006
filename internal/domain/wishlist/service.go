// internal/domain/wishlist/service.go
package wishlist

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jhuggee/marketplace-backend/internal/domain/product"
)

// Service errors
var (
	ErrItemNotFound    = errors.New("wishlist item not found")
	ErrProductNotFound = errors.New("product not found")
)

// Service handles wishlist business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new wishlist service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// AddRequest represents an add-to-wishlist payload
type AddRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// List returns the user's wishlist hydrated with live product data
func (s *Service) List(userID uint) ([]HydratedItem, error) {
	var items []WishlistItem
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}

	hydrated := make([]HydratedItem, 0, len(items))
	for _, item := range items {
		var p product.Product
		err := s.db.Where("id = ? AND is_active = ?", item.ProductID, true).First(&p).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to hydrate wishlist item: %w", err)
		}
		hydrated = append(hydrated, HydratedItem{WishlistItem: item, Product: p})
	}
	return hydrated, nil
}

// Add puts a product on the wishlist. Adding the same product twice is a
// no-op.
func (s *Service) Add(userID uint, req *AddRequest) (*WishlistItem, error) {
	var count int64
	err := s.db.Model(&product.Product{}).Where("id = ? AND is_active = ?", req.ProductID, true).Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check product: %w", err)
	}
	if count == 0 {
		return nil, ErrProductNotFound
	}

	var existing WishlistItem
	err = s.db.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check wishlist: %w", err)
	}

	item := WishlistItem{UserID: userID, ProductID: req.ProductID}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to add wishlist item: %w", err)
	}
	return &item, nil
}

// Remove deletes a product from the wishlist
func (s *Service) Remove(userID, productID uint) error {
	result := s.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&WishlistItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove wishlist item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}
