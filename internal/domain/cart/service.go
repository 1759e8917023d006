// internal/domain/cart/service.go
package cart

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jhuggee/marketplace-backend/internal/domain/product"
)

// Service errors
var (
	ErrItemNotFound      = errors.New("cart item not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Service handles cart business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new cart service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// AddRequest represents an add-to-cart payload
type AddRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Size      string `json:"size" binding:"omitempty,max=20"`
	Color     string `json:"color" binding:"omitempty,max=50"`
	Quantity  int    `json:"quantity" binding:"omitempty,gte=1,lte=10"`
}

// UpdateRequest represents a quantity update payload
type UpdateRequest struct {
	Quantity int `json:"quantity" binding:"gte=0,lte=10"`
}

// Get returns the user's cart hydrated with live product data. Lines whose
// product has been removed or deactivated are dropped from the view.
func (s *Service) Get(userID uint) (*Cart, error) {
	var items []CartItem
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}

	cart := &Cart{Items: make([]HydratedItem, 0, len(items))}
	for _, item := range items {
		var p product.Product
		err := s.db.Where("id = ? AND is_active = ?", item.ProductID, true).First(&p).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to hydrate cart item: %w", err)
		}
		cart.Items = append(cart.Items, HydratedItem{CartItem: item, Product: p})
		cart.ItemCount += item.Quantity
		cart.Subtotal += p.Price * int64(item.Quantity)
	}
	return cart, nil
}

// Add puts a product in the cart, merging with an existing line for the
// same product, size and color. The merged quantity is capped at available
// stock.
func (s *Service) Add(userID uint, req *AddRequest) (*Cart, error) {
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}

	var p product.Product
	err := s.db.Where("id = ? AND is_active = ?", req.ProductID, true).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if p.Stock < qty {
		return nil, ErrInsufficientStock
	}

	var existing CartItem
	err = s.db.Where("user_id = ? AND product_id = ? AND size = ? AND color = ?",
		userID, req.ProductID, req.Size, req.Color).First(&existing).Error
	switch {
	case err == nil:
		newQty := existing.Quantity + qty
		if newQty > p.Stock {
			newQty = p.Stock
		}
		if err := s.db.Model(&existing).Update("quantity", newQty).Error; err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item := CartItem{
			UserID:    userID,
			ProductID: req.ProductID,
			Size:      req.Size,
			Color:     req.Color,
			Quantity:  qty,
		}
		if err := s.db.Create(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to create cart item: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to check cart item: %w", err)
	}

	return s.Get(userID)
}

// UpdateQuantity sets the quantity of a cart line. Quantity zero removes
// the line.
func (s *Service) UpdateQuantity(userID, itemID uint, req *UpdateRequest) (*Cart, error) {
	var item CartItem
	err := s.db.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}

	if req.Quantity == 0 {
		if err := s.db.Delete(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to remove cart item: %w", err)
		}
		return s.Get(userID)
	}

	var p product.Product
	if err := s.db.First(&p, item.ProductID).Error; err == nil && req.Quantity > p.Stock {
		return nil, ErrInsufficientStock
	}

	if err := s.db.Model(&item).Update("quantity", req.Quantity).Error; err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	return s.Get(userID)
}

// Remove deletes a single line from the cart
func (s *Service) Remove(userID, itemID uint) (*Cart, error) {
	result := s.db.Where("id = ? AND user_id = ?", itemID, userID).Delete(&CartItem{})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrItemNotFound
	}
	return s.Get(userID)
}

// Clear empties the user's cart
func (s *Service) Clear(userID uint) error {
	if err := s.db.Where("user_id = ?", userID).Delete(&CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// ClearTx empties the user's cart inside an existing transaction. Used by
// checkout so the cart only clears when the order commits.
func (s *Service) ClearTx(tx *gorm.DB, userID uint) error {
	if err := tx.Where("user_id = ?", userID).Delete(&CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// ListItemsTx returns the raw cart rows for a user, oldest first, inside an
// existing transaction. Checkout uses this to materialize order lines.
func (s *Service) ListItemsTx(tx *gorm.DB, userID uint) ([]CartItem, error) {
	var items []CartItem
	err := tx.Where("user_id = ?", userID).Order("created_at ASC").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	return items, nil
}
